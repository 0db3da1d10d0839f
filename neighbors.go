package polymesh

import (
	"cmp"
	"slices"
)

// BuildNeighbors returns, for every point, the indices of its k nearest other
// points ordered from nearest to farthest. The relation is directed: j may be
// listed for i without i being listed for j. When k is at least len(points)-1
// every point lists all others; k <= 0 yields empty lists. Ties keep index
// order.
func BuildNeighbors(points []Vec2, k int) [][]int {
	n := len(points)
	out := make([][]int, n)
	if n == 0 {
		return out
	}
	if k > n-1 {
		k = n - 1
	}
	if k < 0 {
		k = 0
	}

	type candidate struct {
		index int
		dist  float64
	}
	buf := make([]candidate, 0, n-1)

	for i, p := range points {
		buf = buf[:0]
		for j, q := range points {
			if j == i {
				continue
			}
			dx := p.X - q.X
			dy := p.Y - q.Y
			buf = append(buf, candidate{index: j, dist: dx*dx + dy*dy})
		}
		slices.SortStableFunc(buf, func(a, b candidate) int {
			return cmp.Compare(a.dist, b.dist)
		})
		closest := make([]int, k)
		for c := 0; c < k; c++ {
			closest[c] = buf[c].index
		}
		out[i] = closest
	}
	return out
}

// neighborCycleLength sums the distances between consecutive neighbors of a
// closest list, wrapping from the last entry back to the first.
func neighborCycleLength(points []Vec2, closest []int) float64 {
	if len(closest) < 2 {
		return 0
	}
	var total float64
	for i, idx := range closest {
		next := closest[(i+1)%len(closest)]
		total += points[idx].Dist(points[next])
	}
	return total
}
