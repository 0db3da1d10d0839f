package polymesh

// Node is a single animated point of a Mesh. Nodes live in the mesh's node
// slice and refer to each other by index, never by pointer.
type Node struct {
	// Index is the node's position in Mesh.Nodes.
	Index int

	// Current is the rendered position.
	Current Vec2
	// Origin anchors target generation; it never moves after setup.
	Origin Vec2
	// Start and Target are the endpoints of the active interpolation.
	Start  Vec2
	Target Vec2

	// OriginZ is the pseudo-depth sampled at creation.
	OriginZ float64
	// ZAlpha is the depth opacity multiplier for the current frame.
	ZAlpha float64

	// Closest lists the indices of the k nearest nodes at build time,
	// nearest first. It never contains Index.
	Closest []int

	// Density is the value the alphas were derived from.
	Density   float64
	DotAlpha  float64
	LineAlpha float64
	FillAlpha float64

	Colors NodeColors

	// Unconnected nodes never take part in filled triangles and only get
	// lines through the proximity rule.
	Unconnected bool
	// HasPrediction annotates the node's target for the current cycle.
	HasPrediction bool
}

// NodeColors holds the per-node color selections of each channel.
type NodeColors struct {
	Dot  Color
	Line Color
	Fill Color
	// GradientFrom and GradientTo are valid when HasGradient is set.
	GradientFrom Color
	GradientTo   Color
	HasGradient  bool
}

// visible reports whether any channel of the node can produce output.
func (n *Node) visible() bool {
	return n.DotAlpha > 0 || n.LineAlpha > 0 || n.FillAlpha > 0
}
