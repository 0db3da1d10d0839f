package polymesh

import (
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing selects the interpolation curve used to move nodes from their start
// to their target position.
type Easing uint8

const (
	EaseLinear                Easing = iota // constant speed
	EaseIn                                  // quadratic, accelerating
	EaseOut                                 // quadratic, decelerating
	EaseInOut                               // quadratic, symmetric around the half-duration point
	EaseAccelerateDecelerate                // cubic, symmetric
	EaseDescendingEntrance                  // inverse cubic used for the first-cycle entrance
)

var easingNames = [...]string{
	EaseLinear:               "linear",
	EaseIn:                   "easeIn",
	EaseOut:                  "easeOut",
	EaseInOut:                "easeInOut",
	EaseAccelerateDecelerate: "accelerateDecelerate",
	EaseDescendingEntrance:   "descendingEntrance",
}

// String returns the configuration name of the easing mode.
func (e Easing) String() string {
	if int(e) < len(easingNames) {
		return easingNames[e]
	}
	return easingNames[EaseLinear]
}

// ParseEasing maps a configuration name to an Easing. Matching is case
// insensitive. The second result is false when the name is not a built-in
// mode, in which case EaseLinear is returned.
func ParseEasing(name string) (Easing, bool) {
	for i, n := range easingNames {
		if strings.EqualFold(n, name) {
			return Easing(i), true
		}
	}
	return EaseLinear, false
}

// Ease interpolates between start and target at elapsed time t of a motion
// lasting duration. It is pure; unknown modes fall back to linear.
//
// Every mode except EaseDescendingEntrance returns exactly start at t == 0
// and exactly target at t == duration. The descending entrance divides by
// the cubic term instead of multiplying: it diverges as t approaches 0,
// passes through target at the half-duration point and settles on
// start + (target-start)/2 at t == duration.
func Ease(mode Easing, t, start, target, duration float64) float64 {
	if mode != EaseDescendingEntrance {
		// Pin the endpoints so rounding in delta never leaves a node short.
		switch t {
		case 0:
			return start
		case duration:
			return target
		}
	}
	delta := target - start
	switch mode {
	case EaseIn:
		p := t / duration
		return start + delta*p*p
	case EaseOut:
		p := t / duration
		return start - delta*p*(p-2)
	case EaseInOut:
		p := t / (duration / 2)
		if p < 1 {
			return start + delta/2*p*p
		}
		p--
		return start - delta/2*(p*(p-2)-1)
	case EaseAccelerateDecelerate:
		p := t / (duration / 2)
		if p < 1 {
			return start + delta/2*p*p*p
		}
		p -= 2
		return start + delta/2*(p*p*p+2)
	case EaseDescendingEntrance:
		p := t / (duration / 2)
		if p < 1 {
			return start + delta/(p*p*p)
		}
		p -= 2
		return start + delta/(p*p*p+2)
	default:
		return start + delta*(t/duration)
	}
}

// TweenFunc adapts the easing mode to gween's float32 signature so it can
// drive a gween.Tween. gween passes begin and change rather than target.
func (e Easing) TweenFunc() ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		return float32(Ease(e, float64(t), float64(b), float64(b+c), float64(d)))
	}
}

// gweenEasings exposes gween's Penner curves under their conventional names
// for meshes that want a curve outside the built-in set.
var gweenEasings = map[string]ease.TweenFunc{
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inQuint":      ease.InQuint,
	"outQuint":     ease.OutQuint,
	"inOutQuint":   ease.InOutQuint,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
}

// LookupTweenFunc returns the gween curve registered under name.
func LookupTweenFunc(name string) (ease.TweenFunc, bool) {
	for n, fn := range gweenEasings {
		if strings.EqualFold(n, name) {
			return fn, true
		}
	}
	return nil, false
}

// easer resolves a configured easing name once. Built-in names evaluate in
// float64 through Ease; gween names evaluate through the gween curve.
type easer struct {
	mode Easing
	fn   ease.TweenFunc
}

func resolveEasing(name string) easer {
	if mode, ok := ParseEasing(name); ok {
		return easer{mode: mode}
	}
	if fn, ok := LookupTweenFunc(name); ok {
		return easer{fn: fn}
	}
	return easer{mode: EaseLinear}
}

func (e easer) ease(t, start, target, duration float64) float64 {
	if e.fn == nil {
		return Ease(e.mode, t, start, target, duration)
	}
	if t >= duration {
		return target
	}
	v := e.fn(float32(t), float32(start), float32(target-start), float32(duration))
	return float64(v)
}

// name reports a label for debug output.
func (e easer) name() string {
	if e.fn != nil {
		return "gween"
	}
	return e.mode.String()
}
