package sprinkles

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenFunc adapts the curve into gween's easing signature, so host code
// animating editor or gameplay values can reuse authored effect curves.
// The curve's output Range is applied, then mapped onto the tween's
// begin/change interval.
func (c *CurveTexture) TweenFunc() ease.TweenFunc {
	return func(t, b, change, d float32) float32 {
		if d <= 0 {
			return b + change
		}
		return b + change*c.SampleScaled(t/d)
	}
}

// NewCurveTween returns a gween tween from begin to end over duration
// seconds, eased by the curve.
func NewCurveTween(c *CurveTexture, begin, end, duration float32) *gween.Tween {
	return gween.New(begin, end, duration, c.TweenFunc())
}
