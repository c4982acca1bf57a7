package chartsense

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TooltipFollower eases a tooltip panel toward its latest repositioned
// location. The first placement after creation or Reset snaps; later
// placements animate over the configured duration.
//
// There is no global animation manager; hosts call Update each frame.
type TooltipFollower struct {
	// X and Y are the current panel position.
	X, Y float64
	// Done reports whether the panel has reached its target.
	Done bool

	tweenX   *gween.Tween
	tweenY   *gween.Tween
	target   Vec2
	placed   bool
	duration float32
	easeFn   ease.TweenFunc
}

// NewTooltipFollower returns a follower that animates over duration seconds
// with fn. A nil fn uses ease.OutQuad.
func NewTooltipFollower(duration float32, fn ease.TweenFunc) *TooltipFollower {
	if fn == nil {
		fn = ease.OutQuad
	}
	return &TooltipFollower{duration: duration, easeFn: fn, Done: true}
}

// MoveTo retargets the follower. Retargeting to the current target is a no-op.
func (f *TooltipFollower) MoveTo(to Vec2) {
	if !f.placed || f.duration <= 0 {
		f.placed = true
		f.X, f.Y = to.X, to.Y
		f.target = to
		f.tweenX, f.tweenY = nil, nil
		f.Done = true
		return
	}
	if to == f.target {
		return
	}
	f.target = to
	f.tweenX = gween.New(float32(f.X), float32(to.X), f.duration, f.easeFn)
	f.tweenY = gween.New(float32(f.Y), float32(to.Y), f.duration, f.easeFn)
	f.Done = false
}

// Update advances the animation by dt seconds and returns the position.
func (f *TooltipFollower) Update(dt float32) Vec2 {
	if f.Done || f.tweenX == nil {
		return Vec2{X: f.X, Y: f.Y}
	}
	x, doneX := f.tweenX.Update(dt)
	y, doneY := f.tweenY.Update(dt)
	f.X, f.Y = float64(x), float64(y)
	if doneX && doneY {
		// Land exactly on target; float32 tweens drift slightly.
		f.X, f.Y = f.target.X, f.target.Y
		f.Done = true
		f.tweenX, f.tweenY = nil, nil
	}
	return Vec2{X: f.X, Y: f.Y}
}

// Reset makes the next MoveTo snap, used when the tooltip is hidden.
func (f *TooltipFollower) Reset() {
	f.placed = false
	f.tweenX, f.tweenY = nil, nil
	f.Done = true
}
