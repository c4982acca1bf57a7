package chartsense

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
)

// quadPoint is a pixel-projected record stored in the quadtree.
type quadPoint struct {
	p     orb.Point
	index int
}

// Point implements orb.Pointer.
func (q quadPoint) Point() orb.Point { return q.p }

// QuadtreeStrategy indexes pixel-projected points in a quadtree. The index is
// built lazily on the first Find and rebuilt only when the scale instances
// passed to Find change identity; a scale mutated in place is not detected.
type QuadtreeStrategy struct {
	series *Series
	tree   *quadtree.Quadtree
	lastX  Scale
	lastY  Scale
	built  bool
	builds int
}

// NewQuadtreeStrategy returns an unbuilt quadtree strategy over s.
func NewQuadtreeStrategy(s *Series) *QuadtreeStrategy {
	return &QuadtreeStrategy{series: s}
}

// Kind implements Strategy.
func (q *QuadtreeStrategy) Kind() StrategyKind { return StrategyQuadtree }

// Builds returns how many times the index has been built.
func (q *QuadtreeStrategy) Builds() int { return q.builds }

// Find implements Strategy.
func (q *QuadtreeStrategy) Find(px, py, radius float64, xs, ys Scale) *Target {
	s := q.series
	if s == nil || len(s.Data) == 0 || xs == nil || ys == nil {
		return nil
	}
	if !q.built || !Identical(q.lastX, xs) || !Identical(q.lastY, ys) {
		q.rebuild(xs, ys)
	}
	if q.tree == nil {
		return nil
	}

	found := q.tree.KNearest(nil, orb.Point{px, py}, 1, radius)
	if len(found) == 0 {
		return nil
	}
	qp, ok := found[0].(quadPoint)
	if !ok {
		return nil
	}
	d := math.Hypot(qp.p[0]-px, qp.p[1]-py)
	if d > radius {
		return nil
	}
	return s.target(qp.index, qp.p[0], qp.p[1], d)
}

func (q *QuadtreeStrategy) rebuild(xs, ys Scale) {
	q.lastX, q.lastY = xs, ys
	q.built = true
	q.builds++
	q.tree = nil

	s := q.series
	points := make([]quadPoint, 0, len(s.Data))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range s.Data {
		x, y := pixelX(s, i, xs), pixelY(s, i, ys)
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		points = append(points, quadPoint{p: orb.Point{x, y}, index: i})
		minX, minY = min(minX, x), min(minY, y)
		maxX, maxY = max(maxX, x), max(maxY, y)
	}
	if len(points) == 0 {
		return
	}

	bound := orb.Bound{
		Min: orb.Point{minX - 1, minY - 1},
		Max: orb.Point{maxX + 1, maxY + 1},
	}
	tree := quadtree.New(bound)
	for _, p := range points {
		// Points are inside bound by construction.
		_ = tree.Add(p)
	}
	q.tree = tree
}
