package chartsense

import (
	"errors"
	"fmt"
)

// Vec2 is a 2D vector used for pointer positions, anchors, and panel sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Margins is the space reserved around the plot area.
type Margins struct {
	Top    float64 `toml:"top"`
	Right  float64 `toml:"right"`
	Bottom float64 `toml:"bottom"`
	Left   float64 `toml:"left"`
}

// Dimensions holds the chart's total and inner (plot) size.
type Dimensions struct {
	Width, Height float64
	Margins       Margins
	InnerWidth    float64
	InnerHeight   float64
}

// NewDimensions derives the inner size from the total size and margins.
// Inner dimensions are clamped at zero.
func NewDimensions(width, height float64, m Margins) Dimensions {
	return Dimensions{
		Width:       width,
		Height:      height,
		Margins:     m,
		InnerWidth:  max(0, width-m.Left-m.Right),
		InnerHeight: max(0, height-m.Top-m.Bottom),
	}
}

// Valid reports whether the dimensions describe a drawable chart.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0 && d.InnerWidth > 0 && d.InnerHeight > 0
}

// Status is the chart lifecycle state.
type Status uint8

const (
	StatusIdle    Status = iota // dimensions or data not yet valid
	StatusLoading               // host is fetching data
	StatusReady                 // sensors and behaviors may run
	StatusError                 // unrecoverable configuration, entered only via Chart.Fail
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// ChartType selects scale construction, strategy choice, and default sensors.
type ChartType string

const (
	ChartLine    ChartType = "line"
	ChartArea    ChartType = "area"
	ChartBar     ChartType = "bar"
	ChartScatter ChartType = "scatter"
	ChartBubble  ChartType = "bubble"
	ChartPie     ChartType = "pie"
)

// ErrUnknownChartType is returned when a chart type string is not recognized.
var ErrUnknownChartType = errors.New("chartsense: unknown chart type")

// ParseChartType validates a chart type name. The empty string is accepted
// and means "unspecified" (treated as line for strategy selection).
func ParseChartType(s string) (ChartType, error) {
	switch t := ChartType(s); t {
	case "", ChartLine, ChartArea, ChartBar, ChartScatter, ChartBubble, ChartPie:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChartType, s)
}

// continuous reports whether the chart type plots along a continuous x axis.
func (t ChartType) continuous() bool {
	switch t {
	case "", ChartLine, ChartArea, ChartScatter, ChartBubble:
		return true
	}
	return false
}

// twoDimensional reports whether points are scattered in both axes.
func (t ChartType) twoDimensional() bool {
	return t == ChartScatter || t == ChartBubble
}

// InteractionMode selects 1-D nearest-x or 2-D nearest-point lookup for a series.
type InteractionMode string

const (
	ModeX  InteractionMode = "x"
	ModeXY InteractionMode = "xy"
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies a navigation key delivered to the keyboard sensor.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyHome
	KeyEnd
	KeyEscape
)

// Surface is a mounted drawing region supplied by the host. Root and plot
// elements are both surfaces; only Bounds is needed for event normalization.
type Surface interface {
	// Bounds returns the surface rectangle in container (screen) coordinates.
	Bounds() Rect
	// Query returns the drawn elements matching selector.
	Query(selector string) []Element
}

// HighlightState is the visual emphasis of a drawn element.
type HighlightState uint8

const (
	HighlightNone        HighlightState = iota // no interaction
	HighlightHighlighted                       // element matches the active target
	HighlightDimmed                            // another element is the active target
)

// String returns the lowercase state name.
func (h HighlightState) String() string {
	switch h {
	case HighlightNone:
		return "none"
	case HighlightHighlighted:
		return "highlighted"
	case HighlightDimmed:
		return "dimmed"
	default:
		return "unknown"
	}
}

// Element is a drawn shape that behaviors can inspect and mark.
type Element interface {
	// Data returns the payload the host attached when drawing the element.
	Data() any
	// SetHighlight marks the element. Implementations must be idempotent.
	SetHighlight(HighlightState)
}

// Elements holds the mounted surface handles.
type Elements struct {
	Root Surface
	Plot Surface
}
