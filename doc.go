// Package chartsense is an embeddable interaction engine for 2D charts.
//
// It owns everything between raw pointer and keyboard input and "which data
// point is the user looking at": scales, series registration, nearest-point
// search, interaction state, and the lifecycle of the sensors and behaviors
// that react to it. Drawing is left to the host; the [ebitenhost] and
// [tcellhost] packages show two of them.
//
// # Quick start
//
// Create a [Chart] from a [Config], register series, mount it on the host's
// surfaces, and forward input:
//
//	cfg := chartsense.DefaultConfig()
//	cfg.Width, cfg.Height = 640, 480
//	chart := chartsense.NewChart(cfg, chartsense.WithData(records))
//	chart.RegisterSeries("prices", []chartsense.SeriesConfig{{Label: "Close"}})
//	chart.Mount(root, plot)
//
//	// from the host's input loop:
//	chart.PointerMove(chartsense.RawPointer{ClientX: mx, ClientY: my})
//
//	if p := chart.Interaction(chartsense.ChannelHover); p != nil && p.Best != nil {
//		// draw a marker at p.Best.X, p.Best.Y and a tooltip
//	}
//
// # State
//
// All chart state lives in one [State] held by a [Store]. Updates replace
// the state pointer; listeners run only when it changes. [Select] narrows a
// subscription to one slice of the state.
//
// Interaction results are kept per channel in [State.Interactions].
// [ChannelHover] is written by the default sensors; [SelectionSensor] writes
// [ChannelSelection]. A missing key means the channel is inactive.
//
// # Search
//
// Each hydrated [Series] carries one [Strategy], chosen by data size, chart
// type, and [InteractionMode]: a linear scan for small or categorical data, a
// bisector over sorted x values for line and area charts, and a quadtree for
// scatter, bubble, and xy-mode series. Every lookup is limited to
// [InteractionRadius] pixels. [FindClosestTargets] runs all strategies for a
// pointer position.
//
// # Sensors and behaviors
//
// A [Sensor] turns chart events into interaction state; a [Behavior] turns
// interaction state into side effects on the host's elements, such as
// [HighlightBehavior]. Both return a cleanup. The chart instantiates them only
// while it is mounted and [StatusReady], and runs every cleanup before
// instantiating again.
//
// # Tooltips
//
// [Reposition] places a floating panel next to an anchor inside a container,
// flipping sides on overflow. [TooltipFollower] eases the panel between
// positions with [gween].
//
// # Scripts
//
// [Chart.InjectMove] and friends drive a mounted chart with synthetic input,
// and [LoadScript] replays a JSON list of such steps. The chartsense command
// uses them to replay interaction sessions headlessly.
//
// [gween]: https://github.com/tanema/gween
// [ebitenhost]: https://pkg.go.dev/github.com/phanxgames/chartsense/ebitenhost
// [tcellhost]: https://pkg.go.dev/github.com/phanxgames/chartsense/tcellhost
package chartsense
