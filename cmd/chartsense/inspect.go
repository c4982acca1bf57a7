package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/phanxgames/chartsense"
)

var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	warn   = color.New(color.FgYellow)
)

func inspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the chart's status, scales, and series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, err := a.loadChart()
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), chart)
			return nil
		},
	}
}

func statusColor(s chartsense.Status) *color.Color {
	if s == chartsense.StatusReady {
		return good
	}
	return warn
}

// describeScale names a scale and its domain.
func describeScale(s chartsense.Scale) string {
	switch s := s.(type) {
	case *chartsense.LinearScale:
		d := s.Domain()
		return fmt.Sprintf("linear [%g, %g]", d[0], d[1])
	case *chartsense.BandScale:
		d := s.Domain()
		if len(d) > 4 {
			d = append(d[:3:3], "…")
		}
		return fmt.Sprintf("band (%d) [%s]", len(s.Domain()), strings.Join(d, ", "))
	case nil:
		return "none"
	}
	return fmt.Sprintf("%T", s)
}

func printSummary(w io.Writer, chart *chartsense.Chart) {
	st := chart.State()
	cfg := chart.Config()

	brand.Fprintf(w, "chart %s\n", chart.ID())
	fmt.Fprintf(w, "  type:     %s\n", cfg.Type)
	fmt.Fprintf(w, "  status:   %s\n", statusColor(st.Status).Sprint(st.Status))
	d := st.Dimensions
	fmt.Fprintf(w, "  size:     %gx%g %s\n", d.Width, d.Height,
		subtle.Sprintf("(plot %gx%g)", d.InnerWidth, d.InnerHeight))
	fmt.Fprintf(w, "  records:  %d\n", len(st.Data))
	if st.Scales != nil {
		fmt.Fprintf(w, "  x scale:  %s\n", describeScale(st.Scales.X))
		fmt.Fprintf(w, "  y scale:  %s\n", describeScale(st.Scales.Y))
	}

	fmt.Fprintf(w, "\n  %s\n", subtle.Sprint("series"))
	for _, s := range st.ProcessedSeries {
		c := chartsense.ParseColor(s.Color)
		swatch := color.RGB(int(c.R), int(c.G), int(c.B)).Sprint("■")
		fmt.Fprintf(w, "  %s %-12s %-8s %-6s %s %d records\n",
			swatch, s.ID, s.Type, s.InteractionMode, s.Strategy.Kind(), len(s.Data))
	}
}
