package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phanxgames/chartsense"
	"github.com/phanxgames/chartsense/ebitenhost"
	"github.com/phanxgames/chartsense/tcellhost"
)

func viewCmd(a *app) *cobra.Command {
	var tui, fps bool
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the chart in a window, or in the terminal with --tui",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := ebitenhost.MarkSelector
			if tui {
				selector = tcellhost.CellSelector
			}
			chart, err := a.loadChart(chartsense.WithBehaviors(
				chartsense.HighlightBehavior(chartsense.HighlightOptions{Selector: selector}),
			))
			if err != nil {
				return err
			}
			a.logger.Info("opening chart", zap.String("chart", chart.ID()), zap.Bool("tui", tui))

			if tui {
				term, err := tcellhost.Open(chart)
				if err != nil {
					return err
				}
				defer term.Close()
				return term.Run()
			}
			cfg := chart.Config()
			return ebitenhost.Run(ebitenhost.NewGame(chart, ebitenhost.RunConfig{
				Title:   "chartsense",
				Width:   int(cfg.Width),
				Height:  int(cfg.Height),
				ShowFPS: fps,
			}))
		},
	}
	cmd.Flags().BoolVar(&tui, "tui", false, "draw in the terminal instead of a window")
	cmd.Flags().BoolVar(&fps, "fps", false, "show frame rate (window only)")
	return cmd
}
