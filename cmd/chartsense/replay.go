package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/phanxgames/chartsense"
)

func replayCmd(a *app) *cobra.Command {
	var out string
	var selection bool
	cmd := &cobra.Command{
		Use:   "replay <script.json>",
		Short: "Run an interaction script and print its snapshots as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			script, err := chartsense.LoadScript(data)
			if err != nil {
				return err
			}

			chart, err := a.loadChart()
			if err != nil {
				return err
			}
			cfg := chart.Config()
			if selection {
				chart.SetSensors(append(chartsense.DefaultSensors(cfg.Type),
					chartsense.SelectionSensor(chartsense.ChannelSelection, chartsense.SearchNearestX))...)
			}
			chart.Mount(headless{cfg.Width, cfg.Height}, nil)
			defer chart.Unmount()

			var snaps []chartsense.Snapshot
			script.Run(chart, func(s chartsense.Snapshot) { snaps = append(snaps, s) })
			a.logger.Info("replayed script",
				zap.String("script", args[0]),
				zap.Int("steps", script.Len()),
				zap.Int("snapshots", len(snaps)))

			doc, err := encodeSnapshots(snaps)
			if err != nil {
				return err
			}
			doc = gjson.Get(doc, "@pretty").Raw
			if out == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
				return err
			}
			return os.WriteFile(out, []byte(doc), 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write snapshots to this file instead of stdout")
	cmd.Flags().BoolVar(&selection, "selection", false, "also record presses on the selection channel")
	return cmd
}

var pathEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)

// encodeSnapshots renders snapshots as {"snapshots":[...]}. Each entry
// carries its label, step, status, and one object per active channel.
func encodeSnapshots(snaps []chartsense.Snapshot) (string, error) {
	doc := `{"snapshots":[]}`
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, v)
		}
	}
	for i, s := range snaps {
		if doc, err = sjson.SetRaw(doc, "snapshots.-1", "{}"); err != nil {
			return "", err
		}
		base := fmt.Sprintf("snapshots.%d", i)
		set(base+".label", s.Label)
		set(base+".step", s.Step)
		set(base+".status", s.Status.String())
		if err == nil {
			doc, err = sjson.SetRaw(doc, base+".interactions", "{}")
		}

		channels := make([]string, 0, len(s.Interactions))
		for ch := range s.Interactions {
			channels = append(channels, ch)
		}
		sort.Strings(channels)
		for _, ch := range channels {
			p := s.Interactions[ch]
			if p == nil {
				continue
			}
			key := base + ".interactions." + pathEscaper.Replace(ch)
			set(key+".pointer.x", p.Pointer.X)
			set(key+".pointer.y", p.Pointer.Y)
			set(key+".pointer.touch", p.Pointer.Touch)
			set(key+".focus", p.FocusIndex)
			set(key+".targets", len(p.Targets))
			if p.Best != nil {
				set(key+".best.series", p.Best.SeriesID)
				set(key+".best.index", p.Best.Index)
				set(key+".best.x", p.Best.X)
				set(key+".best.y", p.Best.Y)
			}
		}
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
