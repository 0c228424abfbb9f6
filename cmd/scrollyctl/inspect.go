package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"scrolly/app"
	"scrolly/scenes"
)

func newInspectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show the story's datasets, shared scale and scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			return inspect(newPrinter(cmd.OutOrStdout(), opts.noColor), loaded)
		},
	}
}

func inspect(p *printer, loaded *app.App) error {
	p.Header(loaded.Story.Title)

	p.Header("Datasets")
	var rows [][]string
	for _, name := range loaded.Store.Names() {
		if series, ok := loaded.Store.TimeSeries(name); ok {
			first, last := series.YearExtent()
			lo, hi := series.Extent()
			rows = append(rows, []string{
				name, "timeseries", strconv.Itoa(series.Len()),
				fmt.Sprintf("%d-%d", first, last), formatFloat(lo), formatFloat(hi),
			})
		}
		if categories, ok := loaded.Store.Categories(name); ok {
			span := "-"
			if categories.HasGroups() {
				span = strings.Join(categories.Groups(), ", ")
			}
			rows = append(rows, []string{
				name, "categories", strconv.Itoa(categories.Len()),
				span, "0", formatFloat(categories.Max()),
			})
		}
	}
	if err := p.Table([]string{"Name", "Kind", "Rows", "Span", "Min", "Max"}, rows); err != nil {
		return err
	}

	p.Header("Shared scale")
	if scale, ok := loaded.Store.SharedScale(); ok {
		paddedLo, paddedHi := scale.Padded()
		lo, hi := scale.Domain()
		p.Print("source %s, padded [%s, %s], domain [%s, %s], step %s",
			loaded.Story.SharedScale.Source,
			formatFloat(paddedLo), formatFloat(paddedHi),
			formatFloat(lo), formatFloat(hi), formatFloat(scale.Step()))
	} else {
		p.Print("none")
	}

	p.Header("Scenes")
	rows = rows[:0]
	for _, scene := range loaded.Registry.All() {
		rows = append(rows, []string{
			strconv.Itoa(scene.Index + 1), scene.Key, string(scene.Kind), scene.Dataset,
			slice(scene), scaleName(scene), strconv.Itoa(len(scene.Annotations)),
		})
	}
	return p.Table([]string{"#", "Key", "Kind", "Dataset", "Slice", "Scale", "Annotations"}, rows)
}

func slice(scene *scenes.Scene) string {
	if scene.Kind == scenes.Bar {
		if scene.Grouped {
			return "by group"
		}
		return "all"
	}
	from, to := "start", "end"
	if scene.FromYear != 0 {
		from = strconv.Itoa(scene.FromYear)
	}
	if scene.ToYear != 0 {
		to = strconv.Itoa(scene.ToYear)
	}
	return from + "-" + to
}

func scaleName(scene *scenes.Scene) string {
	switch {
	case scene.Kind == scenes.Bar:
		return "zero based"
	case scene.UsesSharedScale:
		return "shared"
	default:
		return "own"
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
