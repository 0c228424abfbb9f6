package render

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/text/number"

	"scrolly/models"
	"scrolly/scenes"
	"scrolly/utils"
)

// barFill is the share of each slot a bar takes, the rest is spacing.
const barFill = 0.8

func (r *Renderer) barPlan(scene *scenes.Scene, view scenes.View) (*Plan, error) {
	categories := view.Categories
	if categories == nil || categories.Len() == 0 {
		return nil, fmt.Errorf("scene %q: no categories to draw for group %q", scene.Key, view.Group)
	}

	points := categories.Points()
	_, hi, step := models.Nice(0, categories.Max(), models.DefaultTickCount)
	if hi <= 0 {
		hi, step = 1, 0.1
	}

	slot := float64(r.chart.InnerWidth()) / float64(len(points))
	bars := make([]chart.Value, 0, len(points))
	for _, p := range points {
		bars = append(bars, chart.Value{
			Label: p.Category(),
			Value: p.Value(),
			Style: chart.Style{
				FillColor:   color(scene.Style.Color),
				StrokeColor: color(scene.Style.Color),
			},
		})
	}

	var ticks []float64
	for v := 0.0; v <= hi+step/2; v += step {
		ticks = append(ticks, v)
	}

	c := chart.BarChart{
		Width:      r.chart.Width,
		Height:     r.chart.Height,
		Background: r.background(),
		BarWidth:   int(slot * barFill),
		BarSpacing: int(slot * (1 - barFill)),
		YAxis: chart.YAxis{
			Name:  scene.Style.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: hi},
			Ticks: r.valueTicks(ticks),
		},
		Bars: bars,
	}
	frame, err := svg(c)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", scene.Key, err)
	}

	return &Plan{
		Scene: scene.Key,
		Steps: []Step{{
			Name:    "bars",
			SVG:     frame,
			Draw:    scene.Style.DrawDuration,
			Details: r.details(categories),
		}},
	}, nil
}

// details gives each category its emissions in billions of tonnes and its share of the drawn total.
func (r *Renderer) details(categories *models.CategorySeries) []Detail {
	total := categories.Total()
	details := make([]Detail, 0, categories.Len())
	for _, p := range categories.Points() {
		share := 0.0
		if total > 0 {
			share = utils.RoundToXDp(p.Value()/total*100, 1)
		}
		details = append(details, Detail{
			Category:  p.Category(),
			Emissions: r.printer.Sprintf("%.2f billion tonnes", p.Value()/1e9),
			Share:     r.printer.Sprint(number.Decimal(share, number.MinFractionDigits(1), number.MaxFractionDigits(1))) + "%",
		})
	}
	return details
}
