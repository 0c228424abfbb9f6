package render

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"scrolly/config"
	"scrolly/models"
	"scrolly/scenes"
)

// perScenePadding widens a scene's own domain the same way the shared scale is padded.
const perScenePadding = 1

var connectorColor = drawing.ColorFromHex("888888")

func (r *Renderer) linePlan(scene *scenes.Scene, view scenes.View) (*Plan, error) {
	series := view.Series
	if series == nil || series.Len() < 2 {
		return nil, fmt.Errorf("scene %q: a line needs at least two points", scene.Key)
	}

	scale := view.Scale
	if scale == nil {
		lo, hi := series.Extent()
		own := models.NewLinearScale(lo, hi, perScenePadding, float64(r.chart.InnerHeight()))
		scale = &own
	}

	plan := &Plan{Scene: scene.Key}
	frame, err := r.lineFrame(scene, series, scale, nil)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", scene.Key, err)
	}
	plan.Steps = append(plan.Steps, Step{
		Name: "path",
		SVG:  frame,
		Draw: scene.Style.DrawDuration,
	})

	for i, annotation := range scene.Annotations {
		frame, err := r.lineFrame(scene, series, scale, scene.Annotations[:i+1])
		if err != nil {
			return nil, fmt.Errorf("scene %q annotation %d: %w", scene.Key, annotation.Year, err)
		}
		delay := r.stagger
		if i == 0 {
			delay = scene.Style.DrawDuration
		}
		plan.Steps = append(plan.Steps, Step{
			Delay: delay,
			Name:  "annotation-" + strconv.Itoa(annotation.Year),
			SVG:   frame,
			Note: &Note{
				Year:  annotation.Year,
				Title: annotation.Title,
				Label: annotation.Label,
			},
		})
	}
	return plan, nil
}

// lineFrame draws the axes, the whole line and the given annotations.
func (r *Renderer) lineFrame(scene *scenes.Scene, series *models.TimeSeries, scale *models.SharedScale, annotations []config.Annotation) (template.HTML, error) {
	points := series.Points()
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Date()
		ys[i] = p.Value()
	}

	lo, hi := scale.Domain()
	first, last := series.YearExtent()
	minX, maxX := chart.TimeToFloat64(xs[0]), chart.TimeToFloat64(xs[len(xs)-1])

	seriesList := []chart.Series{
		chart.TimeSeries{
			Name:    series.Name(),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color(scene.Style.Color),
				StrokeWidth: scene.Style.StrokeWidth,
			},
		},
	}

	if len(annotations) > 0 {
		// Pixel offsets become data offsets so the note sits where the story placed it.
		yearsPerPixel := float64(last-first) / float64(r.chart.InnerWidth())
		valuePerPixel := (hi - lo) / float64(r.chart.InnerHeight())

		notes := chart.AnnotationSeries{Name: "annotations"}
		for _, a := range annotations {
			point, ok := series.Find(a.Year)
			if !ok {
				return "", fmt.Errorf("no data for year %d", a.Year)
			}
			noteYear := clamp(float64(a.Year)+float64(a.DX)*yearsPerPixel, float64(first), float64(last))
			noteValue := clamp(point.Value()-float64(a.DY)*valuePerPixel, lo, hi)
			noteDate := yearToTime(noteYear)

			seriesList = append(seriesList, chart.TimeSeries{
				Name:    "connector-" + strconv.Itoa(a.Year),
				XValues: []time.Time{point.Date(), noteDate},
				YValues: []float64{point.Value(), noteValue},
				Style: chart.Style{
					StrokeColor:     connectorColor,
					StrokeWidth:     1,
					StrokeDashArray: []float64{4, 2},
				},
			})
			notes.Annotations = append(notes.Annotations, chart.Value2{
				Label:  a.Title,
				XValue: chart.TimeToFloat64(noteDate),
				YValue: noteValue,
			})
		}
		seriesList = append(seriesList, notes)
	}

	c := chart.Chart{
		Width:      r.chart.Width,
		Height:     r.chart.Height,
		Background: r.background(),
		XAxis: chart.XAxis{
			Name:  scene.Style.XLabel,
			Range: &chart.ContinuousRange{Min: minX, Max: maxX},
			Ticks: yearTicks(first, last),
		},
		YAxis: chart.YAxis{
			Name:  scene.Style.YLabel,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			Ticks: r.valueTicks(scale.Ticks()),
		},
		Series: seriesList,
	}
	return svg(c)
}

func yearTicks(first, last int) []chart.Tick {
	lo, hi, step := models.Nice(float64(first), float64(last), models.DefaultTickCount)
	if step <= 0 {
		return nil
	}
	var ticks []chart.Tick
	for y := lo; y <= hi; y += step {
		if y < float64(first) || y > float64(last) {
			continue
		}
		ticks = append(ticks, chart.Tick{
			Value: chart.TimeToFloat64(yearToTime(y)),
			Label: strconv.Itoa(int(y)),
		})
	}
	return ticks
}

func (r *Renderer) valueTicks(values []float64) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(values))
	for _, v := range values {
		ticks = append(ticks, chart.Tick{Value: v, Label: r.formatNumber(v)})
	}
	return ticks
}

// yearToTime places fractional years inside their year so offsets keep their sub-year precision.
func yearToTime(year float64) time.Time {
	whole := int(year)
	if year < 0 && float64(whole) != year {
		whole--
	}
	start := time.Date(whole, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(whole+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start.Add(time.Duration((year - float64(whole)) * float64(end.Sub(start))))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
