package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"scrolly/config"
	"scrolly/scenes"
)

// Step is one unit of drawing. Delay is measured from the end of the previous step.
type Step struct {
	Delay time.Duration
	Name  string
	SVG   template.HTML
	// Draw is how long the browser animates the line in, zero for frames that appear at once.
	Draw    time.Duration
	Note    *Note
	Details []Detail
}

// Note is the text of an annotation revealed by its step.
type Note struct {
	Year  int
	Title string
	Label string
}

// Detail is the breakdown shown for one bar.
type Detail struct {
	Category  string
	Emissions string
	Share     string
}

// Plan is the ordered list of steps that draws a scene. Each step's SVG is a complete frame that replaces the last.
type Plan struct {
	Scene string
	Steps []Step
}

// Final is the frame left on screen once every step has run.
func (p *Plan) Final() Step {
	return p.Steps[len(p.Steps)-1]
}

// Duration is the time from the first step to the last, not counting the draw animation.
func (p *Plan) Duration() time.Duration {
	var total time.Duration
	for _, step := range p.Steps {
		total += step.Delay
	}
	return total
}

type Renderer struct {
	chart   config.Chart
	stagger time.Duration
	printer *message.Printer
}

func New(chart config.Chart, stagger time.Duration) *Renderer {
	return &Renderer{
		chart:   chart,
		stagger: stagger,
		printer: message.NewPrinter(language.English),
	}
}

func (r *Renderer) Plan(scene *scenes.Scene, view scenes.View) (*Plan, error) {
	switch scene.Kind {
	case scenes.Line:
		return r.linePlan(scene, view)
	case scenes.Bar:
		return r.barPlan(scene, view)
	default:
		return nil, fmt.Errorf("scene %q: nothing draws kind %q", scene.Key, scene.Kind)
	}
}

func (r *Renderer) background() chart.Style {
	m := r.chart.Margin
	return chart.Style{
		Padding: chart.Box{Top: m.Top, Left: m.Left, Right: m.Right, Bottom: m.Bottom},
	}
}

func (r *Renderer) formatNumber(v float64) string {
	return r.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func svg(c renderable) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.Render(chart.SVG, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
