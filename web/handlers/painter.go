package handlers

import (
	"context"
	"html/template"
	"strings"
	"time"

	ds "github.com/starfederation/datastar-go/datastar"

	"scrolly/nav"
	"scrolly/render"
	"scrolly/scenes"
)

// ssePainter draws onto one client's page by patching elements over a datastar SSE stream.
type ssePainter struct {
	sse       *ds.ServerSentEventGenerator
	templates *template.Template
	renderer  *render.Renderer

	// pending holds the steps of the last Paint still to be revealed, notes the annotations shown so far.
	pending []render.Step
	notes   []*render.Note
}

func newPainter(sse *ds.ServerSentEventGenerator, templates *template.Template, renderer *render.Renderer) *ssePainter {
	return &ssePainter{
		sse:       sse,
		templates: templates,
		renderer:  renderer,
	}
}

func (p *ssePainter) Clear(context.Context) error {
	return p.patch("clear", nil)
}

// Paint swaps the narrative and shows the plan's first step. The rest wait for Reveal.
func (p *ssePainter) Paint(ctx context.Context, scene *scenes.Scene, view scenes.View) error {
	p.pending, p.notes = nil, nil
	plan, err := p.renderer.Plan(scene, view)
	if err != nil {
		return err
	}
	if err := p.patch("narrative", scene); err != nil {
		return err
	}
	if err := p.step(ctx, plan.Steps[0]); err != nil {
		return err
	}
	p.pending = plan.Steps[1:]
	return nil
}

// Reveal shows each remaining step after its delay.
func (p *ssePainter) Reveal(ctx context.Context) error {
	for len(p.pending) > 0 {
		step := p.pending[0]
		p.pending = p.pending[1:]
		if err := p.step(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

func (p *ssePainter) step(ctx context.Context, step render.Step) error {
	if err := wait(ctx, step.Delay); err != nil {
		return err
	}
	if step.Note != nil {
		p.notes = append(p.notes, step.Note)
	}

	var buf strings.Builder
	if err := p.templates.ExecuteTemplate(&buf, "frame", step); err != nil {
		return err
	}
	details := map[string]interface{}{
		"Notes":   p.notes,
		"Details": step.Details,
	}
	if err := p.templates.ExecuteTemplate(&buf, "details", details); err != nil {
		return err
	}
	return p.sse.PatchElements(buf.String())
}

func (p *ssePainter) Controls(_ context.Context, snapshot nav.Snapshot) error {
	if err := p.patch("controls", snapshot); err != nil {
		return err
	}
	if len(snapshot.Groups) == 0 {
		return nil
	}
	return p.sse.MarshalAndPatchSignals(map[string]string{"group": snapshot.Group})
}

func (p *ssePainter) patch(name string, data any) error {
	var buf strings.Builder
	if err := p.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	return p.sse.PatchElements(buf.String())
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
