package handlers

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	ds "github.com/starfederation/datastar-go/datastar"

	"scrolly/config"
	"scrolly/metrics"
	"scrolly/nav"
	"scrolly/render"
	"scrolly/scenes"
	"scrolly/store"
	"scrolly/web"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// Story serves the scenes of one story. Every client gets its own Controller, kept in a bounded LRU.
type Story struct {
	templates *template.Template

	story    *config.Story
	registry *scenes.Registry
	store    *store.Store
	renderer *render.Renderer

	sessions *lru.Cache[string, *nav.Controller]
}

type groupSig struct {
	Group string `json:"group"`
}

func NewStory(story *config.Story, registry *scenes.Registry, st *store.Store, sessions int) (*Story, error) {
	templates, err := parseTemplates("templates/story/*.gohtml")
	if err != nil {
		return nil, err
	}
	cache, err := lru.NewWithEvict(sessions, func(string, *nav.Controller) {
		metrics.Sessions.Dec()
	})
	if err != nil {
		return nil, err
	}
	return &Story{
		templates: templates,
		story:     story,
		registry:  registry,
		store:     st,
		renderer:  render.New(story.Chart, story.Stagger),
		sessions:  cache,
	}, nil
}

func parseTemplates(pattern string) (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"inc":    func(i int) int { return i + 1 },
		"millis": func(d time.Duration) int64 { return d.Milliseconds() },
	}).ParseFS(web.Templates, pattern)
}

func (s *Story) Templates() *template.Template {
	return s.templates
}

func (s *Story) Handlers() map[string]func(w http.ResponseWriter, r *http.Request) {
	return map[string]func(w http.ResponseWriter, r *http.Request){
		"GET /story/start":  s.StartHandler,
		"POST /story/next":  s.NextHandler,
		"POST /story/prev":  s.PrevHandler,
		"POST /story/group": s.GroupHandler,
	}
}

func (s *Story) Data() map[string]interface{} {
	total := s.registry.Len()
	return map[string]interface{}{
		"title":    s.story.Title,
		"datastar": datastarScript,
		"controls": nav.Snapshot{
			Index:   0,
			Total:   total,
			Buttons: nav.ButtonsFor(0, total),
			Scene:   s.registry.Resolve(0),
		},
	}
}

// StartHandler puts the client back on the first scene and paints it.
func (s *Story) StartHandler(w http.ResponseWriter, r *http.Request) {
	controller := s.controller(w, r, true)
	s.run(w, r, controller, "start", controller.Start)
}

func (s *Story) NextHandler(w http.ResponseWriter, r *http.Request) {
	controller := s.controller(w, r, false)
	s.run(w, r, controller, "next", controller.Advance)
}

func (s *Story) PrevHandler(w http.ResponseWriter, r *http.Request) {
	controller := s.controller(w, r, false)
	s.run(w, r, controller, "prev", controller.Retreat)
}

// GroupHandler switches the region a grouped bar scene shows.
func (s *Story) GroupHandler(w http.ResponseWriter, r *http.Request) {
	var sig groupSig
	if err := ds.ReadSignals(r, &sig); err != nil {
		slog.Warn("error reading signals", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	controller := s.controller(w, r, false)
	s.run(w, r, controller, "group", func(ctx context.Context, p nav.Painter) (nav.Outcome, error) {
		return controller.SelectGroup(ctx, p, sig.Group)
	})
}

// run streams one transition's patches back on the request's SSE response.
// A dropped or empty transition still answers with the current controls so the page never drifts.
func (s *Story) run(w http.ResponseWriter, r *http.Request, controller *nav.Controller, direction string, transition func(context.Context, nav.Painter) (nav.Outcome, error)) {
	sse := ds.NewSSE(w, r)
	painter := newPainter(sse, s.templates, s.renderer)

	outcome, err := transition(r.Context(), painter)
	switch {
	case errors.Is(err, nav.ErrUnknownGroup):
		slog.Warn("group selection rejected", "direction", direction, "error", err)
	case errors.Is(err, context.Canceled):
		slog.Debug("client left mid paint", "direction", direction)
	case err != nil:
		slog.Error("error running transition", "direction", direction, "error", err)
	default:
		slog.Debug("transition", "direction", direction, "outcome", outcome.String())
	}
	if outcome == nav.Applied {
		return
	}

	snapshot, err := controller.Snapshot()
	if err != nil {
		slog.Error("couldn't read controls state", "direction", direction, "error", err)
		return
	}
	if err := painter.Controls(r.Context(), snapshot); err != nil {
		slog.Debug("couldn't resend controls", "direction", direction, "error", err)
	}
}

// controller returns the client's Controller, making a fresh one when asked to or when there is none yet.
func (s *Story) controller(w http.ResponseWriter, r *http.Request, fresh bool) *nav.Controller {
	clientID := getClientID(w, r)
	if !fresh {
		if c, ok := s.sessions.Get(clientID); ok {
			return c
		}
	}
	c := nav.New(s.registry, s.store)
	if !s.sessions.Contains(clientID) {
		metrics.Sessions.Inc()
	}
	s.sessions.Add(clientID, c)
	return c
}
