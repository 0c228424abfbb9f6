package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
)

// Failure is served in place of the story when its data couldn't be loaded.
type Failure struct {
	templates *template.Template
	err       error
}

func NewFailure(err error) (*Failure, error) {
	templates, parseErr := parseTemplates("templates/failure/*.gohtml")
	if parseErr != nil {
		return nil, parseErr
	}
	return &Failure{templates: templates, err: err}, nil
}

func (f *Failure) Templates() *template.Template {
	return f.templates
}

func (f *Failure) Handlers() map[string]func(w http.ResponseWriter, r *http.Request) {
	return map[string]func(w http.ResponseWriter, r *http.Request){
		"/story/": f.UnavailableHandler,
	}
}

func (f *Failure) Data() map[string]interface{} {
	return map[string]interface{}{
		"error": f.err.Error(),
	}
}

// UnavailableHandler answers every navigation route while there is no story to navigate.
func (f *Failure) UnavailableHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("navigation without a story", "path", r.URL.Path)
	http.Error(w, "story unavailable: "+f.err.Error(), http.StatusServiceUnavailable)
}
