package handlers

import (
	"html/template"
	"net/http"
)

// Renderer is a page: its templates, the routes it adds and the data the index is executed with.
type Renderer interface {
	Templates() *template.Template
	Handlers() map[string]func(w http.ResponseWriter, r *http.Request)
	Data() map[string]interface{}
}
