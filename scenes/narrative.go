package scenes

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var narrativePolicy = newNarrativePolicy()

func newNarrativePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Narrative cleans story HTML so it can go into templates unescaped.
func Narrative(html string) template.HTML {
	return template.HTML(strings.TrimSpace(narrativePolicy.Sanitize(html)))
}
