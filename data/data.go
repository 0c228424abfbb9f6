// Package data embeds the default story and the datasets it reads.
package data

import "embed"

// StoryFile is the story's path inside FS.
const StoryFile = "story.yaml"

//go:embed story.yaml *.csv
var FS embed.FS
