// Package app loads everything a story needs before it can be shown.
package app

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"scrolly/config"
	"scrolly/data"
	"scrolly/scenes"
	"scrolly/store"
)

type App struct {
	Story    *config.Story
	Store    *store.Store
	Registry *scenes.Registry
}

// Options point at a story file and a data directory. Empty fields fall back to the embedded story and data.
type Options struct {
	StoryPath   string
	DataDir     string
	LoadTimeout time.Duration
}

func (o Options) storyFS() (fs.FS, string) {
	if o.StoryPath == "" {
		return data.FS, data.StoryFile
	}
	return os.DirFS(filepath.Dir(o.StoryPath)), filepath.Base(o.StoryPath)
}

func (o Options) dataFS() fs.FS {
	if o.DataDir == "" {
		return data.FS
	}
	return os.DirFS(o.DataDir)
}

// Load reads the story, loads its datasets within the timeout and builds the scenes.
func Load(ctx context.Context, opts Options) (*App, error) {
	fsys, name := opts.storyFS()
	story, err := config.LoadStory(fsys, name)
	if err != nil {
		return nil, err
	}

	if opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.LoadTimeout)
		defer cancel()
	}
	st, err := store.Load(ctx, store.NewOpener(opts.dataFS(), nil), story.Datasets, story.SharedScale)
	if err != nil {
		return nil, err
	}

	registry, err := scenes.Build(story, st)
	if err != nil {
		return nil, err
	}
	return &App{Story: story, Store: st, Registry: registry}, nil
}
