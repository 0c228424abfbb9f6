package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"scrolly/app"
	"scrolly/config"
	"scrolly/logging"
	"scrolly/web/handlers"
)

func main() {
	flags, err := config.ParseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		slog.Error("couldn't parse flags", "error", err)
		os.Exit(2)
	}
	logging.Init(os.Stderr, flags.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flags); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, flags *config.Flags) error {
	var renderer handlers.Renderer
	loaded, err := app.Load(ctx, app.Options{
		StoryPath:   flags.StoryPath,
		DataDir:     flags.DataDir,
		LoadTimeout: flags.LoadTimeout,
	})
	if err != nil {
		// Still serve, so the failure shows up in the browser instead of a dead port.
		slog.Error("couldn't load story", "error", err)
		renderer, err = handlers.NewFailure(err)
	} else {
		slog.Info("story loaded", "title", loaded.Story.Title, "scenes", loaded.Registry.Len(), "datasets", loaded.Store.Names())
		renderer, err = handlers.NewStory(loaded.Story, loaded.Registry, loaded.Store, flags.Sessions)
	}
	if err != nil {
		return err
	}

	server := handlers.NewServer(renderer)
	return server.Start(ctx, flags.Addr)
}
