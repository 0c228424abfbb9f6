package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"scrolly/app"
	"scrolly/config"
	"scrolly/logging"
)

type rootOptions struct {
	storyPath   string
	dataDir     string
	loadTimeout time.Duration
	noColor     bool
	logLevel    string
}

func (o *rootOptions) load(ctx context.Context) (*app.App, error) {
	return app.Load(ctx, app.Options{
		StoryPath:   o.storyPath,
		DataDir:     o.dataDir,
		LoadTimeout: o.loadTimeout,
	})
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	defaults, envErr := config.LoadEnv()
	cmd := &cobra.Command{
		Use:   "scrollyctl",
		Short: "Inspect and export scrolly stories",
		Long: `scrollyctl loads a story and its datasets the same way the server does.

Example usage:
  scrollyctl inspect                         # datasets, shared scale and scenes of the embedded story
  scrollyctl inspect --story my/story.yaml   # a story on disk, data next to it
  scrollyctl export --out frames             # final frame of every scene as SVG`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			logging.Init(cmd.ErrOrStderr(), opts.logLevel)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.storyPath, "story", defaults.StoryPath, "story YAML file (default: embedded story)")
	flags.StringVar(&opts.dataDir, "data-dir", defaults.DataDir, "directory with the story's CSV sources (default: embedded data)")
	flags.DurationVar(&opts.loadTimeout, "load-timeout", defaults.LoadTimeout, "give up loading datasets after this long")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")

	cmd.AddCommand(newInspectCmd(opts), newExportCmd(opts))
	return cmd
}
