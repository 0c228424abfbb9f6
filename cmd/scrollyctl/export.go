package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scrolly/app"
	"scrolly/render"
	"scrolly/utils"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		out   string
		group string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the final frame of every scene as SVG",
		Long: `export renders each scene with every annotation revealed and writes it to
<out>/<scene key>.svg. Existing files are never overwritten, a numeric suffix is added instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return err
			}
			return export(newPrinter(cmd.OutOrStdout(), opts.noColor), loaded, out, group)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", ".", "directory to write SVG files to")
	cmd.Flags().StringVar(&group, "group", "", "group to draw in grouped scenes (default: the dataset's default group)")
	return cmd
}

func export(p *printer, loaded *app.App, dir, group string) error {
	renderer := render.New(loaded.Story.Chart, loaded.Story.Stagger)
	for _, scene := range loaded.Registry.All() {
		sceneGroup := ""
		if scene.Grouped {
			sceneGroup = group
		}
		view, err := scene.View(loaded.Store, sceneGroup)
		if err != nil {
			return err
		}
		if scene.Grouped && view.Categories.Len() == 0 {
			return fmt.Errorf("scene %q has no group %q", scene.Key, group)
		}
		plan, err := renderer.Plan(scene, view)
		if err != nil {
			return err
		}

		path := utils.NextAvailableFilename(dir, scene.Key, ".svg")
		if err := os.WriteFile(path, []byte(plan.Final().SVG), 0o644); err != nil {
			return err
		}
		p.Success("%s -> %s", scene.Key, path)
	}
	return nil
}
