package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/walkbox/audio"
	"github.com/lixenwraith/walkbox/core"
	"github.com/lixenwraith/walkbox/game"
	"github.com/lixenwraith/walkbox/scene"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Walk the agent around a scene in the terminal",
		Long: `Hover to preview the shortest path, left click to walk it.
Logs go to logger.log_file only; the terminal belongs to the game.`,
		Annotations: map[string]string{loggerAnnotation: loggerFileOnly},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, wb, err := scene.Load(a.cfg.Scene.Name)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize terminal: %w", err)
			}
			core.RegisterScreen(screen)
			defer func() {
				core.RegisterScreen(nil)
				screen.Fini()
			}()
			defer func() {
				if r := recover(); r != nil {
					core.HandleCrash(r)
				}
			}()

			fb := audio.NewFeedback(a.cfg.Audio)
			// Missing audio device is logged and play continues silent
			_ = fb.Init()
			defer fb.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return game.New(screen, a.cfg, sc, wb, fb).Run(ctx)
		},
	}
}
