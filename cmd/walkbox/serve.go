package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/walkbox/network"
	"github.com/lixenwraith/walkbox/scene"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a scene to websocket clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, wb, err := scene.Load(a.cfg.Scene.Name)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()
			return network.NewServer(a.cfg, sc, wb).Run(ctx)
		},
	}
	cmd.Flags().String("addr", "", "listen address")
	if err := a.v.BindPFlag("server.address", cmd.Flags().Lookup("addr")); err != nil {
		panic(err)
	}
	return cmd
}
