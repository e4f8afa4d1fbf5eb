package main

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/walkbox/navigation"
	"github.com/lixenwraith/walkbox/scene"
	"github.com/lixenwraith/walkbox/vmath"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type routePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toRoutePoint(p vmath.Point) routePoint {
	return routePoint{X: p.X, Y: p.Y}
}

// routeOutput is the JSON document printed by the route command
type routeOutput struct {
	Scene       string       `json:"scene"`
	From        routePoint   `json:"from"`
	To          routePoint   `json:"to"`
	Destination routePoint   `json:"destination"`
	Reachable   bool         `json:"reachable"`
	Distance    float64      `json:"distance"`
	Points      []routePoint `json:"points"`
}

type routeOptions struct {
	from, to []float64
	maze     bool
	mazeCfg  scene.MazeConfig
}

func newRouteCmd(a *app) *cobra.Command {
	opts := &routeOptions{}
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Compute one shortest path and print it as JSON",
		Example: `  walkbox route --scene l-room --from 150,150 --to 450,150
  walkbox route --maze --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				out routeOutput
				err error
			)
			if opts.maze {
				out = routeMaze(opts.mazeCfg)
			} else {
				out, err = routeScene(a.cfg.Scene.Name, opts.from, opts.to)
				if err != nil {
					return err
				}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().Float64SliceVar(&opts.from, "from", nil, "start point x,y (default scene spawn)")
	cmd.Flags().Float64SliceVar(&opts.to, "to", nil, "pointer x,y")
	cmd.Flags().BoolVar(&opts.maze, "maze", false, "route across a generated grid maze instead of a scene")
	cmd.Flags().IntVar(&opts.mazeCfg.Width, "maze-width", 21, "maze width in cells")
	cmd.Flags().IntVar(&opts.mazeCfg.Height, "maze-height", 15, "maze height in cells")
	cmd.Flags().Float64Var(&opts.mazeCfg.CellSize, "maze-cell", 20, "maze cell size in world pixels")
	cmd.Flags().Float64Var(&opts.mazeCfg.Braiding, "braiding", 0.2, "maze dead-end removal probability")
	cmd.Flags().Uint64Var(&opts.mazeCfg.Seed, "seed", 1, "maze seed")
	return cmd
}

func parsePoint(name string, xy []float64) (vmath.Point, error) {
	if len(xy) != 2 {
		return vmath.Point{}, fmt.Errorf("--%s takes x,y, got %d values", name, len(xy))
	}
	return vmath.Pt(xy[0], xy[1]), nil
}

func routeScene(name string, from, to []float64) (routeOutput, error) {
	sc, wb, err := scene.Load(name)
	if err != nil {
		return routeOutput{}, err
	}
	start := sc.Spawn
	if from != nil {
		if start, err = parsePoint("from", from); err != nil {
			return routeOutput{}, err
		}
	}
	if to == nil {
		return routeOutput{}, errors.New("--to is required")
	}
	pointer, err := parsePoint("to", to)
	if err != nil {
		return routeOutput{}, err
	}

	res := navigation.NewNavigator(wb).Navigate(start, pointer)
	out := routeOutput{
		Scene:       sc.Name,
		From:        toRoutePoint(start),
		To:          toRoutePoint(pointer),
		Destination: toRoutePoint(res.Destination),
		Reachable:   res.Reachable(),
		Points:      []routePoint{},
	}
	if res.Path != nil {
		out.Distance = res.Path.Distance()
		for p := range res.Path.Points() {
			out.Points = append(out.Points, toRoutePoint(p))
		}
	}
	return out, nil
}

func routeMaze(cfg scene.MazeConfig) routeOutput {
	m := scene.GenerateMaze(cfg)
	out := routeOutput{
		Scene:       fmt.Sprintf("maze-%dx%d-seed%d", m.Graph.Width, m.Graph.Height, cfg.Seed),
		From:        toRoutePoint(m.Start),
		To:          toRoutePoint(m.End),
		Destination: toRoutePoint(m.End),
		Points:      []routePoint{},
	}
	path, ok := navigation.FindPath(m.Graph, m.Start, m.End)
	if ok {
		out.Reachable = true
		out.Distance = path.Distance()
		for p := range path.Points() {
			out.Points = append(out.Points, toRoutePoint(p))
		}
	}
	return out
}
