// Command roomcheck validates room catalogs and dry-runs build plans against them.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/logger"
)

func main() {
	logger.Init(os.Stderr)

	cmd := &cli.Command{
		Name:  "roomcheck",
		Usage: "validate a room catalog and try out build plans",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "room catalog JSON (default: embedded catalog)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "check the catalog and list its room types",
				Action: validateAction,
			},
			{
				Name:      "plan",
				Usage:     "build the starting room, then each TYPE@X,Y in order, and print the station",
				ArgsUsage: "TYPE@X,Y ...",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "strict", Usage: "stop at the first failed build and exit non-zero"},
					&cli.BoolFlag{Name: "no-map", Usage: "skip the station dump"},
				},
				Action: planAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadCatalog(cmd *cli.Command) (*config.Catalog, error) {
	if path := cmd.String("config"); path != "" {
		return config.Load(path)
	}
	return config.Default()
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	writeCatalogSummary(cmd.Root().Writer, cat)
	return nil
}

func planAction(ctx context.Context, cmd *cli.Command) error {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	steps, err := parsePlan(cmd.Args().Slice())
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	opts := planOptions{Strict: cmd.Bool("strict"), Map: !cmd.Bool("no-map")}
	if err := runPlan(cmd.Root().Writer, cat, steps, opts); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}
