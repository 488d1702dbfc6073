package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"stationbuilder/pkg/engine/terminal"
	"stationbuilder/pkg/game/config"
	"stationbuilder/pkg/game/devtools"
	"stationbuilder/pkg/game/gameplay"
	"stationbuilder/pkg/game/renderer"
	ebitenrenderer "stationbuilder/pkg/game/renderer/ebiten"
	"stationbuilder/pkg/game/renderer/tui"
	"stationbuilder/pkg/game/state"
	"stationbuilder/pkg/logger"
)

// stepsPerKey is how far one terminal key press advances the simulation
const stepsPerKey = 8

func main() {
	rendererName := flag.String("renderer", "tui", "rendering backend: tui or ebiten")
	configPath := flag.String("config", "", "room catalog JSON (default: embedded catalog)")
	seed := flag.Int64("seed", 0, "random seed for crew behaviour (default: time based)")
	dump := flag.Bool("dump", false, "print the starting station dump and exit")
	flag.Parse()

	logger.Init(os.Stderr)

	cat, err := loadCatalog(*configPath)
	if err != nil {
		entry := logger.Log.WithError(err).WithField("path", *configPath)
		if errors.Is(err, config.ErrConfigInvalid) {
			entry.Error("room catalog is invalid")
		} else {
			entry.Error("failed to load room catalog")
		}
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	g, err := gameplay.BuildGame(cat, *seed)
	if err != nil {
		logger.Log.WithError(err).Error("failed to build station")
		os.Exit(1)
	}

	if *dump {
		if err := devtools.WriteMapDump(os.Stdout, g.Station, devtools.InfoFor(g)); err != nil {
			logger.Log.WithError(err).Error("dump failed")
			os.Exit(1)
		}
		return
	}

	switch *rendererName {
	case "ebiten":
		runEbiten(g)
	case "tui":
		if !terminal.IsInteractive() {
			logger.Log.Error("the tui renderer needs an interactive terminal; try -dump or -renderer ebiten")
			os.Exit(1)
		}
		runTUI(g)
	default:
		logger.Log.WithField("renderer", *rendererName).Error("unknown renderer")
		os.Exit(2)
	}
}

func loadCatalog(path string) (*config.Catalog, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

func runTUI(g *state.Game) {
	// Logs would scroll the frame away
	logger.Discard()

	r := tui.New()
	renderer.SetRenderer(r)
	renderer.Init()

	for !g.Quit {
		renderer.Clear()
		renderer.RenderFrame(g)
		gameplay.ProcessIntent(g, renderer.GetInput())
		if g.Quit {
			break
		}
		gameplay.AdvanceTurn(g, stepsPerKey)
	}
	fmt.Println("Goodbye.")
}

func runEbiten(g *state.Game) {
	r := ebitenrenderer.New()
	renderer.SetRenderer(r)
	renderer.Init()

	if err := r.Run(g); err != nil {
		logger.Log.WithFields(logrus.Fields{"renderer": "ebiten"}).WithError(err).Error("window closed with error")
		os.Exit(1)
	}
}
