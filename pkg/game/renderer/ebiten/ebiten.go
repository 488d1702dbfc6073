package ebiten

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	engineinput "stationbuilder/pkg/engine/input"
	"stationbuilder/pkg/game/gameplay"
	"stationbuilder/pkg/game/renderer"
	"stationbuilder/pkg/game/state"
	"stationbuilder/pkg/logger"
)

// ErrNoGame is returned by Run without a game to drive
var ErrNoGame = errors.New("no game to run")

// EbitenRenderer draws the station in a window and drives the fixed step from Ebiten's
// update loop, which runs at state.StepsPerSecond.
type EbitenRenderer struct {
	game *state.Game

	tileSize     int
	windowWidth  int
	windowHeight int

	// intents queued from outside the update loop, e.g. by GetInput callers
	mu      sync.Mutex
	pending []engineinput.Intent

	windowOpenedLogged bool
}

// New creates a new Ebiten renderer
func New() *EbitenRenderer {
	return &EbitenRenderer{
		tileSize:     defaultTileSize,
		windowWidth:  1024,
		windowHeight: 640 + hudHeight,
	}
}

// Init initializes the Ebiten window
func (e *EbitenRenderer) Init() {
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle("Station Builder")
	ebiten.SetTPS(state.StepsPerSecond)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
}

// Clear is a no-op; Ebiten redraws the whole screen every frame
func (e *EbitenRenderer) Clear() {}

// GetInput returns the oldest queued intent, or none. Ebiten reads the keyboard itself.
func (e *EbitenRenderer) GetInput() engineinput.Intent {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return engineinput.Intent{Action: engineinput.ActionNone}
	}
	intent := e.pending[0]
	e.pending = e.pending[1:]
	return intent
}

// Queue adds an intent for the next update
func (e *EbitenRenderer) Queue(intent engineinput.Intent) {
	e.mu.Lock()
	e.pending = append(e.pending, intent)
	e.mu.Unlock()
}

// StyleText returns the text unchanged; colour comes from the drawing code
func (e *EbitenRenderer) StyleText(text string, style renderer.TextStyle) string {
	return text
}

// FormatText formats a message and strips markup, which the debug font cannot colour
func (e *EbitenRenderer) FormatText(msg string, args ...any) string {
	return renderer.StripMarkup(fmt.Sprintf(msg, args...))
}

// ShowMessage adds a message to the game log
func (e *EbitenRenderer) ShowMessage(msg string) {
	if e.game != nil {
		e.game.AddMessage(msg)
	}
}

// GetViewportSize returns how many cells fit above the HUD
func (e *EbitenRenderer) GetViewportSize() (rows, cols int) {
	return (e.windowHeight - hudHeight) / e.tileSize, e.windowWidth / e.tileSize
}

// RenderFrame points the renderer at g; drawing happens in Draw
func (e *EbitenRenderer) RenderFrame(g *state.Game) {
	e.game = g
}

// Run opens the window and blocks until the game quits or the window closes
func (e *EbitenRenderer) Run(g *state.Game) error {
	if g == nil {
		return ErrNoGame
	}
	e.game = g
	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update handles input and advances the simulation by one step (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		logger.For("ebiten").WithFields(logrus.Fields{"width": w, "height": h}).Info("main window opened")
	}

	g := e.game
	if g == nil {
		return ebiten.Termination
	}

	for intent := e.GetInput(); intent.Action != engineinput.ActionNone; intent = e.GetInput() {
		gameplay.ProcessIntent(g, intent)
	}
	for _, intent := range e.checkInput(g.Mode == state.ModeBuild) {
		gameplay.ProcessIntent(g, intent)
	}

	if g.Mode == state.ModePlay {
		g.MoveDir = heldDirection()
	}
	gameplay.Step(g)

	if g.Quit {
		return ebiten.Termination
	}
	return nil
}

// Layout keeps one logical pixel per screen pixel (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		e.windowWidth, e.windowHeight = outsideWidth, outsideHeight
	}
	return e.windowWidth, e.windowHeight
}
