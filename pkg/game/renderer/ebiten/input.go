package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "stationbuilder/pkg/engine/input"
)

// keyCodes names the keys the game binds, in the codes the terminal reader uses
var keyCodes = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyB, "b"},
	{ebiten.KeyC, "c"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyE, "e"},
	{ebiten.KeyI, "i"},
	{ebiten.KeyJ, "j"},
	{ebiten.KeyK, "k"},
	{ebiten.KeyL, "l"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyW, "w"},
	{ebiten.KeyX, "x"},
	{ebiten.KeySpace, "space"},
	{ebiten.KeyTab, "tab"},
	{ebiten.KeyEnter, "enter"},
	{ebiten.KeyEscape, "escape"},
	{ebiten.KeyF9, "f9"},
}

func intentFor(code string) engineinput.Intent {
	return engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
		Device: engineinput.DeviceKeyboard,
		Code:   code,
	}))
}

// heldDirection returns -1, 0 or 1 from the keys currently held for walking.
// Walking is continuous in the graphical frontend, unlike the one-shot terminal keys.
func heldDirection() int {
	dir := 0
	for _, k := range keyCodes {
		if !ebiten.IsKeyPressed(k.key) {
			continue
		}
		switch intentFor(k.code).Action {
		case engineinput.ActionMoveLeft:
			dir = -1
		case engineinput.ActionMoveRight:
			if dir == 0 {
				dir = 1
			}
		}
	}
	return dir
}

// checkInput returns the intents for keys pressed this frame, movement excluded
func (e *EbitenRenderer) checkInput(building bool) []engineinput.Intent {
	var out []engineinput.Intent
	for _, k := range keyCodes {
		if !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		intent := intentFor(k.code)
		switch intent.Action {
		case engineinput.ActionNone:
			continue
		case engineinput.ActionMoveLeft, engineinput.ActionMoveRight:
			// held keys walk; in build mode they also nudge the cursor
			if !building {
				continue
			}
		}
		out = append(out, intent)
	}
	return out
}
