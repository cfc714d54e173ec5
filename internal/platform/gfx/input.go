package gfx

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dronehub/fpv-mini/internal/core"
)

// keyBindings maps window keys to game actions.
var keyBindings = map[ebiten.Key]core.Action{
	ebiten.KeySpace:     core.ActionJump,
	ebiten.KeyArrowUp:   core.ActionJump,
	ebiten.KeyW:         core.ActionJump,
	ebiten.KeyEnter:     core.ActionConfirm,
	ebiten.KeyP:         core.ActionPause,
	ebiten.KeyR:         core.ActionRestart,
	ebiten.KeyEscape:    core.ActionQuit,
	ebiten.KeyQ:         core.ActionQuit,
	ebiten.KeyBackspace: core.ActionBack,
}

// collect builds the input frame for one refresh. justPressed reports
// keys pressed since the last refresh; tapped is a click or a touch.
func collect(justPressed func(ebiten.Key) bool, tapped bool) core.InputFrame {
	in := core.NewInputFrame()
	for k, a := range keyBindings {
		if justPressed(k) {
			in.Set(a)
		}
	}
	if tapped {
		in.Set(core.ActionJump)
	}
	return in
}

// pollInput reads the live keyboard, mouse and touch state.
func pollInput() core.InputFrame {
	tapped := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
	return collect(inpututil.IsKeyJustPressed, tapped)
}
