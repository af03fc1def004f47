package main

import (
	"mini-voxel/internal/input"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"
)

func defaultBindings() *input.InputManager {
	im := input.NewInputManager()
	keys := map[glfw.Key]input.Action{
		glfw.KeyW:         input.ActionMoveForward,
		glfw.KeyUp:        input.ActionMoveForward,
		glfw.KeyS:         input.ActionMoveBackward,
		glfw.KeyDown:      input.ActionMoveBackward,
		glfw.KeyA:         input.ActionMoveLeft,
		glfw.KeyLeft:      input.ActionMoveLeft,
		glfw.KeyD:         input.ActionMoveRight,
		glfw.KeyRight:     input.ActionMoveRight,
		glfw.KeySpace:     input.ActionMoveUp,
		glfw.KeyLeftShift: input.ActionMoveDown,
		glfw.KeyG:         input.ActionToggleFlying,
		glfw.KeyF:         input.ActionToggleWireframe,
		glfw.KeyV:         input.ActionToggleProfiling,
		glfw.KeyEscape:    input.ActionPause,
	}
	for k, a := range keys {
		im.BindKey(input.Key(k), a)
	}
	im.BindMouseButton(input.Button(glfw.MouseButtonLeft), input.ActionBreak)
	im.BindMouseButton(input.Button(glfw.MouseButtonRight), input.ActionPlace)
	return im
}

// installCallbacks forwards window events to the input manager. Game state is
// only touched from the frame loop.
func (g *game) installCallbacks() {
	g.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		g.input.HandleKeyEvent(input.Key(key), input.KeyState(action))
	})
	g.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		g.input.HandleMouseButtonEvent(input.Button(button), input.KeyState(action))
	})
	g.window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		g.input.HandleCursorPos(xpos, ypos)
	})
	g.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		g.projection.Resize(width, height)
	})
	g.window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		if !focused {
			g.player.StopAll()
		}
	})
}

func (g *game) handleActions() {
	im := g.input
	if im.JustPressed(input.ActionPause) {
		g.setPaused(!g.paused)
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		g.chunks.Wireframe = !g.chunks.Wireframe
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		g.showOverlay = !g.showOverlay
	}
	if g.paused {
		return
	}

	// intent follows whatever is held this frame
	p := g.player
	held := im.Directions()
	for d := input.DirForward; d <= input.DirDown; d++ {
		if held.Has(d) {
			p.MoveDirection(d)
		} else {
			p.StopMoveDirection(d)
		}
	}
	if im.JustPressed(input.ActionToggleFlying) {
		p.ToggleFlying()
		g.log.WithField("flying", p.Flying).Debug("toggle flying")
	}

	if dx, dy := im.CursorDelta(); dx != 0 || dy != 0 {
		p.HandleMouseMovement(dx, dy)
	}

	if im.JustPressed(input.ActionBreak) {
		p.BreakTarget()
	}
	if im.JustPressed(input.ActionPlace) {
		if !p.PlaceTarget(g.place) {
			g.log.WithFields(logrus.Fields{"block": g.place}).Debug("place refused")
		}
	}
}

func (g *game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		g.player.StopAll()
		g.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		return
	}
	g.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	g.input.ResetCursor()
}
