package input

import (
	"sync"
)

// Action represents a logical game action, not a physical key
type Action int

// Action constants using iota
const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionBreak
	ActionPlace
	ActionToggleFlying
	ActionToggleWireframe
	ActionToggleProfiling
	ActionPause
	ActionCount // Sentinel value for array sizing
)

// Key and Button carry the window system's key and mouse button codes. The
// binary converts them at the callback boundary so this package stays free of
// cgo.
type (
	Key    int
	Button int
)

// KeyState mirrors the window system's press/release/repeat codes.
type KeyState int

const (
	Release KeyState = iota
	Press
	Repeat
)

var movement = map[Action]Direction{
	ActionMoveForward:  DirForward,
	ActionMoveBackward: DirBackward,
	ActionMoveLeft:     DirLeft,
	ActionMoveRight:    DirRight,
	ActionMoveUp:       DirUp,
	ActionMoveDown:     DirDown,
}

// MovementDirection returns the direction a movement action requests.
func MovementDirection(action Action) (Direction, bool) {
	d, ok := movement[action]
	return d, ok
}

// InputManager tracks key and mouse button state and maps physical keys/buttons to logical actions
type InputManager struct {
	mu sync.RWMutex

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[Key][]Action

	// Mouse button to action mapping
	buttonToActions map[Button][]Action

	// Keys and buttons currently down, and how many of them hold each action
	heldKeys    map[Key]bool
	heldButtons map[Button]bool
	holders     [ActionCount]int

	// Just pressed/released flags (reset each frame)
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	// Pointer movement accumulated since the last PostUpdate.
	cursorX, cursorY  float64
	deltaX, deltaY    float64
	cursorInitialised bool
}

// NewInputManager creates an InputManager with no bindings.
func NewInputManager() *InputManager {
	return &InputManager{
		keyToActions:    make(map[Key][]Action),
		buttonToActions: make(map[Button][]Action),
		heldKeys:        make(map[Key]bool),
		heldButtons:     make(map[Button]bool),
	}
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (im *InputManager) BindKey(key Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
	if im.heldKeys[key] {
		im.apply([]Action{action}, true)
	}
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key Key) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.heldKeys[key] {
		im.apply(im.keyToActions[key], false)
		delete(im.heldKeys, key)
	}
	delete(im.keyToActions, key)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button Button, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.buttonToActions[button] = append(im.buttonToActions[button], action)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key Key, state KeyState) {
	im.mu.Lock()
	defer im.mu.Unlock()

	pressed := state == Press || state == Repeat
	if im.heldKeys[key] == pressed {
		return
	}
	im.heldKeys[key] = pressed
	im.apply(im.keyToActions[key], pressed)
}

// HandleMouseButtonEvent processes a mouse button event and updates internal state
func (im *InputManager) HandleMouseButtonEvent(button Button, state KeyState) {
	im.mu.Lock()
	defer im.mu.Unlock()

	pressed := state == Press
	if im.heldButtons[button] == pressed {
		return
	}
	im.heldButtons[button] = pressed
	im.apply(im.buttonToActions[button], pressed)
}

// apply adds or removes one holder from each action. An action is active while
// any bound key or button is down.
func (im *InputManager) apply(actions []Action, isPressed bool) {
	for _, act := range actions {
		if isPressed {
			im.holders[act]++
			if im.holders[act] == 1 {
				im.justPressed[act] = true
			}
			continue
		}
		if im.holders[act] == 0 {
			continue
		}
		im.holders[act]--
		if im.holders[act] == 0 {
			im.justReleased[act] = true
		}
	}
}

// HandleCursorPos records an absolute pointer position. The first event only
// establishes the reference point.
func (im *InputManager) HandleCursorPos(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.cursorInitialised {
		im.deltaX += x - im.cursorX
		im.deltaY += y - im.cursorY
	}
	im.cursorX, im.cursorY = x, y
	im.cursorInitialised = true
}

// ResetCursor forgets the reference point, so the next position produces no
// delta. Use it when the cursor is recaptured.
func (im *InputManager) ResetCursor() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.cursorInitialised = false
	im.deltaX, im.deltaY = 0, 0
}

// CursorDelta returns the pointer movement of the current frame.
func (im *InputManager) CursorDelta() (dx, dy float64) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.deltaX, im.deltaY
}

// PostUpdate must be called at the end of each frame to update edge detection states
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
	}
	im.deltaX, im.deltaY = 0, 0
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.holders[action] > 0
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}

// Directions returns the movement directions whose actions are held right now.
func (im *InputManager) Directions() DirectionSet {
	var set DirectionSet
	for action, d := range movement {
		if im.IsActive(action) {
			set.Add(d)
		}
	}
	return set
}
