package imgui

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key the widgets react to.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyBackspace
	KeyEnter
	KeyEscape
	KeyA
	KeyC
	KeyV
	KeyX
	KeyCount
)

// Key repeat timing, in seconds.
const (
	KeyRepeatDelay    float32 = 0.4
	KeyRepeatInterval float32 = 0.03
)

// InputState holds input state for the current frame.
// Backends populate it from window events.
type InputState struct {
	MouseX, MouseY float32

	mouseDown    [MouseButtonCount]bool
	mouseClicked [MouseButtonCount]bool
	mouseUp      [MouseButtonCount]bool

	MouseWheelY float32

	keyDown     [KeyCount]bool
	keyPressed  [KeyCount]bool
	keyHoldTime [KeyCount]float32
	lastDelta   float32

	// InputChars are the characters typed this frame.
	InputChars []rune

	ModCtrl  bool
	ModShift bool
	ModAlt   bool
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{InputChars: make([]rune, 0, 16)}
}

// Reset clears per-frame events. Call it before collecting a frame's input.
func (s *InputState) Reset() {
	clear(s.mouseClicked[:])
	clear(s.mouseUp[:])
	clear(s.keyPressed[:])
	s.InputChars = s.InputChars[:0]
	s.MouseWheelY = 0
}

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX = x
	s.MouseY = y
}

// SetMouseButton records a button transition.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}
	wasDown := s.mouseDown[button]
	s.mouseDown[button] = down
	if down && !wasDown {
		s.mouseClicked[button] = true
	}
	if !down && wasDown {
		s.mouseUp[button] = true
	}
}

// SetKey records a key transition.
func (s *InputState) SetKey(key Key, down bool) {
	if key <= KeyNone || key >= KeyCount {
		return
	}
	wasDown := s.keyDown[key]
	s.keyDown[key] = down
	if down && !wasDown {
		s.keyPressed[key] = true
	}
	if down != wasDown {
		s.keyHoldTime[key] = 0
	}
}

// UpdateKeyRepeat advances hold times. Call once per frame.
func (s *InputState) UpdateKeyRepeat(dt float32) {
	s.lastDelta = dt
	for key := range s.keyDown {
		if s.keyDown[key] {
			s.keyHoldTime[key] += dt
		}
	}
}

// SetMouseWheel sets the vertical wheel delta.
func (s *InputState) SetMouseWheel(y float32) {
	s.MouseWheelY = y
}

// AddInputChar adds a typed character.
func (s *InputState) AddInputChar(ch rune) {
	s.InputChars = append(s.InputChars, ch)
}

// MouseDown reports whether a button is held.
func (s *InputState) MouseDown(button MouseButton) bool {
	return button >= 0 && button < MouseButtonCount && s.mouseDown[button]
}

// MouseClicked reports whether a button was pressed this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	return button >= 0 && button < MouseButtonCount && s.mouseClicked[button]
}

// KeyPressed reports whether a key was pressed this frame.
func (s *InputState) KeyPressed(key Key) bool {
	return key > KeyNone && key < KeyCount && s.keyPressed[key]
}

// KeyRepeated reports a press, then repeats after KeyRepeatDelay every
// KeyRepeatInterval while the key is held.
func (s *InputState) KeyRepeated(key Key) bool {
	if key <= KeyNone || key >= KeyCount {
		return false
	}
	if s.keyPressed[key] {
		return true
	}
	if !s.keyDown[key] || s.keyHoldTime[key] < KeyRepeatDelay {
		return false
	}
	since := s.keyHoldTime[key] - KeyRepeatDelay
	return int(since/KeyRepeatInterval) > int((since-s.lastDelta)/KeyRepeatInterval)
}

// Mouse returns the mouse position.
func (s *InputState) Mouse() Vec2 {
	return Vec2{X: s.MouseX, Y: s.MouseY}
}
