// The input package tracks keyboard state across frames, with higher level
// constructs like pressed/released this frame.
//
// It is independent of the windowing library. The window backend translates its
// native key codes to Key values and calls HandleKeyEvent and HandleQuitEvent.
// EventLoopStart must be called once per frame before events are fed in.
package input

type Key int32

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyEnter
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyR
	KeyF1
)

func (k Key) String() string {

	switch k {
	case KeyEscape:
		return "Escape"
	case KeySpace:
		return "Space"
	case KeyEnter:
		return "Enter"
	case KeyArrowUp:
		return "Up"
	case KeyArrowDown:
		return "Down"
	case KeyArrowLeft:
		return "Left"
	case KeyArrowRight:
		return "Right"
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	case KeyD:
		return "D"
	case KeyR:
		return "R"
	case KeyF1:
		return "F1"
	default:
		return "Unknown"
	}
}

type keyState struct {
	Key                 Key
	IsDown              bool
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

var (
	keyMap = make(map[Key]keyState)

	isQuitRequested bool
)

func EventLoopStart() {

	// Update per-frame state
	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}

	isQuitRequested = false
}

func ClearKeyboardState() {
	clear(keyMap)
}

func HandleQuitEvent() {
	isQuitRequested = true
}

func IsQuitClicked() bool {
	return isQuitRequested
}

// HandleKeyEvent records a key press or release. Repeats keep the key down but
// don't count as a new press.
func HandleKeyEvent(key Key, isDown, isRepeat bool) {

	if key == KeyUnknown {
		return
	}

	ks, ok := keyMap[key]
	if !ok {
		ks = keyState{Key: key}
	}

	ks.IsDown = isDown
	ks.IsPressedThisFrame = isDown && !isRepeat
	ks.IsReleasedThisFrame = !isDown && !isRepeat

	keyMap[ks.Key] = ks
}

// KeyClicked returns true only on the frame the key went down
func KeyClicked(key Key) bool {

	ks, ok := keyMap[key]
	if !ok {
		return false
	}

	return ks.IsPressedThisFrame
}

// KeyReleased returns true only on the frame the key went up
func KeyReleased(key Key) bool {

	ks, ok := keyMap[key]
	if !ok {
		return false
	}

	return ks.IsReleasedThisFrame
}

func KeyDown(key Key) bool {

	ks, ok := keyMap[key]
	if !ok {
		return false
	}

	return ks.IsDown
}

func KeyUp(key Key) bool {

	ks, ok := keyMap[key]
	if !ok {
		return true
	}

	return !ks.IsDown
}
