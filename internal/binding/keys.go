package binding

// Button is a logical N64 input that is bound to a single gamepad value.
type Button int

const (
	A Button = iota
	B
	Start
	CRight
	CLeft
	CDown
	CUp
	R
	L
	DPadRight
	DPadLeft
	DPadDown
	DPadUp
	StickRight
	StickLeft
	StickDown
	StickUp
	Z

	buttonCount = int(Z) + 1
)

// FloatAxis is an analog stick axis with a floating-point threshold.
type FloatAxis int

const (
	LeftX FloatAxis = iota
	LeftY

	floatAxisCount = int(LeftY) + 1
)

// IntAxis is an axis with an integer threshold.
type IntAxis int

const (
	RightX IntAxis = iota
	RightY
	TriggerLeft
	TriggerRight

	intAxisCount = int(TriggerRight) + 1
)

// The tables below are indexed by enum value. An entry left out of a literal
// is the empty string, which the table tests reject.

var buttonKeys = [buttonCount]string{
	A:          "btn_a",
	B:          "btn_b",
	Start:      "btn_start",
	CRight:     "btn_cright",
	CLeft:      "btn_cleft",
	CDown:      "btn_cdown",
	CUp:        "btn_cup",
	R:          "btn_r",
	L:          "btn_l",
	DPadRight:  "btn_dright",
	DPadLeft:   "btn_dleft",
	DPadDown:   "btn_ddown",
	DPadUp:     "btn_dup",
	StickRight: "btn_stickright",
	StickLeft:  "btn_stickleft",
	StickDown:  "btn_stickdown",
	StickUp:    "btn_stickup",
	Z:          "btn_z",
}

var buttonDefaults = [buttonCount]int{
	A:          0,
	B:          1,
	Start:      6,
	CRight:     514,
	CLeft:      -514,
	CDown:      515,
	CUp:        -515,
	R:          517,
	L:          9,
	DPadRight:  14,
	DPadLeft:   13,
	DPadDown:   12,
	DPadUp:     11,
	StickRight: 512,
	StickLeft:  -512,
	StickDown:  513,
	StickUp:    -513,
	Z:          516,
}

var buttonNames = [buttonCount]string{
	A:          "A",
	B:          "B",
	Start:      "Start",
	CRight:     "CRight",
	CLeft:      "CLeft",
	CDown:      "CDown",
	CUp:        "CUp",
	R:          "R",
	L:          "L",
	DPadRight:  "DPadRight",
	DPadLeft:   "DPadLeft",
	DPadDown:   "DPadDown",
	DPadUp:     "DPadUp",
	StickRight: "StickRight",
	StickLeft:  "StickLeft",
	StickDown:  "StickDown",
	StickUp:    "StickUp",
	Z:          "Z",
}

var floatAxisKeys = [floatAxisCount]string{
	LeftX: "sdl_controller_axis_leftx_threshold",
	LeftY: "sdl_controller_axis_lefty_threshold",
}

var floatAxisDefaults = [floatAxisCount]float32{
	LeftX: 16.0,
	LeftY: 16.0,
}

var intAxisKeys = [intAxisCount]string{
	RightX:       "sdl_controller_axis_rightx_threshold",
	RightY:       "sdl_controller_axis_righty_threshold",
	TriggerLeft:  "sdl_controller_axis_triggerleft_threshold",
	TriggerRight: "sdl_controller_axis_triggerright_threshold",
}

var intAxisDefaults = [intAxisCount]int{
	RightX:       16384,
	RightY:       16384,
	TriggerLeft:  7680,
	TriggerRight: 7680,
}

var (
	buttonByKey    map[string]Button
	floatAxisByKey map[string]FloatAxis
	intAxisByKey   map[string]IntAxis
	buttonByName   map[string]Button
)

func init() {
	buttonByKey = make(map[string]Button, buttonCount)
	buttonByName = make(map[string]Button, buttonCount)
	for i, k := range buttonKeys {
		buttonByKey[k] = Button(i)
		buttonByName[buttonNames[i]] = Button(i)
	}
	floatAxisByKey = make(map[string]FloatAxis, floatAxisCount)
	for i, k := range floatAxisKeys {
		floatAxisByKey[k] = FloatAxis(i)
	}
	intAxisByKey = make(map[string]IntAxis, intAxisCount)
	for i, k := range intAxisKeys {
		intAxisByKey[k] = IntAxis(i)
	}
}

// Buttons returns every button in declaration order.
func Buttons() []Button {
	out := make([]Button, buttonCount)
	for i := range out {
		out[i] = Button(i)
	}
	return out
}

// FloatAxes returns every float-threshold axis in declaration order.
func FloatAxes() []FloatAxis {
	return []FloatAxis{LeftX, LeftY}
}

// IntAxes returns every int-threshold axis in declaration order.
func IntAxes() []IntAxis {
	return []IntAxis{RightX, RightY, TriggerLeft, TriggerRight}
}

// Key returns the configuration key, e.g. "btn_a".
func (b Button) Key() string { return buttonKeys[b] }

// Default returns the documented default binding.
func (b Button) Default() int { return buttonDefaults[b] }

// String returns the button's display name.
func (b Button) String() string {
	if b < 0 || int(b) >= buttonCount {
		return "Button(?)"
	}
	return buttonNames[b]
}

func (a FloatAxis) Key() string { return floatAxisKeys[a] }

func (a FloatAxis) Default() float32 { return floatAxisDefaults[a] }

func (a IntAxis) Key() string { return intAxisKeys[a] }

func (a IntAxis) Default() int { return intAxisDefaults[a] }

// ButtonForKey resolves a configuration key to a button.
func ButtonForKey(key string) (Button, bool) {
	b, ok := buttonByKey[key]
	return b, ok
}

// ButtonForName resolves a display name such as "DPadUp" or a key such as
// "btn_dup" to a button.
func ButtonForName(name string) (Button, bool) {
	if b, ok := buttonByName[name]; ok {
		return b, true
	}
	return ButtonForKey(name)
}

// FloatAxisForKey resolves a configuration key to a float-threshold axis.
func FloatAxisForKey(key string) (FloatAxis, bool) {
	a, ok := floatAxisByKey[key]
	return a, ok
}

// IntAxisForKey resolves a configuration key to an int-threshold axis.
func IntAxisForKey(key string) (IntAxis, bool) {
	a, ok := intAxisByKey[key]
	return a, ok
}
