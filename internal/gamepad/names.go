package gamepad

import (
	"fmt"

	"github.com/soar/sohconfig/internal/binding"
)

// Standard gamepad button ordinals, in SDL order.
var buttonNames = []string{
	"A",
	"B",
	"X",
	"Y",
	"BACK",
	"GUIDE",
	"START",
	"LEFTSTICK",
	"RIGHTSTICK",
	"LEFTSHOULDER",
	"RIGHTSHOULDER",
	"DPAD_UP",
	"DPAD_DOWN",
	"DPAD_LEFT",
	"DPAD_RIGHT",
	"MISC1",
	"PADDLE1",
	"PADDLE2",
	"PADDLE3",
	"PADDLE4",
	"TOUCHPAD",
}

// Standard gamepad axis indexes, in SDL order.
var axisNames = []string{
	"LEFTX",
	"LEFTY",
	"RIGHTX",
	"RIGHTY",
	"TRIGGERLEFT",
	"TRIGGERRIGHT",
}

// ButtonName returns the label of a gamepad button ordinal.
func ButtonName(code int) string {
	if code >= 0 && code < len(buttonNames) {
		return buttonNames[code]
	}
	return fmt.Sprintf("BUTTON_%d", code)
}

// AxisName returns the label of a gamepad axis index.
func AxisName(code int) string {
	if code >= 0 && code < len(axisNames) {
		return axisNames[code]
	}
	return fmt.Sprintf("AXIS_%d", code)
}

// DisplayName renders a bound value: "DPAD_UP" for a button, "LEFTX+" or
// "TRIGGERLEFT-" for an axis direction.
func DisplayName(value int) string {
	axis, sign, ok := binding.DecodeAxis(value)
	if !ok {
		return ButtonName(value)
	}
	if sign > 0 {
		return AxisName(axis) + "+"
	}
	return AxisName(axis) + "-"
}

// BindingValue converts a listener event into the value stored for a
// button. ok is false for device events.
func BindingValue(ev Event) (value int, ok bool) {
	switch ev.Type {
	case ButtonPressed:
		return int(ev.Code), true
	case AxisMotion:
		return binding.EncodeAxis(int(ev.Code), ev.Value > 0), true
	default:
		return 0, false
	}
}
