package gamepad

import (
	"fmt"
	"math"
)

// EventType identifies what a listener Event carries.
type EventType int

const (
	DeviceAdded EventType = iota + 1
	DeviceRemoved
	ButtonPressed
	AxisMotion
)

func (t EventType) String() string {
	switch t {
	case DeviceAdded:
		return "device_added"
	case DeviceRemoved:
		return "device_removed"
	case ButtonPressed:
		return "button_pressed"
	case AxisMotion:
		return "axis_motion"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is a gamepad notification. Handle is the session-local device
// handle (the SDL instance id). GUID and Name are set for DeviceAdded, Code
// for ButtonPressed and AxisMotion, Value for AxisMotion.
type Event struct {
	Type   EventType
	Handle int
	GUID   string
	Name   string
	Code   uint8
	Value  int16
}

// DefaultAxisMargin is how close to either extreme an axis must travel
// before it is reported. Not every controller reaches the full range.
const DefaultAxisMargin = 1200

// PastMargin reports whether an axis value is within margin of its positive
// or negative extreme.
func PastMargin(value int16, margin int) bool {
	v := int(value)
	return v >= math.MaxInt16-margin || v <= math.MinInt16+margin
}
