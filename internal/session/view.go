package session

import (
	"github.com/soar/sohconfig/internal/binding"
	"github.com/soar/sohconfig/internal/gamepad"
)

type ButtonView struct {
	Button  string `json:"button"`
	Key     string `json:"key"`
	Value   int    `json:"value"`
	Display string `json:"display"`
}

type ThresholdView struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// BindingView is the JSON form of a record.
type BindingView struct {
	GUID      string          `json:"guid"`
	Buttons   []ButtonView    `json:"buttons"`
	FloatAxes []ThresholdView `json:"floatAxes"`
	IntAxes   []ThresholdView `json:"intAxes"`
}

func NewBindingView(rec *binding.Record) *BindingView {
	v := &BindingView{GUID: rec.ID()}
	for _, b := range binding.Buttons() {
		value := rec.Button(b)
		v.Buttons = append(v.Buttons, ButtonView{
			Button:  b.String(),
			Key:     b.Key(),
			Value:   value,
			Display: gamepad.DisplayName(value),
		})
	}
	for _, a := range binding.FloatAxes() {
		v.FloatAxes = append(v.FloatAxes, ThresholdView{Key: a.Key(), Value: float64(rec.FloatAxis(a))})
	}
	for _, a := range binding.IntAxes() {
		v.IntAxes = append(v.IntAxes, ThresholdView{Key: a.Key(), Value: float64(rec.IntAxis(a))})
	}
	return v
}

// DeviceInfo describes a connected device.
type DeviceInfo struct {
	Handle int    `json:"handle"`
	GUID   string `json:"guid"`
	Name   string `json:"name"`
	Dirty  bool   `json:"dirty"`
}

// State is a snapshot of the whole session.
type State struct {
	Devices  []DeviceInfo   `json:"devices"`
	Current  *int           `json:"current,omitempty"`
	Capture  string         `json:"capture,omitempty"`
	Binding  *BindingView   `json:"binding,omitempty"`
	Backend  string         `json:"backend"`
	Backends []BackendEntry `json:"backends"`
}
