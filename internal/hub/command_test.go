package hub

import (
	"testing"

	"github.com/soar/sohconfig/internal/binding"
	"github.com/soar/sohconfig/internal/session"
)

type fakeController struct {
	calls   []string
	handle  int
	button  binding.Button
	fvalue  float32
	ivalue  int
	key     string
	raw     string
	backend string
}

func (f *fakeController) Select(handle int) error {
	f.calls = append(f.calls, "select")
	f.handle = handle
	return nil
}

func (f *fakeController) Capture(b binding.Button) error {
	f.calls = append(f.calls, "capture")
	f.button = b
	return nil
}

func (f *fakeController) CancelCapture() { f.calls = append(f.calls, "cancel") }

func (f *fakeController) SetFloatAxis(a binding.FloatAxis, value float32) error {
	f.calls = append(f.calls, "float")
	f.fvalue = value
	return nil
}

func (f *fakeController) SetIntAxis(a binding.IntAxis, value int) error {
	f.calls = append(f.calls, "int")
	f.ivalue = value
	return nil
}

func (f *fakeController) Set(key, value string) error {
	f.calls = append(f.calls, "set")
	f.key, f.raw = key, value
	return nil
}

func (f *fakeController) Reset() error { f.calls = append(f.calls, "reset"); return nil }

func (f *fakeController) Save() error { f.calls = append(f.calls, "save"); return nil }

func (f *fakeController) SetBackend(value string) error {
	f.calls = append(f.calls, "backend")
	f.backend = value
	return nil
}

func (f *fakeController) State() session.State { return session.State{} }

func TestDispatch(t *testing.T) {
	tests := []struct {
		name  string
		msg   ClientMessage
		call  string
		check func(f *fakeController) bool
	}{
		{"select", ClientMessage{Type: CmdSelectDevice, Handle: 4}, "select",
			func(f *fakeController) bool { return f.handle == 4 }},
		{"capture by name", ClientMessage{Type: CmdCapture, Button: "DPadUp"}, "capture",
			func(f *fakeController) bool { return f.button == binding.DPadUp }},
		{"capture by key", ClientMessage{Type: CmdCapture, Button: "btn_z"}, "capture",
			func(f *fakeController) bool { return f.button == binding.Z }},
		{"cancel", ClientMessage{Type: CmdCancelCapture}, "cancel", nil},
		{"float threshold", ClientMessage{Type: CmdSetThreshold, Key: binding.LeftX.Key(), Value: 12.5}, "float",
			func(f *fakeController) bool { return f.fvalue == 12.5 }},
		{"int threshold", ClientMessage{Type: CmdSetThreshold, Key: binding.TriggerLeft.Key(), Value: 9000}, "int",
			func(f *fakeController) bool { return f.ivalue == 9000 }},
		{"set", ClientMessage{Type: CmdSet, Key: "btn_a", Raw: "3"}, "set",
			func(f *fakeController) bool { return f.key == "btn_a" && f.raw == "3" }},
		{"reset", ClientMessage{Type: CmdReset}, "reset", nil},
		{"save", ClientMessage{Type: CmdSave}, "save", nil},
		{"backend by name", ClientMessage{Type: CmdSetBackend, Backend: "OpenGL"}, "backend",
			func(f *fakeController) bool { return f.backend == "sdl" }},
		{"backend by value", ClientMessage{Type: CmdSetBackend, Backend: ""}, "backend",
			func(f *fakeController) bool { return f.backend == "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeController{}
			if err := Dispatch(f, tt.msg); err != nil {
				t.Fatalf("Dispatch failed: %v", err)
			}
			if len(f.calls) != 1 || f.calls[0] != tt.call {
				t.Errorf("Expected call %q, got %v", tt.call, f.calls)
			}
			if tt.check != nil && !tt.check(f) {
				t.Errorf("Unexpected controller state %+v", f)
			}
		})
	}
}

func TestDispatch_Rejects(t *testing.T) {
	tests := []ClientMessage{
		{Type: "select_player"},
		{Type: CmdCapture, Button: "Turbo"},
		{Type: CmdSetThreshold, Key: "btn_a"},
		{Type: CmdSetBackend, Backend: "Vulkan"},
	}

	for _, msg := range tests {
		f := &fakeController{}
		if err := Dispatch(f, msg); err == nil {
			t.Errorf("Expected error for %+v", msg)
		}
		if len(f.calls) != 0 {
			t.Errorf("Expected no controller calls for %+v, got %v", msg, f.calls)
		}
	}
}
