package hub

import (
	"github.com/pkg/errors"
	"github.com/soar/sohconfig/internal/binding"
	"github.com/soar/sohconfig/internal/session"
)

// Controller is the part of the session that clients may drive.
type Controller interface {
	Select(handle int) error
	Capture(b binding.Button) error
	CancelCapture()
	SetFloatAxis(a binding.FloatAxis, value float32) error
	SetIntAxis(a binding.IntAxis, value int) error
	Set(key, value string) error
	Reset() error
	Save() error
	SetBackend(value string) error
	State() session.State
}

// Dispatch applies one client command to ctrl.
func Dispatch(ctrl Controller, msg ClientMessage) error {
	switch msg.Type {
	case CmdSelectDevice:
		return ctrl.Select(msg.Handle)

	case CmdCapture:
		b, ok := binding.ButtonForName(msg.Button)
		if !ok {
			return errors.Errorf("unknown button '%s'", msg.Button)
		}
		return ctrl.Capture(b)

	case CmdCancelCapture:
		ctrl.CancelCapture()
		return nil

	case CmdSetThreshold:
		if a, ok := binding.FloatAxisForKey(msg.Key); ok {
			return ctrl.SetFloatAxis(a, float32(msg.Value))
		}
		if a, ok := binding.IntAxisForKey(msg.Key); ok {
			return ctrl.SetIntAxis(a, int(msg.Value))
		}
		return errors.Errorf("unknown threshold '%s'", msg.Key)

	case CmdSet:
		return ctrl.Set(msg.Key, msg.Raw)

	case CmdReset:
		return ctrl.Reset()

	case CmdSave:
		return ctrl.Save()

	case CmdSetBackend:
		b, ok := session.BackendByName(msg.Backend)
		if !ok {
			return errors.Errorf("unknown backend '%s'", msg.Backend)
		}
		return ctrl.SetBackend(b.Value)

	default:
		return errors.Errorf("unknown command '%s'", msg.Type)
	}
}
