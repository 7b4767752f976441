// Package session owns the per-device binding records of a running editor
// and applies gamepad events and user commands to them.
package session

import (
	"context"
	"sort"
	"sync"

	"github.com/michaelquigley/df/dl"
	"github.com/pkg/errors"
	"github.com/soar/sohconfig/internal/binding"
	"github.com/soar/sohconfig/internal/gamepad"
	"github.com/soar/sohconfig/internal/ini"
)

var (
	ErrNoDevice      = errors.New("no device selected")
	ErrUnknownDevice = errors.New("unknown device")
)

// NoticeType names a session change reported to the observer.
type NoticeType string

const (
	NoticeDeviceAdded   NoticeType = "device_added"
	NoticeDeviceRemoved NoticeType = "device_removed"
	NoticeSelected      NoticeType = "selected"
	NoticeCapture       NoticeType = "capture"
	NoticeCaptured      NoticeType = "captured"
	NoticeChanged       NoticeType = "changed"
	NoticeReset         NoticeType = "reset"
	NoticeSaved         NoticeType = "saved"
	NoticeBackend       NoticeType = "backend"
	NoticeError         NoticeType = "error"
)

// Notice describes one change. Fields not relevant to Type are zero.
type Notice struct {
	Type    NoticeType `json:"type"`
	Handle  int        `json:"handle"`
	GUID    string     `json:"guid,omitempty"`
	Name    string     `json:"name,omitempty"`
	Button  string     `json:"button,omitempty"`
	Value   int        `json:"value,omitempty"`
	Display string     `json:"display,omitempty"`
	Backend string     `json:"backend,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// Observer receives notices after the session lock is released.
type Observer func(Notice)

type device struct {
	handle int
	guid   string
	name   string
	record *binding.Record
	saved  *binding.Record
}

// Session holds one binding record per connected device. All methods are
// safe for concurrent use; they are serialized by one mutex.
type Session struct {
	mu         sync.Mutex
	doc        *ini.Document
	devices    map[int]*device
	current    int
	hasCurrent bool
	capture    binding.Button
	capturing  bool
	observer   Observer
}

func New(doc *ini.Document, observer Observer) *Session {
	if observer == nil {
		observer = func(Notice) {}
	}
	return &Session{
		doc:      doc,
		devices:  make(map[int]*device),
		observer: observer,
	}
}

// Run applies listener events until the channel closes or ctx is done.
func (s *Session) Run(ctx context.Context, events <-chan gamepad.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.Apply(ev)
		}
	}
}

// Apply dispatches one listener event.
func (s *Session) Apply(ev gamepad.Event) {
	switch ev.Type {
	case gamepad.DeviceAdded:
		if err := s.DeviceAdded(ev.Handle, ev.GUID, ev.Name); err != nil {
			dl.Errorf("device %d (%s): %v", ev.Handle, ev.GUID, err)
		}
	case gamepad.DeviceRemoved:
		s.DeviceRemoved(ev.Handle)
	case gamepad.ButtonPressed:
		s.ButtonPressed(ev.Handle, ev.Code)
	case gamepad.AxisMotion:
		s.AxisMotion(ev.Handle, ev.Code, ev.Value)
	}
}

// DeviceAdded loads the record for guid, or creates a fresh one, and indexes
// it by handle. A section with unknown keys is not loaded.
func (s *Session) DeviceAdded(handle int, guid, name string) error {
	s.mu.Lock()
	if _, exists := s.devices[handle]; exists {
		s.mu.Unlock()
		return nil
	}
	rec, err := LoadBinding(s.doc, guid)
	if err != nil {
		s.mu.Unlock()
		s.observer(Notice{Type: NoticeError, Handle: handle, GUID: guid, Error: err.Error()})
		return err
	}
	s.devices[handle] = &device{handle: handle, guid: guid, name: name, record: rec, saved: rec.Clone()}
	s.mu.Unlock()

	dl.Infof("device %d added: %s (%s)", handle, name, guid)
	s.observer(Notice{Type: NoticeDeviceAdded, Handle: handle, GUID: guid, Name: name})
	return nil
}

// DeviceRemoved discards the device's record. Unsaved edits are lost.
func (s *Session) DeviceRemoved(handle int) {
	s.mu.Lock()
	d, exists := s.devices[handle]
	if !exists {
		s.mu.Unlock()
		return
	}
	delete(s.devices, handle)
	if s.hasCurrent && s.current == handle {
		s.hasCurrent = false
		s.capturing = false
	}
	s.mu.Unlock()

	dl.Infof("device %d removed: %s", handle, d.name)
	s.observer(Notice{Type: NoticeDeviceRemoved, Handle: handle, GUID: d.guid, Name: d.name})
}

// ButtonPressed binds the button being captured to a gamepad button ordinal.
func (s *Session) ButtonPressed(handle int, code uint8) {
	s.bindCaptured(gamepad.Event{Type: gamepad.ButtonPressed, Handle: handle, Code: code})
}

// AxisMotion binds the button being captured to an axis direction.
func (s *Session) AxisMotion(handle int, code uint8, value int16) {
	s.bindCaptured(gamepad.Event{Type: gamepad.AxisMotion, Handle: handle, Code: code, Value: value})
}

func (s *Session) bindCaptured(ev gamepad.Event) {
	s.mu.Lock()
	if !s.capturing || !s.hasCurrent || s.current != ev.Handle {
		s.mu.Unlock()
		return
	}
	d, ok := s.devices[ev.Handle]
	if !ok {
		s.mu.Unlock()
		return
	}
	value, ok := gamepad.BindingValue(ev)
	if !ok {
		s.mu.Unlock()
		return
	}
	button := s.capture
	d.record.SetButton(button, value)
	s.capturing = false
	s.mu.Unlock()

	display := gamepad.DisplayName(value)
	dl.Debugf("device %d: %s bound to %s", ev.Handle, button, display)
	s.observer(Notice{Type: NoticeCaptured, Handle: ev.Handle, Button: button.String(), Value: value, Display: display})
}

// Select makes handle the device that captures and save/reset apply to.
func (s *Session) Select(handle int) error {
	s.mu.Lock()
	if _, ok := s.devices[handle]; !ok {
		s.mu.Unlock()
		return errors.Wrapf(ErrUnknownDevice, "handle %d", handle)
	}
	s.current = handle
	s.hasCurrent = true
	s.capturing = false
	s.mu.Unlock()

	s.observer(Notice{Type: NoticeSelected, Handle: handle})
	return nil
}

// Capture arms the next button or axis event of the selected device to be
// bound to b.
func (s *Session) Capture(b binding.Button) error {
	s.mu.Lock()
	if !s.hasCurrent {
		s.mu.Unlock()
		return ErrNoDevice
	}
	s.capture = b
	s.capturing = true
	handle := s.current
	s.mu.Unlock()

	s.observer(Notice{Type: NoticeCapture, Handle: handle, Button: b.String()})
	return nil
}

// CancelCapture disarms a pending capture.
func (s *Session) CancelCapture() {
	s.mu.Lock()
	s.capturing = false
	s.mu.Unlock()
}

// SetFloatAxis changes a float threshold of the selected device.
func (s *Session) SetFloatAxis(a binding.FloatAxis, value float32) error {
	return s.withCurrent(NoticeChanged, func(d *device) error {
		d.record.SetFloatAxis(a, value)
		return nil
	})
}

// SetIntAxis changes an int threshold of the selected device.
func (s *Session) SetIntAxis(a binding.IntAxis, value int) error {
	return s.withCurrent(NoticeChanged, func(d *device) error {
		d.record.SetIntAxis(a, value)
		return nil
	})
}

// Set assigns any binding of the selected device by configuration key.
func (s *Session) Set(key, value string) error {
	return s.withCurrent(NoticeChanged, func(d *device) error {
		return d.record.Set(key, value)
	})
}

// Reset returns the selected device's record to defaults. It is not saved.
func (s *Session) Reset() error {
	return s.withCurrent(NoticeReset, func(d *device) error {
		d.record.ResetToDefault()
		return nil
	})
}

// Save writes the selected device's record to the document.
func (s *Session) Save() error {
	return s.withCurrent(NoticeSaved, func(d *device) error {
		if err := SaveBinding(s.doc, d.record); err != nil {
			return err
		}
		d.saved = d.record.Clone()
		dl.Infof("saved binding for %s to %s", d.guid, s.doc.Path())
		return nil
	})
}

func (s *Session) withCurrent(notice NoticeType, fn func(d *device) error) error {
	s.mu.Lock()
	if !s.hasCurrent {
		s.mu.Unlock()
		return ErrNoDevice
	}
	d := s.devices[s.current]
	if err := fn(d); err != nil {
		s.mu.Unlock()
		s.observer(Notice{Type: NoticeError, Handle: d.handle, GUID: d.guid, Error: err.Error()})
		return err
	}
	s.mu.Unlock()

	s.observer(Notice{Type: notice, Handle: d.handle, GUID: d.guid})
	return nil
}

// Backend returns the current backend entry. A setting that matches no known
// entry is returned as its raw value with an empty display name.
func (s *Session) Backend() (BackendEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := CurrentBackend(s.doc)
	if err != nil {
		return BackendEntry{}, err
	}
	if b, ok := BackendByValue(value); ok {
		return b, nil
	}
	return BackendEntry{Value: value}, nil
}

// SetBackend saves a new graphics backend value.
func (s *Session) SetBackend(value string) error {
	s.mu.Lock()
	err := SaveBackend(s.doc, value)
	s.mu.Unlock()
	if err != nil {
		s.observer(Notice{Type: NoticeError, Error: err.Error()})
		return err
	}
	dl.Infof("backend set to '%s'", value)
	s.observer(Notice{Type: NoticeBackend, Backend: value})
	return nil
}

// Binding returns a copy of a device's current record.
func (s *Session) Binding(handle int) (*binding.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.devices[handle]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDevice, "handle %d", handle)
	}
	return d.record.Clone(), nil
}

// Devices lists connected devices ordered by handle.
func (s *Session) Devices() []DeviceInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.devicesLocked()
}

func (s *Session) devicesLocked() []DeviceInfo {
	out := make([]DeviceInfo, 0, len(s.devices))
	for _, d := range s.devices {
		out = append(out, DeviceInfo{
			Handle: d.handle,
			GUID:   d.guid,
			Name:   d.name,
			Dirty:  !d.record.Equal(d.saved),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// State returns a snapshot for clients.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Devices:  s.devicesLocked(),
		Backends: Backends(),
	}
	if s.hasCurrent {
		current := s.current
		st.Current = &current
		st.Binding = NewBindingView(s.devices[current].record)
		if s.capturing {
			st.Capture = s.capture.String()
		}
	}
	if value, err := CurrentBackend(s.doc); err == nil {
		st.Backend = value
	}
	return st
}
