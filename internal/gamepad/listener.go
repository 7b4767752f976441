package gamepad

import (
	"context"
	"runtime"

	"github.com/jupiterrider/purego-sdl3/sdl"
	"github.com/michaelquigley/df/dl"
	"github.com/pkg/errors"
)

const pollDelayNS = 16_000_000 // ~60Hz

type padInfo struct {
	gamepad *sdl.Gamepad
	guid    string
	name    string
}

// Listener reads SDL3 gamepad events and emits them as Events.
type Listener struct {
	pads       map[sdl.JoystickID]*padInfo
	events     chan Event
	axisMargin int
}

func NewListener(axisMargin int) *Listener {
	if axisMargin <= 0 {
		axisMargin = DefaultAxisMargin
	}
	return &Listener{
		pads:       make(map[sdl.JoystickID]*padInfo),
		events:     make(chan Event, 64),
		axisMargin: axisMargin,
	}
}

// Events returns the channel on which gamepad events are sent. It is closed
// when Run returns.
func (l *Listener) Events() <-chan Event {
	return l.events
}

// Run initializes SDL and polls gamepad events on a locked OS thread until
// ctx is done.
func (l *Listener) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.events)

	if !sdl.Init(sdl.InitGamepad) {
		return errors.Errorf("SDL init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	dl.Info("SDL3 gamepad subsystem initialized")

	for _, id := range sdl.GetGamepads() {
		l.openGamepad(ctx, id)
	}

	for {
		select {
		case <-ctx.Done():
			l.closeAll()
			return nil
		default:
		}

		l.processEvents(ctx)
		sdl.DelayNS(pollDelayNS)
	}
}

func (l *Listener) processEvents(ctx context.Context) {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventGamepadAdded:
			l.openGamepad(ctx, event.GDevice().Which)

		case sdl.EventGamepadRemoved:
			l.removeGamepad(ctx, event.GDevice().Which)

		case sdl.EventGamepadButtonUp:
			be := event.GButton()
			if _, ok := l.pads[be.Which]; !ok {
				continue
			}
			dl.Debugf("button up: %s joystick=%d", ButtonName(int(be.Button)), be.Which)
			l.emit(ctx, Event{Type: ButtonPressed, Handle: int(be.Which), Code: be.Button})

		case sdl.EventGamepadAxisMotion:
			ae := event.GAxis()
			if _, ok := l.pads[ae.Which]; !ok {
				continue
			}
			if !PastMargin(ae.Value, l.axisMargin) {
				continue
			}
			dl.Debugf("axis: %s value=%d joystick=%d", AxisName(int(ae.Axis)), ae.Value, ae.Which)
			l.emit(ctx, Event{Type: AxisMotion, Handle: int(ae.Which), Code: ae.Axis, Value: ae.Value})
		}
	}
}

func (l *Listener) openGamepad(ctx context.Context, id sdl.JoystickID) {
	if _, exists := l.pads[id]; exists {
		return
	}

	gp := sdl.OpenGamepad(id)
	if gp == nil {
		dl.Errorf("failed to open gamepad %d: %s", id, sdl.GetError())
		return
	}
	guid, err := joystickGUID(uint32(id))
	if err != nil {
		dl.Errorf("failed to read guid of gamepad %d: %v", id, err)
		sdl.CloseGamepad(gp)
		return
	}

	info := &padInfo{
		gamepad: gp,
		guid:    guid.String(),
		name:    sdl.GetGamepadName(gp),
	}
	l.pads[id] = info

	dl.Infof("gamepad connected: %s (guid=%s id=%d)", info.name, info.guid, id)
	l.emit(ctx, Event{Type: DeviceAdded, Handle: int(id), GUID: info.guid, Name: info.name})
}

func (l *Listener) removeGamepad(ctx context.Context, id sdl.JoystickID) {
	info, exists := l.pads[id]
	if !exists {
		return
	}

	dl.Infof("gamepad disconnected: %s", info.name)
	sdl.CloseGamepad(info.gamepad)
	delete(l.pads, id)

	l.emit(ctx, Event{Type: DeviceRemoved, Handle: int(id), GUID: info.guid, Name: info.name})
}

func (l *Listener) closeAll() {
	for id, info := range l.pads {
		sdl.CloseGamepad(info.gamepad)
		delete(l.pads, id)
	}
}

// emit blocks until the event is accepted or ctx is done. Device and capture
// events must not be dropped.
func (l *Listener) emit(ctx context.Context, ev Event) {
	select {
	case l.events <- ev:
	case <-ctx.Done():
	}
}
