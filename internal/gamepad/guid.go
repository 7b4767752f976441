package gamepad

import (
	"encoding/binary"
	"encoding/hex"
	"sync"

	"github.com/pkg/errors"
)

// GUID is SDL's 16-byte joystick identifier.
type GUID [16]byte

// String returns the 32 lowercase hex digits SDL_GUIDToString produces.
func (g GUID) String() string {
	return hex.EncodeToString(g[:])
}

// IsZero reports whether SDL returned no GUID.
func (g GUID) IsZero() bool {
	return g == GUID{}
}

// guidFromRegisters rebuilds a GUID returned by value in two integer
// registers. Both supported architectures are little-endian.
func guidFromRegisters(lo, hi uintptr) GUID {
	var g GUID
	binary.LittleEndian.PutUint64(g[:8], uint64(lo))
	binary.LittleEndian.PutUint64(g[8:], uint64(hi))
	return g
}

var (
	guidOnce sync.Once
	guidFn   uintptr
	guidErr  error
)

// joystickGUID returns the GUID SDL reports for a joystick instance. SDL must
// be initialized.
func joystickGUID(id uint32) (GUID, error) {
	guidOnce.Do(func() {
		guidFn, guidErr = lookupSDL("SDL_GetJoystickGUIDForID")
	})
	if guidErr != nil {
		return GUID{}, guidErr
	}
	g := callGUID(guidFn, id)
	if g.IsZero() {
		return GUID{}, errors.Errorf("no GUID for joystick %d", id)
	}
	return g, nil
}
