//go:build windows && amd64

package gamepad

import (
	"syscall"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

func lookupSDL(name string) (uintptr, error) {
	lib, err := syscall.LoadLibrary("SDL3.dll")
	if err != nil {
		return 0, errors.Wrap(err, "load SDL3.dll")
	}
	fn, err := syscall.GetProcAddress(lib, name)
	if err != nil {
		return 0, errors.Wrapf(err, "lookup %s", name)
	}
	return fn, nil
}

// callGUID calls a func(SDL_JoystickID) SDL_GUID. The x64 convention returns
// a 16-byte struct through a caller-provided pointer passed first.
func callGUID(fn uintptr, id uint32) GUID {
	var g GUID
	purego.SyscallN(fn, uintptr(unsafe.Pointer(&g)), uintptr(id))
	return g
}
