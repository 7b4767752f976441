//go:build (darwin || freebsd || linux) && (amd64 || arm64)

package gamepad

import (
	"runtime"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

func sdlLibrary() string {
	if runtime.GOOS == "darwin" {
		return "libSDL3.dylib"
	}
	return "libSDL3.so.0"
}

func lookupSDL(name string) (uintptr, error) {
	lib, err := purego.Dlopen(sdlLibrary(), purego.RTLD_LAZY)
	if err != nil {
		return 0, errors.Wrapf(err, "load %s", sdlLibrary())
	}
	fn, err := purego.Dlsym(lib, name)
	if err != nil {
		return 0, errors.Wrapf(err, "lookup %s", name)
	}
	return fn, nil
}

// callGUID calls a func(SDL_JoystickID) SDL_GUID. A 16-byte integer struct
// comes back in RAX:RDX on amd64 and x0:x1 on arm64.
func callGUID(fn uintptr, id uint32) GUID {
	lo, hi, _ := purego.SyscallN(fn, uintptr(id))
	return guidFromRegisters(lo, hi)
}
