//go:build !((darwin || freebsd || linux) && (amd64 || arm64)) && !(windows && amd64)

package gamepad

import (
	"runtime"

	"github.com/pkg/errors"
)

func lookupSDL(name string) (uintptr, error) {
	return 0, errors.Errorf("%s is not supported on %s/%s", name, runtime.GOOS, runtime.GOARCH)
}

func callGUID(uintptr, uint32) GUID { return GUID{} }
