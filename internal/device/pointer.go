//go:build !js

// Package device guesses whether the primary pointer is a finger.
package device

import "runtime"

// CoarsePointer reports whether the platform's primary pointer is coarse.
func CoarsePointer() bool {
	return coarseOS(runtime.GOOS)
}

func coarseOS(goos string) bool {
	return goos == "android" || goos == "ios"
}
