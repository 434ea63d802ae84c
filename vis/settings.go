// SPDX-License-Identifier: GPL-2.0-or-later

package vis

import (
	"github.com/pkg/errors"
)

type Settings struct {
	// Sample pairs further apart are never traced.
	FarClip float32
	// Leafs whose boxes are at most this far apart are always visible to
	// each other. A negative value disables the shortcut.
	NearClip float32
	// Trace every leaf pair only once and mirror the result.
	CommutativeRays bool
	// Sample leafs by quadblock centers only, skipping corners.
	CenterOnlySamples bool
	// Number of goroutines tracing rows. Zero or less uses GOMAXPROCS.
	Workers int
}

func DefaultSettings() Settings {
	return Settings{
		FarClip:         1000,
		NearClip:        -1,
		CommutativeRays: true,
	}
}

func (s Settings) Validate() error {
	if s.FarClip < 0 {
		return errors.Errorf("far clip must not be negative, got %v", s.FarClip)
	}
	return nil
}
