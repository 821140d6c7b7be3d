// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrInvalidDstSize reports a ReadSamples destination whose length
	// does not hold whole frames.
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
)
