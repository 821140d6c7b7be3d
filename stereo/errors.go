// SPDX-License-Identifier: EPL-2.0

package stereo

import "errors"

// ErrBadInput is returned when buffer lengths do not line up or a
// stereo request payload has the wrong width.
var ErrBadInput = errors.New("stereo: bad input")
