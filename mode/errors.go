package mode

import "errors"

var (
	// ErrInvalidMode indicates a mode identifier outside 0..2.
	ErrInvalidMode = errors.New("invalid mode id")

	// ErrInvalidSubmode indicates an unknown submode identifier.
	ErrInvalidSubmode = errors.New("invalid submode id")
)
