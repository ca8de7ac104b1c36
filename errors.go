package streamhash

import (
	"github.com/pkg/errors"

	"github.com/Giulio2002/streamhash/internal/packed"
	"github.com/Giulio2002/streamhash/internal/stream"
)

// Errors returned by this package are wrapped with context; test for them
// with errors.Is.
var (
	// ErrUnsupportedVariant is returned for an unknown variant name.
	ErrUnsupportedVariant = errors.New("chosen SHA variant is not supported")
	// ErrInputFormat is returned for malformed hex or base64 input.
	ErrInputFormat = packed.ErrInputFormat
	// ErrConfiguration is returned for invalid options such as a zero
	// numRounds or an output length that is not a multiple of 8.
	ErrConfiguration = stream.ErrConfiguration
	// ErrState is returned when a MAC operation is illegal in the current
	// state, e.g. setting a key after Update.
	ErrState = stream.ErrState
)
