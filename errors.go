package vidmark

import "errors"

var (
	// ErrInputNotFound indicates the source video or detections file does
	// not exist.  Fatal, no retry.
	ErrInputNotFound = errors.New("input file not found")

	// ErrMalformedInput indicates the detection document failed structural
	// validation.  A run never recovers part of a bad document.
	ErrMalformedInput = errors.New("malformed detection document")

	// ErrCodecUnavailable indicates no codec in the output fallback chain
	// could be opened.
	ErrCodecUnavailable = errors.New("no output codec available")

	// ErrDecodeFailure indicates the source video could not be opened for
	// reading.
	ErrDecodeFailure = errors.New("video could not be opened")
)
