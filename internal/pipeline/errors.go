package pipeline

import "errors"

var (
	// ErrBusy is returned when Run is called while another run is in flight.
	ErrBusy = errors.New("a run is already in progress")

	// ErrNoImageSelected is returned when Run is called without a source image.
	ErrNoImageSelected = errors.New("no image selected")

	// ErrNothingToTranslate is returned when extraction succeeds but yields
	// an empty string, so the translation stage is skipped.
	ErrNothingToTranslate = errors.New("nothing to translate")
)
