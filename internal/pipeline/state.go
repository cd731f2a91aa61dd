package pipeline

import (
	"encoding/json"

	"github.com/anuvad-app/anuvad/internal/language"
)

// State identifies where the orchestrator is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// MarshalJSON renders the state as its name.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Reason classifies why a run failed.
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonNoImageSelected      Reason = "no_image_selected"
	ReasonExtractionTransport  Reason = "extraction_transport_error"
	ReasonExtractionParse      Reason = "extraction_parse_error"
	ReasonNothingToTranslate   Reason = "nothing_to_translate"
	ReasonTranslationTransport Reason = "translation_transport_error"
	ReasonTranslationParse     Reason = "translation_parse_error"
)

// Snapshot is a consistent view of the orchestrator's observable fields.
// The presentation layer only ever sees the pipeline through snapshots.
type Snapshot struct {
	State          State         `json:"state"`
	Reason         Reason        `json:"reason,omitempty"`
	TargetLanguage language.Code `json:"target_language"`
	ExtractedText  string        `json:"extracted_text"`
	TranslatedText string        `json:"translated_text"`
	ErrorMessage   string        `json:"error_message,omitempty"`
	Busy           bool          `json:"busy"`
}
