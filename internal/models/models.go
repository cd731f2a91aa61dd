package models

import "time"

// TranslationRun records one completed pipeline run for the run history.
// Runs live in memory only for the lifetime of the process.
type TranslationRun struct {
	ID             string    `json:"id"`
	ImageName      string    `json:"image_name"`
	TargetLanguage string    `json:"target_language"`
	State          string    `json:"state"`
	Reason         string    `json:"reason,omitempty"`
	ExtractedText  string    `json:"extracted_text,omitempty"`
	TranslatedText string    `json:"translated_text,omitempty"`
	Error          string    `json:"error,omitempty"`
	Provider       string    `json:"provider,omitempty"`
	Model          string    `json:"model,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
