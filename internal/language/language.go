// Package language defines the closed set of translation target languages.
package language

import "fmt"

// Code is an ISO 639-1 code for a supported target language.
type Code string

const (
	English Code = "en"
	Bengali Code = "bn"
)

// Default is used when the user has not picked a target language.
const Default = English

// Supported returns the selectable target languages in display order.
func Supported() []Code {
	return []Code{English, Bengali}
}

// Parse validates a language code coming from user input.
func Parse(s string) (Code, error) {
	switch Code(s) {
	case English, Bengali:
		return Code(s), nil
	}
	return "", fmt.Errorf("unsupported target language %q (supported: en, bn)", s)
}

// DisplayName returns the human-readable name used in prompts and the UI.
func (c Code) DisplayName() string {
	switch c {
	case English:
		return "English"
	case Bengali:
		return "Bengali"
	}
	return string(c)
}

func (c Code) String() string {
	return string(c)
}
