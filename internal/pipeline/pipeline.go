// Package pipeline sequences the two-stage image -> Hindi text -> translation
// flow against an LLM provider and owns its externally observable state.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/anuvad-app/anuvad/internal/images"
	"github.com/anuvad-app/anuvad/internal/language"
	"github.com/anuvad-app/anuvad/internal/providers"
)

const extractionPrompt = `Extract all Hindi text from this image. Return only the extracted text, with no commentary or explanation. Preserve the original line breaks.`

func translationPrompt(target language.Code, text string) string {
	return fmt.Sprintf("Translate the following Hindi text into %s: \"%s\"\n\nReturn only the translated text, with no commentary or explanation.", target.DisplayName(), text)
}

// Pipeline runs extraction then translation against a provider. Only one run
// may be active at a time; entering a new run clears the previous results
// and error text. Translation is never attempted unless extraction produced
// non-empty text, and each stage gets exactly one request.
type Pipeline struct {
	provider providers.Provider
	model    string

	mu         sync.Mutex
	state      State
	reason     Reason
	source     *images.SourceImage
	target     language.Code
	extracted  string
	translated string
	errMsg     string
}

// New returns an idle pipeline bound to the given provider and model.
func New(provider providers.Provider, model string) *Pipeline {
	return &Pipeline{
		provider: provider,
		model:    model,
		state:    StateIdle,
		target:   language.Default,
	}
}

// SetSourceImage replaces the image used by the next run. It never aborts a
// run already in flight; the in-flight run finishes with the image it
// started with.
func (p *Pipeline) SetSourceImage(img *images.SourceImage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.source = img
}

// SetTargetLanguage picks the translation target for the next run. Results
// already published are left untouched.
func (p *Pipeline) SetTargetLanguage(code language.Code) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.target = code
}

// Snapshot returns a consistent copy of the observable fields.
func (p *Pipeline) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Pipeline) snapshotLocked() Snapshot {
	return Snapshot{
		State:          p.state,
		Reason:         p.reason,
		TargetLanguage: p.target,
		ExtractedText:  p.extracted,
		TranslatedText: p.translated,
		ErrorMessage:   p.errMsg,
		Busy:           p.state == StateRunning,
	}
}

// Run executes one extraction+translation attempt and returns the terminal
// snapshot. The returned error is nil only when the run succeeded.
func (p *Pipeline) Run(ctx context.Context) (Snapshot, error) {
	p.mu.Lock()
	if p.state == StateRunning {
		snap := p.snapshotLocked()
		p.mu.Unlock()
		return snap, ErrBusy
	}
	if p.source == nil {
		// Validation failure: the run never starts, so prior results are
		// retained and only the error message is replaced.
		p.state = StateFailed
		p.reason = ReasonNoImageSelected
		p.errMsg = "Please select an image first."
		snap := p.snapshotLocked()
		p.mu.Unlock()
		return snap, ErrNoImageSelected
	}
	p.state = StateRunning
	p.reason = ReasonNone
	p.extracted = ""
	p.translated = ""
	p.errMsg = ""
	source := p.source
	target := p.target
	p.mu.Unlock()

	extracted, err := p.provider.Generate(ctx, providers.Config{
		Model:  p.model,
		Prompt: extractionPrompt,
		Image: &providers.InlineImage{
			MIMEType: source.MIMEType,
			Data:     source.Payload(),
		},
	})
	if err != nil {
		reason := classify(err, ReasonExtractionTransport, ReasonExtractionParse)
		msg := err.Error()
		if reason == ReasonExtractionParse {
			msg = "No readable text was returned for this image. Try a clearer photo of the Hindi text."
		}
		slog.Error("Extraction stage failed", "image", source.Name, "reason", reason, "err", err)
		return p.fail(reason, msg), err
	}

	// Publish the extracted text before translating so it stays visible
	// even when the translation stage fails.
	p.mu.Lock()
	p.extracted = extracted
	p.mu.Unlock()

	if extracted == "" {
		return p.fail(ReasonNothingToTranslate, "No text was extracted, so there is nothing to translate."), ErrNothingToTranslate
	}

	translated, err := p.provider.Generate(ctx, providers.Config{
		Model:  p.model,
		Prompt: translationPrompt(target, extracted),
	})
	if err != nil {
		reason := classify(err, ReasonTranslationTransport, ReasonTranslationParse)
		msg := err.Error()
		if reason == ReasonTranslationParse {
			msg = "The translation service returned no usable text. Try again."
		}
		slog.Error("Translation stage failed", "image", source.Name, "target_lang", target, "reason", reason, "err", err)
		return p.fail(reason, msg), err
	}

	p.mu.Lock()
	p.translated = translated
	p.state = StateSucceeded
	snap := p.snapshotLocked()
	p.mu.Unlock()
	slog.Info("Pipeline run succeeded", "image", source.Name, "target_lang", target, "extracted_len", len(extracted), "translated_len", len(translated))
	return snap, nil
}

func (p *Pipeline) fail(reason Reason, msg string) Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateFailed
	p.reason = reason
	p.errMsg = msg
	return p.snapshotLocked()
}

// classify maps a provider error to the stage's transport or parse reason.
// Unrecognized errors count as transport failures.
func classify(err error, transport, parse Reason) Reason {
	var parseErr *providers.ParseError
	if errors.As(err, &parseErr) {
		return parse
	}
	return transport
}
