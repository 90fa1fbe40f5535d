package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"remix-backend/internal/metrics"
	"remix-backend/internal/models"
)

// GenerationResult is the outcome of a generation call. Output is always
// usable: when the model call fails it holds FallbackOutput and Err is set.
type GenerationResult struct {
	Output string
	Err    *GenerationError
}

// Failed reports whether Output is the fallback text.
func (r GenerationResult) Failed() bool { return r.Err != nil }

// ContentService turns collected content into a generated output.
type ContentService struct {
	generator Generator
	keyName   string
	log       zerolog.Logger
}

// NewContentService wraps a generator. A nil generator means the credential
// named by keyName is missing.
func NewContentService(generator Generator, keyName string, log zerolog.Logger) *ContentService {
	return &ContentService{
		generator: generator,
		keyName:   keyName,
		log:       log.With().Str("component", "generation").Logger(),
	}
}

// Ready returns a ConfigurationError when no generator is configured.
func (s *ContentService) Ready() error {
	if s.generator == nil {
		return &ConfigurationError{Key: s.keyName}
	}
	return nil
}

// Process builds the content bank, composes the prompt and runs one
// generation call. It never fails once Ready passes.
func (s *ContentService) Process(ctx context.Context, req models.ProcessContentRequest) GenerationResult {
	bank := BuildContentBank(ContentInputs{
		Screenshots: req.Screenshots,
		Transcript:  req.Transcript,
		Comments:    req.Comments,
		Article:     req.Article,
		RawText:     req.RawText,
	})
	prompt := ComposePrompt(bank, req.Mode, req.Tone)

	provider := s.generator.Provider()
	output, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		genErr := &GenerationError{Provider: provider, Err: err}
		metrics.RecordGeneration(provider, "fallback")
		s.log.Error().Err(err).
			Str("mode", ParseMode(req.Mode).String()).
			Str("tone", ParseTone(req.Tone).String()).
			Msg("generation failed, returning content bank")
		return GenerationResult{Output: FallbackOutput(genErr, bank), Err: genErr}
	}

	metrics.RecordGeneration(provider, "success")
	return GenerationResult{Output: output}
}

// FallbackOutput is returned in place of model output when generation
// fails: the failure reason followed by the verbatim content bank.
func FallbackOutput(err error, bank string) string {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return fmt.Sprintf("[AI CALL FAILED]\n\nReason: %s\n\nHere is the raw content bank so at least you see what was sent:\n\n%s", reason, bank)
}
