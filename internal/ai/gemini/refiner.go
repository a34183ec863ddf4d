package gemini

import (
	"context"
	"unicode/utf8"

	"github.com/devanksh/jobfinder/internal/ai"
	"github.com/devanksh/jobfinder/internal/util"

	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

const defaultMaxLogLength = 200

// Refiner implements ai.Refiner on top of a Gemini content generator.
type Refiner struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewRefiner(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Refiner {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Refiner{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (r *Refiner) Refine(ctx context.Context, resumeText string) (*ai.Refinement, error) {
	prompt := ai.BuildPrompt(resumeText)

	r.logger.Debug("gemini refinement request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini refinement response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, r.maxLogLen)),
	)

	return ai.ParseRefinement(raw)
}
