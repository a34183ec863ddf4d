package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the refinement provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the refinement model identifier.
	FieldModel = "ai_model"
)

// ProviderFields builds the common structured fields for refinement-provider
// logging, omitting blank values.
func ProviderFields(provider, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if provider = strings.TrimSpace(provider); provider != "" {
		fields = append(fields, zap.String(FieldProvider, provider))
	}
	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}

	return fields
}

// WithProvider attaches provider/model fields to the logger, defaulting to a
// no-op logger when nil.
func WithProvider(logger *zap.Logger, provider, model string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := ProviderFields(provider, model)
	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}
