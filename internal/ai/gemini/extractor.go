package gemini

import (
	"context"
	"unicode/utf8"

	_ "embed"

	"github.com/stayseeker/stayseeker/internal/ai"
	"github.com/stayseeker/stayseeker/internal/booking"
	"github.com/stayseeker/stayseeker/internal/logger"
	"go.uber.org/zap"
)

//go:embed prompt.md
var systemPrompt string

const defaultMaxLogLength = 200

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Extractor extracts search criteria from free-text queries via a Gemini
// model call.
type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Extractor = (*Extractor)(nil)

func NewExtractor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Extractor{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Extract builds the extraction prompt, invokes the model and parses the
// output into criteria. Any failure, whether from the model call or the
// parse, degrades to the safe default criteria instead of an error.
func (e *Extractor) Extract(ctx context.Context, query string) *booking.Criteria {
	e.logger.Debug("gemini extraction request",
		zap.String("model", e.generator.Model()),
		zap.Int("query_length", utf8.RuneCountInString(query)),
		zap.String("query_preview", logger.TruncateForLog(query, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, systemPrompt, query)
	if err != nil {
		e.logger.Warn("criteria extraction failed, falling back to defaults", zap.Error(err))
		return booking.DefaultCriteria()
	}

	e.logger.Debug("gemini extraction response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	criteria, err := booking.ParseCriteria(raw)
	if err != nil {
		e.logger.Warn("parsing extracted criteria failed, falling back to defaults", zap.Error(err))
		return booking.DefaultCriteria()
	}

	e.logger.Info("extracted search criteria",
		zap.String("location", criteria.Location),
		zap.Int("max_results", criteria.MaxResults),
	)

	return criteria
}
