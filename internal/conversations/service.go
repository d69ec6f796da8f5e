package conversations

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"unimate/internal/models"
	"unimate/internal/observability"
	"unimate/internal/repositories"
)

// Service fetches and projects the inbox of a profile.
type Service struct {
	repo   repositories.ConversationRepository
	loc    *time.Location
	logger *zap.Logger
}

// NewService builds a Service. Time labels are rendered in loc.
func NewService(repo repositories.ConversationRepository, loc *time.Location, logger *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, loc: loc, logger: logger}
}

// List never fails: a read error is logged and answered with Fallback().
func (s *Service) List(ctx context.Context, profileID string) []models.ConversationSummary {
	ctx, span := otel.Tracer("unimate/conversations").Start(ctx, "conversations.list")
	defer span.End()

	rows, err := s.repo.ListConversationRows(ctx, profileID)
	if err != nil {
		s.logger.Error("conversation list unavailable, serving fallback",
			zap.String("profile_id", profileID),
			zap.Error(err),
		)
		observability.IncConversationFallback()
		span.SetAttributes(attribute.Bool("conversations.fallback", true))
		return Fallback()
	}

	span.SetAttributes(attribute.Int("conversations.rows", len(rows)))
	return ProjectAll(rows, profileID, s.loc)
}
