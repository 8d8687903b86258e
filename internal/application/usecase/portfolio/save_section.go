package portfolio

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/msamy/portfolio-api/internal/domain/portfolio"
	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

type SaveSectionUseCase struct {
	repo   portfolio.Repository
	cache  Cache
	events EventPublisher
	logger logger.Logger
}

func NewSaveSectionUseCase(repo portfolio.Repository, cache Cache, events EventPublisher, log logger.Logger) *SaveSectionUseCase {
	return &SaveSectionUseCase{repo: repo, cache: cache, events: events, logger: log}
}

// Execute upserts exactly one section's fields into the stored document,
// creating it when missing and leaving every sibling section untouched. On
// failure the caller keeps its buffer and may simply retry.
func (uc *SaveSectionUseCase) Execute(ctx context.Context, section portfolio.Section, value any) error {
	return uc.ExecuteMany(ctx, map[portfolio.Section]any{section: value})
}

// ExecuteMany writes several sections in one upsert. Used by the homepage
// save (hero + about + timeline); still a partial write with respect to all
// other sections, with no cross-call atomicity promised.
func (uc *SaveSectionUseCase) ExecuteMany(ctx context.Context, values map[portfolio.Section]any) error {
	ctx, span := tracer.Start(ctx, "SaveSection")
	defer span.End()

	for section := range values {
		if !section.Valid() {
			return apperror.NewInvalidInput("unknown section '"+string(section)+"'", portfolio.ErrUnknownSection)
		}
		span.SetAttributes(attribute.String("section", string(section)))
	}

	if err := uc.repo.UpsertSections(ctx, values); err != nil {
		span.RecordError(err)
		name := ""
		for section := range values {
			name = string(section)
			break
		}
		return apperror.NewPersist(name, "document store upsert failed", err)
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx)
	}
	uc.publish(ctx, values)
	return nil
}

func (uc *SaveSectionUseCase) publish(ctx context.Context, values map[portfolio.Section]any) {
	if uc.events == nil {
		return
	}
	sections := make([]portfolio.Section, 0, len(values))
	for section := range values {
		sections = append(sections, section)
	}
	if err := uc.events.PublishSectionSaved(ctx, sections...); err != nil {
		uc.logger.Error("Failed to publish section-saved event", err,
			zap.Int("sections", len(sections)))
	}
}
