package portfolio

import (
	"context"

	"github.com/msamy/portfolio-api/internal/domain/portfolio"
)

// Cache is a read-through cache of the fully defaulted document. Adapters
// swallow their own errors; a miss is just nil.
type Cache interface {
	GetDocument(ctx context.Context) *portfolio.Document
	SetDocument(ctx context.Context, doc *portfolio.Document)
	Invalidate(ctx context.Context)
}

// EventPublisher announces that sections were saved so downstream consumers
// (cache warmer, site rebuild) can react. Publishing is best effort.
type EventPublisher interface {
	PublishSectionSaved(ctx context.Context, sections ...portfolio.Section) error
}
