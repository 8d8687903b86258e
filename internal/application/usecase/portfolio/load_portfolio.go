package portfolio

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/msamy/portfolio-api/internal/domain/portfolio"
	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

var tracer = otel.Tracer("portfolio_usecase")

type LoadPortfolioUseCase struct {
	repo   portfolio.Repository
	cache  Cache
	logger logger.Logger
}

func NewLoadPortfolioUseCase(repo portfolio.Repository, cache Cache, log logger.Logger) *LoadPortfolioUseCase {
	return &LoadPortfolioUseCase{repo: repo, cache: cache, logger: log}
}

type LoadPortfolioOutput struct {
	Document *portfolio.Document
}

// Execute fetches the singleton document and substitutes a complete default
// for every absent section. An unreachable store surfaces as a FetchError;
// callers fall back to Defaults().
func (uc *LoadPortfolioUseCase) Execute(ctx context.Context) (*LoadPortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "LoadPortfolio")
	defer span.End()

	if uc.cache != nil {
		if doc := uc.cache.GetDocument(ctx); doc != nil {
			return &LoadPortfolioOutput{Document: doc}, nil
		}
	}

	doc, err := uc.repo.Get(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewFetch("could not read the portfolio document", err)
	}

	doc = portfolio.ApplyDefaults(doc)

	if uc.cache != nil {
		uc.cache.SetDocument(ctx, doc)
	}
	return &LoadPortfolioOutput{Document: doc}, nil
}

// Defaults is the in-memory fallback when the store is unreachable.
func (uc *LoadPortfolioUseCase) Defaults() *portfolio.Document {
	return portfolio.ApplyDefaults(nil)
}
