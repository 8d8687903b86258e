package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/msamy/portfolio-api/internal/domain/portfolio"
	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

// postgresPortfolioRepo stores the composite document as one row with a
// JSONB column per section. A section save upserts only its own column, so
// sibling sections (including ones this binary does not know about) are
// untouched by construction.
type postgresPortfolioRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPortfolioRepo(db *pgxpool.Pool, logger logger.Logger) portfolio.Repository {
	return &postgresPortfolioRepo{db: db, logger: logger}
}

var psqlPortfolio = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresPortfolioRepo) Get(ctx context.Context) (*portfolio.Document, error) {
	sections := portfolio.Sections()
	cols := make([]string, len(sections))
	for i, section := range sections {
		cols[i], _ = section.Column()
	}

	query, args, err := psqlPortfolio.Select(cols...).
		From("portfolio").
		Where(sq.Eq{"id": portfolio.DocumentKey}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build portfolio select", err)
	}

	raw := make([][]byte, len(cols))
	dest := make([]any, len(cols))
	for i := range raw {
		dest[i] = &raw[i]
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// no document yet; the loader fills in defaults
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to query portfolio document", err)
	}

	doc := &portfolio.Document{}
	for i, section := range sections {
		if raw[i] == nil {
			continue
		}
		if err := r.decodeSection(doc, section, raw[i]); err != nil {
			r.logger.Warn("Failed to unmarshal portfolio section, using default",
				zap.String("section", string(section)), zap.Error(err))
		}
	}
	return doc, nil
}

func (r *postgresPortfolioRepo) decodeSection(doc *portfolio.Document, section portfolio.Section, raw []byte) error {
	switch section {
	case portfolio.SectionProfile:
		return json.Unmarshal(raw, &doc.Profile)
	case portfolio.SectionProjects:
		return json.Unmarshal(raw, &doc.Projects)
	case portfolio.SectionExperiences:
		return json.Unmarshal(raw, &doc.Experiences)
	case portfolio.SectionHero:
		return json.Unmarshal(raw, &doc.Hero)
	case portfolio.SectionAbout:
		return json.Unmarshal(raw, &doc.About)
	case portfolio.SectionEducation:
		return json.Unmarshal(raw, &doc.Education)
	case portfolio.SectionTimelineExperience:
		return json.Unmarshal(raw, &doc.TimelineExperience)
	case portfolio.SectionSkills:
		return json.Unmarshal(raw, &doc.Skills)
	case portfolio.SectionServices:
		return json.Unmarshal(raw, &doc.Services)
	case portfolio.SectionContact:
		return json.Unmarshal(raw, &doc.Contact)
	case portfolio.SectionCourses:
		return json.Unmarshal(raw, &doc.Courses)
	}
	return portfolio.ErrUnknownSection
}

func (r *postgresPortfolioRepo) UpsertSection(ctx context.Context, section portfolio.Section, value any) error {
	return r.UpsertSections(ctx, map[portfolio.Section]any{section: value})
}

func (r *postgresPortfolioRepo) UpsertSections(ctx context.Context, values map[portfolio.Section]any) error {
	cols := []string{"id"}
	args := []any{portfolio.DocumentKey}
	setParts := []string{"updated_at = NOW()"}

	// registry order keeps the statement deterministic
	for _, section := range portfolio.Sections() {
		value, ok := values[section]
		if !ok {
			continue
		}
		col, err := section.Column()
		if err != nil {
			return apperror.NewInvalidInput("unknown section '"+string(section)+"'", err)
		}
		payload, err := json.Marshal(value)
		if err != nil {
			return apperror.NewInternal("failed to marshal section '"+string(section)+"'", err)
		}
		cols = append(cols, col)
		args = append(args, payload)
		setParts = append(setParts, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	if len(cols) == 1 {
		return apperror.NewInvalidInput("no sections to save", nil)
	}

	query, sqlArgs, err := psqlPortfolio.Insert("portfolio").
		Columns(cols...).
		Values(args...).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(setParts, ", ")).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build portfolio upsert", err)
	}

	if _, err := r.db.Exec(ctx, query, sqlArgs...); err != nil {
		return apperror.NewInternal("failed to upsert portfolio sections", err)
	}
	return nil
}
