package portfolio

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/msamy/portfolio-api/internal/application/assets"
	"github.com/msamy/portfolio-api/internal/application/editor"
	"github.com/msamy/portfolio-api/internal/application/service"
	"github.com/msamy/portfolio-api/internal/domain/portfolio"
	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

type SaveProjectsUseCase struct {
	repo        portfolio.Repository
	blob        service.BlobStore
	saveSection *SaveSectionUseCase
	folder      string
	logger      logger.Logger
}

func NewSaveProjectsUseCase(
	repo portfolio.Repository,
	blob service.BlobStore,
	saveSection *SaveSectionUseCase,
	folder string,
	log logger.Logger,
) *SaveProjectsUseCase {
	return &SaveProjectsUseCase{
		repo:        repo,
		blob:        blob,
		saveSection: saveSection,
		folder:      folder,
		logger:      log,
	}
}

// ImageInput is one image slot of a project being saved: either a durable
// URL or raw bytes still needing upload. Never both.
type ImageInput struct {
	URL  string
	Name string
	Data []byte
}

type ProjectInput struct {
	ID          string
	Title       string
	Description string
	Link        string
	Images      []ImageInput
}

type SaveProjectsInput struct {
	Projects []ProjectInput
}

type SaveProjectsOutput struct {
	Projects []portfolio.Project
}

// Execute persists the whole projects section. Every staged image becomes
// durable before the document is written; any upload failure aborts the
// save with no document mutation and no deletion. Cleanup of images the new
// list no longer references (removed images, replaced images, deleted
// projects) runs only after the upsert succeeded, diffing the stored
// section against the saved one.
func (uc *SaveProjectsUseCase) Execute(ctx context.Context, input SaveProjectsInput) (*SaveProjectsOutput, error) {
	ctx, span := tracer.Start(ctx, "SaveProjects")
	defer span.End()

	stored, err := uc.repo.Get(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewFetch("could not read the stored projects baseline", err)
	}
	var baselineURLs []string
	if stored != nil {
		for _, p := range stored.Projects {
			baselineURLs = append(baselineURLs, p.Images...)
		}
	}

	list := editor.NewList(
		func(p portfolio.Project) string { return p.ID },
		func(p *portfolio.Project, id string) { p.ID = id },
	)
	projects := make([]portfolio.Project, len(input.Projects))
	sets := make([]*assets.ImageSet, len(input.Projects))
	for i, in := range input.Projects {
		set := assets.NewImageSet(uc.blob, uc.logger, uc.folder, nil)
		for _, img := range in.Images {
			switch {
			case len(img.Data) > 0:
				set.AddFromFile(img.Name, img.Data)
			case assets.IsDurable(img.URL):
				set.AddFromURL(img.URL)
			default:
				return nil, apperror.NewInvalidInput("image '"+img.Name+"' has neither payload nor durable URL", nil)
			}
		}
		sets[i] = set
		projects[i] = portfolio.Project{
			ID:          in.ID,
			Title:       in.Title,
			Description: in.Description,
			Link:        in.Link,
		}
	}
	list.Load(projects)
	list.EnsureIDs()
	if list.HasDuplicateIDs() {
		return nil, apperror.NewInvalidInput("duplicate project id in payload", nil)
	}
	projects = list.Items()

	var fresh []*assets.Ref
	for _, set := range sets {
		fresh = append(fresh, set.StagedRefs()...)
	}

	// phase 1: every staged image across every project becomes durable, or
	// nothing is written at all
	g, gctx := errgroup.WithContext(ctx)
	for _, set := range sets {
		g.Go(func() error { return set.UploadStaged(gctx) })
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	inUse := make(map[string]struct{})
	for i := range projects {
		urls, err := sets[i].FinalURLs()
		if err != nil {
			return nil, err
		}
		projects[i].Images = urls
		for _, url := range urls {
			inUse[url] = struct{}{}
		}
	}

	// phase 2: partial upsert of the projects section only. A failed write
	// drops this pass's uploads again so nothing durable is stranded.
	if err := uc.saveSection.Execute(ctx, portfolio.SectionProjects, projects); err != nil {
		uc.discardUploads(ctx, fresh)
		return nil, err
	}

	// phase 3: section-wide baseline diff; stored URLs nothing references
	// anymore are orphans now that the document points at the new list
	uc.cleanup(ctx, baselineURLs, inUse)

	return &SaveProjectsOutput{Projects: projects}, nil
}

// discardUploads deletes the durable URLs the given references gained this
// pass. Best effort, failures are logged.
func (uc *SaveProjectsUseCase) discardUploads(ctx context.Context, fresh []*assets.Ref) {
	g, gctx := errgroup.WithContext(ctx)
	for _, ref := range fresh {
		if ref.Staged() || !assets.IsDurable(ref.URL()) {
			continue
		}
		g.Go(func() error {
			if err := uc.blob.Delete(gctx, ref.URL()); err != nil {
				uc.logger.Warn("Failed to delete upload of aborted save",
					zap.String("url", ref.URL()), zap.Error(err))
			}
			return nil
		})
	}
	g.Wait()
}

func (uc *SaveProjectsUseCase) cleanup(ctx context.Context, baseline []string, inUse map[string]struct{}) {
	seen := make(map[string]struct{})
	g, gctx := errgroup.WithContext(ctx)
	for _, url := range baseline {
		if _, live := inUse[url]; live || !assets.IsDurable(url) {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		g.Go(func() error {
			if err := uc.blob.Delete(gctx, url); err != nil {
				uc.logger.Warn("Failed to delete orphaned project image",
					zap.String("url", url), zap.Error(err))
			}
			return nil
		})
	}
	g.Wait()
}
