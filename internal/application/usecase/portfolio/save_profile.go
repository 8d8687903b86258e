package portfolio

import (
	"context"

	"github.com/msamy/portfolio-api/internal/application/assets"
	"github.com/msamy/portfolio-api/internal/application/service"
	"github.com/msamy/portfolio-api/internal/domain/portfolio"
	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

type SaveProfileUseCase struct {
	repo        portfolio.Repository
	blob        service.BlobStore
	saveSection *SaveSectionUseCase
	folder      string
	logger      logger.Logger
}

func NewSaveProfileUseCase(
	repo portfolio.Repository,
	blob service.BlobStore,
	saveSection *SaveSectionUseCase,
	folder string,
	log logger.Logger,
) *SaveProfileUseCase {
	return &SaveProfileUseCase{
		repo:        repo,
		blob:        blob,
		saveSection: saveSection,
		folder:      folder,
		logger:      log,
	}
}

type SaveProfileInput struct {
	Profile portfolio.Profile
	// AvatarData, when set, replaces the avatar with a not-yet-uploaded
	// image; Profile.AvatarURL is ignored in that case.
	AvatarData []byte
	AvatarName string
}

type SaveProfileOutput struct {
	Profile portfolio.Profile
}

// Execute saves the profile section. A staged avatar is uploaded first; the
// profile field swaps to the new durable URL, and only after the document
// write succeeded is the replaced durable avatar deleted. If the upload
// fails nothing is written and the old avatar stays live; if the document
// write fails the fresh upload is dropped again.
func (uc *SaveProfileUseCase) Execute(ctx context.Context, input SaveProfileInput) (*SaveProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "SaveProfile")
	defer span.End()

	stored, err := uc.repo.Get(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewFetch("could not read the stored profile baseline", err)
	}
	committed := ""
	if stored != nil && stored.Profile != nil {
		committed = stored.Profile.AvatarURL
	}

	slot := assets.NewAvatarSlot(uc.blob, uc.logger, uc.folder, committed)
	switch {
	case len(input.AvatarData) > 0:
		slot.Stage(input.AvatarName, input.AvatarData)
	case input.Profile.AvatarURL == "":
		slot.Clear()
	case assets.IsDurable(input.Profile.AvatarURL):
		slot.SetURL(input.Profile.AvatarURL)
	default:
		return nil, apperror.NewInvalidInput("avatarUrl is a local preview, not a durable URL", nil)
	}

	profile := input.Profile
	if _, err := slot.ReconcileOnSave(ctx, func(url string) error {
		profile.AvatarURL = url
		return uc.saveSection.Execute(ctx, portfolio.SectionProfile, profile)
	}); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &SaveProfileOutput{Profile: profile}, nil
}
