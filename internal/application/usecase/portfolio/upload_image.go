package portfolio

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/msamy/portfolio-api/internal/application/service"
	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

// UploadImageUseCase backs the standalone upload endpoint: clients that
// already hold a durable URL (pasted links, pre-uploaded files) go through
// here and then reference the URL in a section save.
type UploadImageUseCase struct {
	blob   service.BlobStore
	folder string
	logger logger.Logger
}

func NewUploadImageUseCase(blob service.BlobStore, folder string, log logger.Logger) *UploadImageUseCase {
	return &UploadImageUseCase{blob: blob, folder: folder, logger: log}
}

type UploadImageInput struct {
	File io.Reader
	Name string
}

type UploadImageOutput struct {
	URL string
}

func (uc *UploadImageUseCase) Execute(ctx context.Context, input UploadImageInput) (*UploadImageOutput, error) {
	ctx, span := tracer.Start(ctx, "UploadImage")
	defer span.End()

	url, err := uc.blob.Put(ctx, input.File, uc.folder, uuid.NewString())
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewAssetUpload(input.Name, err)
	}
	uc.logger.Info("Uploaded image", zap.String("url", url), zap.String("name", input.Name))
	return &UploadImageOutput{URL: url}, nil
}

// Delete removes a durable asset by URL. Deleting something already gone is
// success; cleanup must stay idempotent.
func (uc *UploadImageUseCase) Delete(ctx context.Context, url string) error {
	ctx, span := tracer.Start(ctx, "DeleteImage")
	defer span.End()

	if err := uc.blob.Delete(ctx, url); err != nil {
		span.RecordError(err)
		return apperror.NewInternal("failed to delete asset", err)
	}
	return nil
}
