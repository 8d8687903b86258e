package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/msamy/portfolio-api/internal/application/usecase/portfolio"
	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

type UploadHandler struct {
	uploadUseCase *portfolioUC.UploadImageUseCase
	logger        logger.Logger
}

func NewUploadHandler(uploadUC *portfolioUC.UploadImageUseCase, log logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUC,
		logger:        log,
	}
}

// UploadImage uploads a single multipart file and returns its durable URL.
func (h *UploadHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	input := portfolioUC.UploadImageInput{
		File: file,
		Name: fileHeader.Filename,
	}
	output, err := h.uploadUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": output.URL})
}

// DeleteImage removes a durable asset by URL. Unknown URLs succeed.
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.Error(apperror.NewInvalidInput("'url' query parameter is required", nil))
		return
	}

	if err := h.uploadUseCase.Delete(c.Request.Context(), url); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
