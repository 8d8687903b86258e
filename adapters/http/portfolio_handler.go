package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	portfolioUC "github.com/msamy/portfolio-api/internal/application/usecase/portfolio"
	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

type PortfolioHandler struct {
	loadUseCase *portfolioUC.LoadPortfolioUseCase
	logger      logger.Logger
}

func NewPortfolioHandler(loadUC *portfolioUC.LoadPortfolioUseCase, log logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		loadUseCase: loadUC,
		logger:      log,
	}
}

// GetPortfolio returns the full document with defaults applied. A document
// store outage degrades to the built-in defaults instead of failing the
// public page.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	output, err := h.loadUseCase.Execute(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperror.ErrFetch) {
			h.logger.Warn("Serving default portfolio, store unavailable", zap.Error(err))
			c.Header("X-Portfolio-Source", "defaults")
			c.JSON(http.StatusOK, h.loadUseCase.Defaults())
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output.Document)
}
