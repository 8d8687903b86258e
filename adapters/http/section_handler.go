package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portfolioUC "github.com/msamy/portfolio-api/internal/application/usecase/portfolio"
	"github.com/msamy/portfolio-api/internal/domain/portfolio"
	"github.com/msamy/portfolio-api/pkg/apperror"
	"github.com/msamy/portfolio-api/pkg/logger"
)

// SectionHandler serves the admin save endpoints. Each endpoint takes the
// full section value and replaces what was stored; sections never touch
// each other.
type SectionHandler struct {
	saveSectionUC  *portfolioUC.SaveSectionUseCase
	saveProfileUC  *portfolioUC.SaveProfileUseCase
	saveProjectsUC *portfolioUC.SaveProjectsUseCase
	logger         logger.Logger
}

func NewSectionHandler(
	saveSectionUC *portfolioUC.SaveSectionUseCase,
	saveProfileUC *portfolioUC.SaveProfileUseCase,
	saveProjectsUC *portfolioUC.SaveProjectsUseCase,
	log logger.Logger,
) *SectionHandler {
	return &SectionHandler{
		saveSectionUC:  saveSectionUC,
		saveProfileUC:  saveProfileUC,
		saveProjectsUC: saveProjectsUC,
		logger:         log,
	}
}

func (h *SectionHandler) SaveProfile(c *gin.Context) {
	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile save", err))
		return
	}

	output, err := h.saveProfileUC.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, output.Profile)
}

func (h *SectionHandler) SaveProjects(c *gin.Context) {
	var req SaveProjectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for projects save", err))
		return
	}

	output, err := h.saveProjectsUC.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": output.Projects})
}

func (h *SectionHandler) SaveExperiences(c *gin.Context) {
	var req SaveExperiencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for experiences save", err))
		return
	}

	h.saveValue(c, portfolio.SectionExperiences, req.Experiences)
}

func (h *SectionHandler) SaveEducation(c *gin.Context) {
	var req SaveEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for education save", err))
		return
	}

	h.saveValue(c, portfolio.SectionEducation, req.Education)
}

func (h *SectionHandler) SaveSkills(c *gin.Context) {
	var req SaveSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for skills save", err))
		return
	}

	h.saveValue(c, portfolio.SectionSkills, req.ToDomain())
}

func (h *SectionHandler) SaveServices(c *gin.Context) {
	var req SaveServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for services save", err))
		return
	}

	h.saveValue(c, portfolio.SectionServices, req.Services)
}

func (h *SectionHandler) SaveContact(c *gin.Context) {
	var req SaveContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for contact save", err))
		return
	}

	h.saveValue(c, portfolio.SectionContact, req.Contact)
}

func (h *SectionHandler) SaveCourses(c *gin.Context) {
	var req SaveCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for courses save", err))
		return
	}

	h.saveValue(c, portfolio.SectionCourses, req.Courses)
}

// SaveHomepage writes hero, about and the timeline in one request. The
// three sections still land as independent column writes.
func (h *SectionHandler) SaveHomepage(c *gin.Context) {
	var req SaveHomepageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for homepage save", err))
		return
	}

	values := map[portfolio.Section]any{
		portfolio.SectionHero:               req.Hero,
		portfolio.SectionAbout:              req.About.ToDomain(),
		portfolio.SectionTimelineExperience: req.TimelineExperience.ToDomain(),
	}
	if err := h.saveSectionUC.ExecuteMany(c.Request.Context(), values); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func (h *SectionHandler) saveValue(c *gin.Context, section portfolio.Section, value any) {
	if err := h.saveSectionUC.Execute(c.Request.Context(), section, value); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}
