package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portfolioUC "github.com/msamy/portfolio-api/internal/application/usecase/portfolio"
	"github.com/msamy/portfolio-api/internal/domain/portfolio"
	"github.com/msamy/portfolio-api/pkg/logger"
)

type fakeRepo struct {
	mu        sync.Mutex
	sections  map[portfolio.Section]any
	getErr    error
	upsertErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sections: make(map[portfolio.Section]any)}
}

func (r *fakeRepo) Get(_ context.Context) (*portfolio.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	if len(r.sections) == 0 {
		return nil, nil
	}
	doc := &portfolio.Document{}
	for section, v := range r.sections {
		switch section {
		case portfolio.SectionProfile:
			p := v.(portfolio.Profile)
			doc.Profile = &p
		case portfolio.SectionProjects:
			doc.Projects = v.([]portfolio.Project)
		case portfolio.SectionExperiences:
			doc.Experiences = v.([]portfolio.Experience)
		case portfolio.SectionHero:
			h := v.(portfolio.Hero)
			doc.Hero = &h
		case portfolio.SectionAbout:
			a := v.(portfolio.About)
			doc.About = &a
		case portfolio.SectionTimelineExperience:
			t := v.(portfolio.TimelineExperience)
			doc.TimelineExperience = &t
		case portfolio.SectionSkills:
			s := v.(portfolio.Skills)
			doc.Skills = &s
		}
	}
	return doc, nil
}

func (r *fakeRepo) UpsertSection(ctx context.Context, section portfolio.Section, value any) error {
	return r.UpsertSections(ctx, map[portfolio.Section]any{section: value})
}

func (r *fakeRepo) UpsertSections(_ context.Context, values map[portfolio.Section]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for section, v := range values {
		r.sections[section] = v
	}
	return nil
}

type fakeBlob struct {
	mu      sync.Mutex
	puts    int
	deletes []string
}

func (f *fakeBlob) Put(_ context.Context, data io.Reader, _ string, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	io.ReadAll(data)
	f.puts++
	return fmt.Sprintf("https://cdn.test/img-%d.png", f.puts), nil
}

func (f *fakeBlob) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, url)
	return nil
}

func newTestRouter(repo *fakeRepo, blob *fakeBlob) *gin.Engine {
	log := logger.NewNop()

	loadUC := portfolioUC.NewLoadPortfolioUseCase(repo, nil, log)
	saveSectionUC := portfolioUC.NewSaveSectionUseCase(repo, nil, nil, log)
	saveProfileUC := portfolioUC.NewSaveProfileUseCase(repo, blob, saveSectionUC, "portfolio", log)
	saveProjectsUC := portfolioUC.NewSaveProjectsUseCase(repo, blob, saveSectionUC, "portfolio", log)
	uploadUC := portfolioUC.NewUploadImageUseCase(blob, "portfolio", log)

	portfolioHandler := NewPortfolioHandler(loadUC, log)
	sectionHandler := NewSectionHandler(saveSectionUC, saveProfileUC, saveProjectsUC, log)
	uploadHandler := NewUploadHandler(uploadUC, log)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(log))

	api := router.Group("/api")
	api.GET("/portfolio", portfolioHandler.GetPortfolio)

	admin := api.Group("/admin")
	admin.POST("/profile", sectionHandler.SaveProfile)
	admin.POST("/projects", sectionHandler.SaveProjects)
	admin.POST("/experiences", sectionHandler.SaveExperiences)
	admin.POST("/homepage", sectionHandler.SaveHomepage)
	admin.POST("/skills", sectionHandler.SaveSkills)
	admin.POST("/upload", uploadHandler.UploadImage)
	admin.DELETE("/upload", uploadHandler.DeleteImage)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetPortfolio_DefaultsWhenEmpty(t *testing.T) {
	router := newTestRouter(newFakeRepo(), &fakeBlob{})

	rr := doJSON(t, router, http.MethodGet, "/api/portfolio", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var doc portfolio.Document
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	require.NotNil(t, doc.Profile)
	assert.Equal(t, "Mohamed Samy", doc.Profile.Name)
	assert.NotNil(t, doc.Hero)
}

func TestGetPortfolio_FallsBackToDefaultsOnStoreError(t *testing.T) {
	repo := newFakeRepo()
	repo.getErr = errors.New("connection refused")
	router := newTestRouter(repo, &fakeBlob{})

	rr := doJSON(t, router, http.MethodGet, "/api/portfolio", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "defaults", rr.Header().Get("X-Portfolio-Source"))

	var doc portfolio.Document
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	require.NotNil(t, doc.Profile)
	assert.Equal(t, "Mohamed Samy", doc.Profile.Name)
}

func TestSaveProfile_RejectsInvalidBody(t *testing.T) {
	router := newTestRouter(newFakeRepo(), &fakeBlob{})

	rr := doJSON(t, router, http.MethodPost, "/api/admin/profile", gin.H{"title": "no name"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSaveProfile_PersistsSection(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo, &fakeBlob{})

	body := gin.H{
		"name":      "Mohamed Samy",
		"title":     "Data Analyst",
		"avatarUrl": "https://cdn.test/avatar.png",
		"links":     gin.H{"github": "https://github.com/msamy"},
	}
	rr := doJSON(t, router, http.MethodPost, "/api/admin/profile", body)
	require.Equal(t, http.StatusOK, rr.Code)

	stored, ok := repo.sections[portfolio.SectionProfile].(portfolio.Profile)
	require.True(t, ok)
	assert.Equal(t, "Data Analyst", stored.Title)
	assert.Equal(t, "https://cdn.test/avatar.png", stored.AvatarURL)
	assert.Equal(t, "https://github.com/msamy", stored.Links.GitHub)
}

func TestSaveSkills_ParsesSoftText(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo, &fakeBlob{})

	body := gin.H{
		"technical": gin.H{"BI": []string{" Power BI ", "", "Tableau"}},
		"softText":  "Communication | Clear reporting\nTeamwork | Cross-functional\n",
	}
	rr := doJSON(t, router, http.MethodPost, "/api/admin/skills", body)
	require.Equal(t, http.StatusOK, rr.Code)

	stored, ok := repo.sections[portfolio.SectionSkills].(portfolio.Skills)
	require.True(t, ok)
	assert.Equal(t, []string{"Power BI", "Tableau"}, stored.Technical["BI"])
	require.Len(t, stored.Soft, 2)
	assert.Equal(t, "Communication", stored.Soft[0].Title)
	assert.Equal(t, "Clear reporting", stored.Soft[0].Desc)
}

func TestSaveHomepage_WritesThreeSections(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo, &fakeBlob{})

	body := gin.H{
		"hero": gin.H{"subtitle": "Hi", "title": "Data Analyst", "description": "desc"},
		"about": gin.H{
			"title":    "About Me",
			"tagsText": "SQL, Python, , Excel",
		},
		"timelineExperience": gin.H{
			"title":      "Analyst",
			"company":    "Acme",
			"pointsText": "Built dashboards\n\nAutomated reports",
		},
	}
	rr := doJSON(t, router, http.MethodPost, "/api/admin/homepage", body)
	require.Equal(t, http.StatusOK, rr.Code)

	hero, ok := repo.sections[portfolio.SectionHero].(portfolio.Hero)
	require.True(t, ok)
	assert.Equal(t, "Data Analyst", hero.Title)

	about, ok := repo.sections[portfolio.SectionAbout].(portfolio.About)
	require.True(t, ok)
	assert.Equal(t, []string{"SQL", "Python", "Excel"}, about.Tags)

	timeline, ok := repo.sections[portfolio.SectionTimelineExperience].(portfolio.TimelineExperience)
	require.True(t, ok)
	assert.Equal(t, []string{"Built dashboards", "Automated reports"}, timeline.Points)
}

func TestSaveHomepage_PersistFailureIsBadGateway(t *testing.T) {
	repo := newFakeRepo()
	repo.upsertErr = errors.New("deadline exceeded")
	router := newTestRouter(repo, &fakeBlob{})

	body := gin.H{"hero": gin.H{"title": "x"}, "about": gin.H{}, "timelineExperience": gin.H{}}
	rr := doJSON(t, router, http.MethodPost, "/api/admin/homepage", body)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestSaveProjects_UploadsStagedImages(t *testing.T) {
	repo := newFakeRepo()
	blob := &fakeBlob{}
	router := newTestRouter(repo, blob)

	body := gin.H{
		"projects": []gin.H{
			{
				"title": "Sales Dashboard",
				"images": []gin.H{
					{"name": "chart.png", "data": []byte("png-bytes")},
				},
			},
		},
	}
	rr := doJSON(t, router, http.MethodPost, "/api/admin/projects", body)
	require.Equal(t, http.StatusOK, rr.Code)

	stored, ok := repo.sections[portfolio.SectionProjects].([]portfolio.Project)
	require.True(t, ok)
	require.Len(t, stored, 1)
	assert.NotEmpty(t, stored[0].ID)
	require.Len(t, stored[0].Images, 1)
	assert.Equal(t, "https://cdn.test/img-1.png", stored[0].Images[0])
	assert.Empty(t, blob.deletes)
}

func TestUploadImage_MultipartRoundTrip(t *testing.T) {
	blob := &fakeBlob{}
	router := newTestRouter(newFakeRepo(), blob)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "avatar.png")
	require.NoError(t, err)
	fw.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "https://cdn.test/img-1.png", resp["url"])

	rrDel := doJSON(t, router, http.MethodDelete, "/api/admin/upload?url="+resp["url"], nil)
	require.Equal(t, http.StatusOK, rrDel.Code)
	assert.Equal(t, []string{resp["url"]}, blob.deletes)
}

func TestDeleteImage_RequiresURL(t *testing.T) {
	router := newTestRouter(newFakeRepo(), &fakeBlob{})

	rr := doJSON(t, router, http.MethodDelete, "/api/admin/upload", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
