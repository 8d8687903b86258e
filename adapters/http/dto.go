package http

import (
	"github.com/msamy/portfolio-api/internal/application/editor"
	portfolioUC "github.com/msamy/portfolio-api/internal/application/usecase/portfolio"
	"github.com/msamy/portfolio-api/internal/domain/portfolio"
)

// Profile DTOs

type SocialLinksDTO struct {
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Tableau  string `json:"tableau"`
	PowerBI  string `json:"powerbi"`
}

// SaveProfileRequest carries the profile section plus an optional staged
// avatar. avatarData is base64 in the JSON body; when present it wins over
// avatarUrl.
type SaveProfileRequest struct {
	Name        string         `json:"name" binding:"required"`
	Title       string         `json:"title"`
	Bio         string         `json:"bio"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	AvatarURL   string         `json:"avatarUrl"`
	AvatarData  []byte         `json:"avatarData"`
	AvatarName  string         `json:"avatarName"`
	AccentColor string         `json:"accentColor"`
	Links       SocialLinksDTO `json:"links"`
}

func (r *SaveProfileRequest) ToInput() portfolioUC.SaveProfileInput {
	return portfolioUC.SaveProfileInput{
		Profile: portfolio.Profile{
			Name:        r.Name,
			Title:       r.Title,
			Bio:         r.Bio,
			Email:       r.Email,
			Phone:       r.Phone,
			AvatarURL:   r.AvatarURL,
			AccentColor: r.AccentColor,
			Links: portfolio.SocialLinks{
				LinkedIn: r.Links.LinkedIn,
				GitHub:   r.Links.GitHub,
				Tableau:  r.Links.Tableau,
				PowerBI:  r.Links.PowerBI,
			},
		},
		AvatarData: r.AvatarData,
		AvatarName: r.AvatarName,
	}
}

// Project DTOs

// ProjectImageDTO is one image slot: a durable url, or base64 data still
// to be uploaded. Never both.
type ProjectImageDTO struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Data []byte `json:"data,omitempty"`
}

type ProjectDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	Link        string            `json:"link"`
	Images      []ProjectImageDTO `json:"images"`
}

type SaveProjectsRequest struct {
	Projects []ProjectDTO `json:"projects"`
}

func (r *SaveProjectsRequest) ToInput() portfolioUC.SaveProjectsInput {
	projects := make([]portfolioUC.ProjectInput, len(r.Projects))
	for i, p := range r.Projects {
		images := make([]portfolioUC.ImageInput, len(p.Images))
		for j, img := range p.Images {
			images[j] = portfolioUC.ImageInput{
				URL:  img.URL,
				Name: img.Name,
				Data: img.Data,
			}
		}
		projects[i] = portfolioUC.ProjectInput{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Link:        p.Link,
			Images:      images,
		}
	}
	return portfolioUC.SaveProjectsInput{Projects: projects}
}

// Plain section requests. The body is the full section value; the save
// replaces whatever was stored.

type SaveExperiencesRequest struct {
	Experiences []portfolio.Experience `json:"experiences" binding:"required"`
}

type SaveEducationRequest struct {
	Education []portfolio.EducationItem `json:"education" binding:"required"`
}

type SaveServicesRequest struct {
	Services []portfolio.ServiceItem `json:"services" binding:"required"`
}

type SaveContactRequest struct {
	Contact portfolio.Contact `json:"contact"`
}

type SaveCoursesRequest struct {
	Courses []portfolio.CourseItem `json:"courses" binding:"required"`
}

// Homepage DTOs: hero, about and the timeline go out in one payload, the
// way the homepage is edited. Free-text variants (tagsText, pointsText)
// take precedence over the pre-split lists.

type AboutDTO struct {
	Title       string   `json:"title"`
	P1Start     string   `json:"p1_start"`
	P1Highlight string   `json:"p1_highlight"`
	P1End       string   `json:"p1_end"`
	P2          string   `json:"p2"`
	Tags        []string `json:"tags"`
	TagsText    string   `json:"tagsText,omitempty"`
}

func (a *AboutDTO) ToDomain() portfolio.About {
	tags := editor.NormalizeList(a.Tags)
	if a.TagsText != "" {
		tags = editor.SplitList(a.TagsText)
	}
	return portfolio.About{
		Title:       a.Title,
		P1Start:     a.P1Start,
		P1Highlight: a.P1Highlight,
		P1End:       a.P1End,
		P2:          a.P2,
		Tags:        tags,
	}
}

type TimelineExperienceDTO struct {
	Title      string   `json:"title"`
	Date       string   `json:"date"`
	Company    string   `json:"company"`
	Points     []string `json:"points"`
	PointsText string   `json:"pointsText,omitempty"`
}

func (t *TimelineExperienceDTO) ToDomain() portfolio.TimelineExperience {
	points := editor.NormalizeList(t.Points)
	if t.PointsText != "" {
		points = editor.SplitLines(t.PointsText)
	}
	return portfolio.TimelineExperience{
		Title:   t.Title,
		Date:    t.Date,
		Company: t.Company,
		Points:  points,
	}
}

type SaveHomepageRequest struct {
	Hero               portfolio.Hero        `json:"hero"`
	About              AboutDTO              `json:"about"`
	TimelineExperience TimelineExperienceDTO `json:"timelineExperience"`
}

// Skills DTOs

type SaveSkillsRequest struct {
	Technical map[string][]string   `json:"technical"`
	Soft      []portfolio.SoftSkill `json:"soft"`
	// SoftText is the editable "title | desc" per line form; when set it
	// replaces Soft.
	SoftText string `json:"softText,omitempty"`
}

func (r *SaveSkillsRequest) ToDomain() portfolio.Skills {
	technical := make(map[string][]string, len(r.Technical))
	for category, items := range r.Technical {
		technical[category] = editor.NormalizeList(items)
	}
	soft := r.Soft
	if r.SoftText != "" {
		soft = editor.ParseSoftSkills(r.SoftText)
	}
	if soft == nil {
		soft = []portfolio.SoftSkill{}
	}
	return portfolio.Skills{
		Technical: technical,
		Soft:      soft,
	}
}
