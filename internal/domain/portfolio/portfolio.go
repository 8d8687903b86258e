package portfolio

import (
	"context"
	"errors"
)

// DocumentKey is the identifier of the single portfolio document. The whole
// site is one record; sections are written back independently.
const DocumentKey = "main"

var ErrUnknownSection = errors.New("unknown portfolio section")

type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Tableau  string `json:"tableau,omitempty"`
	PowerBI  string `json:"powerbi,omitempty"`
}

type Profile struct {
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Bio         string      `json:"bio,omitempty"`
	Email       string      `json:"email,omitempty"`
	Phone       string      `json:"phone,omitempty"`
	AvatarURL   string      `json:"avatarUrl,omitempty"`
	AccentColor string      `json:"accentColor,omitempty"`
	Links       SocialLinks `json:"links"`
}

type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Link        string   `json:"link,omitempty"`
	Images      []string `json:"images"`
}

type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Position    string `json:"position,omitempty"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

type Hero struct {
	Subtitle    string `json:"subtitle"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type About struct {
	Title       string   `json:"title"`
	P1Start     string   `json:"p1_start"`
	P1Highlight string   `json:"p1_highlight"`
	P1End       string   `json:"p1_end"`
	P2          string   `json:"p2"`
	Tags        []string `json:"tags"`
}

type EducationItem struct {
	ID     string `json:"id"`
	Degree string `json:"degree"`
	School string `json:"school"`
	Date   string `json:"date"`
	Desc   string `json:"desc"`
}

type TimelineExperience struct {
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Company string   `json:"company"`
	Points  []string `json:"points"`
}

type SoftSkill struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

type Skills struct {
	Technical map[string][]string `json:"technical"`
	Soft      []SoftSkill         `json:"soft"`
}

type ServiceItem struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Icon  string `json:"icon"`
}

type Contact struct {
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type CourseItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Platform string `json:"platform,omitempty"`
	Date     string `json:"date,omitempty"`
	Desc     string `json:"desc,omitempty"`
	Link     string `json:"link,omitempty"`
}

// Document is the composite portfolio record. Pointer and nil-slice fields
// mean "section absent in storage"; ApplyDefaults substitutes a complete
// default value for every absent section, so callers past the load boundary
// never see a nil section.
type Document struct {
	Profile            *Profile            `json:"profile,omitempty"`
	Projects           []Project           `json:"projects,omitempty"`
	Experiences        []Experience        `json:"experiences,omitempty"`
	Hero               *Hero               `json:"hero,omitempty"`
	About              *About              `json:"about,omitempty"`
	Education          []EducationItem     `json:"education,omitempty"`
	TimelineExperience *TimelineExperience `json:"timelineExperience,omitempty"`
	Skills             *Skills             `json:"skills,omitempty"`
	Services           []ServiceItem       `json:"services,omitempty"`
	Contact            *Contact            `json:"contact,omitempty"`
	Courses            []CourseItem        `json:"courses,omitempty"`
}

// Section names a independently saveable subset of the document. Values
// double as JSON field names; storage column names come from the registry.
type Section string

const (
	SectionProfile            Section = "profile"
	SectionProjects           Section = "projects"
	SectionExperiences        Section = "experiences"
	SectionHero               Section = "hero"
	SectionAbout              Section = "about"
	SectionEducation          Section = "education"
	SectionTimelineExperience Section = "timelineExperience"
	SectionSkills             Section = "skills"
	SectionServices           Section = "services"
	SectionContact            Section = "contact"
	SectionCourses            Section = "courses"
)

var sectionColumns = map[Section]string{
	SectionProfile:            "profile",
	SectionProjects:           "projects",
	SectionExperiences:        "experiences",
	SectionHero:               "hero",
	SectionAbout:              "about",
	SectionEducation:          "education",
	SectionTimelineExperience: "timeline_experience",
	SectionSkills:             "skills",
	SectionServices:           "services",
	SectionContact:            "contact",
	SectionCourses:            "courses",
}

var sectionOrder = []Section{
	SectionProfile,
	SectionProjects,
	SectionExperiences,
	SectionHero,
	SectionAbout,
	SectionEducation,
	SectionTimelineExperience,
	SectionSkills,
	SectionServices,
	SectionContact,
	SectionCourses,
}

func (s Section) Valid() bool {
	_, ok := sectionColumns[s]
	return ok
}

// Column returns the storage column backing the section.
func (s Section) Column() (string, error) {
	col, ok := sectionColumns[s]
	if !ok {
		return "", ErrUnknownSection
	}
	return col, nil
}

// Sections lists every section in document order.
func Sections() []Section {
	out := make([]Section, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// Repository is the document-store boundary: read the whole record, write one
// section at a time. UpsertSection must create the record when it does not
// exist yet and must leave every other section untouched.
type Repository interface {
	Get(ctx context.Context) (*Document, error)
	UpsertSection(ctx context.Context, section Section, value any) error
	UpsertSections(ctx context.Context, values map[Section]any) error
}
