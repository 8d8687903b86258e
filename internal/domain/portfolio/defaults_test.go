package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_NilDocument(t *testing.T) {
	doc := ApplyDefaults(nil)

	require.NotNil(t, doc.Profile)
	assert.Equal(t, "Mohamed Samy", doc.Profile.Name)
	assert.Equal(t, "#3b82f6", doc.Profile.AccentColor)

	require.NotNil(t, doc.Hero)
	assert.Equal(t, "Data Analyst Portfolio", doc.Hero.Subtitle)

	require.NotNil(t, doc.Skills)
	assert.Contains(t, doc.Skills.Technical, "analysis")
	assert.Contains(t, doc.Skills.Technical, "programming")
	assert.Contains(t, doc.Skills.Technical, "viz")

	assert.NotNil(t, doc.Projects)
	assert.Empty(t, doc.Projects)
	assert.NotNil(t, doc.Services)
	assert.NotNil(t, doc.Courses)
}

func TestApplyDefaults_Stable(t *testing.T) {
	first := ApplyDefaults(nil)
	second := ApplyDefaults(nil)

	assert.Equal(t, first, second, "defaults must be identical across calls")
}

func TestApplyDefaults_KeepsStoredSections(t *testing.T) {
	stored := &Document{
		Hero: &Hero{Subtitle: "custom", Title: "CUSTOM", Description: "d"},
		Projects: []Project{
			{ID: "p1", Title: "Dashboard", Images: []string{"https://x/a.png"}},
		},
	}

	doc := ApplyDefaults(stored)

	assert.Equal(t, "custom", doc.Hero.Subtitle)
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, "p1", doc.Projects[0].ID)

	// absent siblings still get full defaults
	require.NotNil(t, doc.About)
	assert.Equal(t, "ABOUT ME", doc.About.Title)
	require.NotNil(t, doc.TimelineExperience)
	assert.Equal(t, "Self-Employed / Remote", doc.TimelineExperience.Company)
}

func TestSection_Column(t *testing.T) {
	col, err := SectionTimelineExperience.Column()
	require.NoError(t, err)
	assert.Equal(t, "timeline_experience", col)

	_, err = Section("bogus").Column()
	assert.ErrorIs(t, err, ErrUnknownSection)

	assert.True(t, SectionProjects.Valid())
	assert.False(t, Section("nope").Valid())
	assert.Len(t, Sections(), 11)
}
