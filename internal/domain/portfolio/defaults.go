package portfolio

// Default section values. Absence of a section in storage is never an error:
// the loader substitutes the matching value below, always a complete section,
// never a partial one. Edits start from these on a fresh database.

func DefaultProfile() *Profile {
	return &Profile{
		Name:        "Mohamed Samy",
		Title:       "Data Analyst",
		AccentColor: "#3b82f6",
		Links:       SocialLinks{},
	}
}

func DefaultHero() *Hero {
	return &Hero{
		Subtitle:    "Data Analyst Portfolio",
		Title:       "MOHAMED SAMY",
		Description: "Transforming raw data into actionable insights through Python, SQL, and Visualization.",
	}
}

func DefaultAbout() *About {
	return &About{
		Title:       "ABOUT ME",
		P1Start:     "I am an",
		P1Highlight: "Intern Data Analyst",
		P1End:       "with a strong foundation in data analysis and visualization. I specialize in turning complex datasets into clear narratives.",
		P2:          "Skilled in Python, SQL, Excel, Power BI, and Tableau, with hands-on experience in data cleaning, exploratory data analysis (EDA), and dashboard creation.",
		Tags:        []string{"Motivated", "Fast Learner", "Problem Solver"},
	}
}

func DefaultTimelineExperience() *TimelineExperience {
	return &TimelineExperience{
		Title:   "Freelance Data Analyst",
		Date:    "Jan 2020 – Present",
		Company: "Self-Employed / Remote",
		Points:  []string{},
	}
}

func DefaultSkills() *Skills {
	return &Skills{
		Technical: map[string][]string{
			"analysis":    {"Data Cleaning", "EDA", "Web Scraping", "Pattern Recognition"},
			"programming": {"Python (Pandas, NumPy)", "SQL"},
			"viz":         {"Power BI", "Tableau", "Advanced Excel", "MS Office"},
		},
		Soft: []SoftSkill{},
	}
}

func DefaultContact() *Contact {
	return &Contact{}
}

// ApplyDefaults fills every absent section with its default value. The input
// is mutated and returned; passing nil yields an all-default document.
func ApplyDefaults(doc *Document) *Document {
	if doc == nil {
		doc = &Document{}
	}
	if doc.Profile == nil {
		doc.Profile = DefaultProfile()
	}
	if doc.Projects == nil {
		doc.Projects = []Project{}
	}
	if doc.Experiences == nil {
		doc.Experiences = []Experience{}
	}
	if doc.Hero == nil {
		doc.Hero = DefaultHero()
	}
	if doc.About == nil {
		doc.About = DefaultAbout()
	}
	if doc.Education == nil {
		doc.Education = []EducationItem{}
	}
	if doc.TimelineExperience == nil {
		doc.TimelineExperience = DefaultTimelineExperience()
	}
	if doc.Skills == nil {
		doc.Skills = DefaultSkills()
	}
	if doc.Services == nil {
		doc.Services = []ServiceItem{}
	}
	if doc.Contact == nil {
		doc.Contact = DefaultContact()
	}
	if doc.Courses == nil {
		doc.Courses = []CourseItem{}
	}
	return doc
}
