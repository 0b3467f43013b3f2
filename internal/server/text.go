package server

var (
	SiteTitle = `Portfolio`

	ProjectsHeading = `PROJECTS`
	SkillsHeading   = `Skills`

	ProjectsEmpty = `No projects to show yet.`
	SkillsEmpty   = `No skills to show yet.`

	ProjectsUnavailable = `Projects could not be loaded right now. Please try again in a moment.`
	SkillsUnavailable   = `Skills could not be loaded right now. Please try again in a moment.`

	ProjectMissing = `That project does not exist or is no longer listed.`
)
