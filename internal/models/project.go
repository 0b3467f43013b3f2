package models

// Image is a media reference hosted by the portfolio backend.
type Image struct {
	PublicID string `json:"public_id,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Project represents a portfolio project as served by the backend
type Project struct {
	ID            string `json:"_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	GitRepoLink   string `json:"gitRepoLink,omitempty"`
	ProjectLink   string `json:"projectLink,omitempty"`
	Technologies  string `json:"technologies,omitempty"`
	Stack         string `json:"stack,omitempty"`
	Deployed      string `json:"deployed,omitempty"`
	ProjectBanner *Image `json:"projectBanner,omitempty"`
}

// BannerURL returns the banner image URL, or "" when the project has none.
func (p Project) BannerURL() string {
	if p.ProjectBanner == nil {
		return ""
	}
	return p.ProjectBanner.URL
}

// DetailPath is the route of the project's detail page.
func (p Project) DetailPath() string {
	return "/project/" + p.ID
}

// ProjectList wraps the array of projects
type ProjectList struct {
	Success  bool      `json:"success,omitempty"`
	Message  string    `json:"message,omitempty"`
	Projects []Project `json:"projects"`
}
