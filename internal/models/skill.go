package models

// Skill represents a single skill with its icon and proficiency score.
type Skill struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Proficiency float64 `json:"proficiency"`
	// Category is the skill's domain when the backend provides one.
	Category string `json:"category,omitempty"`
	SVG      *Image `json:"svg,omitempty"`
}

// IconURL returns the icon image URL, or "" when the skill has none.
func (s Skill) IconURL() string {
	if s.SVG == nil {
		return ""
	}
	return s.SVG.URL
}

// SkillList wraps the array of skills
type SkillList struct {
	Success bool    `json:"success,omitempty"`
	Message string  `json:"message,omitempty"`
	Skills  []Skill `json:"skills"`
}
