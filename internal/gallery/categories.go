package gallery

import (
	"strings"

	"github.com/Zachkp/showcase/internal/models"
)

// Category keys in display order.
const (
	CoreProgramming = "coreProgramming"
	IoT             = "iot"
	Frontend        = "frontend"
	Backend         = "backend"
	Database        = "database"
	AppDevelopment  = "appDevelopment"
	Others          = "others"
)

// Category is a fixed skill grouping shown as one block in the skill gallery.
type Category struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Categories is the fixed display order of skill buckets.
var Categories = []Category{
	{Key: CoreProgramming, Title: "Core Programming", Icon: "fa-code"},
	{Key: IoT, Title: "IoT|AI|ML|DS", Icon: "fa-microchip"},
	{Key: Frontend, Title: "Front-end", Icon: "fa-desktop"},
	{Key: Backend, Title: "Back-end", Icon: "fa-server"},
	{Key: Database, Title: "Database", Icon: "fa-database"},
	{Key: AppDevelopment, Title: "App Development", Icon: "fa-mobile-screen"},
	{Key: Others, Title: "Others", Icon: "fa-circle-question"},
}

// IsCategory reports whether key names one of the fixed categories.
func IsCategory(key string) bool {
	return categoryIndex(key) >= 0
}

func categoryIndex(key string) int {
	for i, c := range Categories {
		if c.Key == key {
			return i
		}
	}
	return -1
}

// Bucket is a category together with the skills assigned to it.
type Bucket struct {
	Category
	Skills []models.Skill `json:"skills"`
}

// Empty reports whether the bucket holds no skills.
func (b Bucket) Empty() bool { return len(b.Skills) == 0 }

// Buckets is the result of categorizing a skill list. It always holds one
// bucket per entry of Categories, in the same order.
type Buckets struct {
	Buckets []Bucket `json:"buckets"`
	// Inferred counts skills placed by proficiency range rather than by an
	// explicit or configured category.
	Inferred int `json:"inferred"`
}

// NonEmpty returns the buckets that hold at least one skill.
func (b Buckets) NonEmpty() []Bucket {
	var out []Bucket
	for _, bucket := range b.Buckets {
		if !bucket.Empty() {
			out = append(out, bucket)
		}
	}
	return out
}

// Get returns the bucket with the given key.
func (b Buckets) Get(key string) (Bucket, bool) {
	i := categoryIndex(key)
	if i < 0 || i >= len(b.Buckets) {
		return Bucket{}, false
	}
	return b.Buckets[i], true
}

// Total is the number of skills across all buckets.
func (b Buckets) Total() int {
	n := 0
	for _, bucket := range b.Buckets {
		n += len(bucket.Skills)
	}
	return n
}

// CategoryForProficiency maps a proficiency score onto a category key.
// The ranges stand in for a domain field the skill records lack.
func CategoryForProficiency(p float64) string {
	switch {
	case p >= 80 && p <= 90:
		return CoreProgramming
	case p >= 70 && p < 80:
		return IoT
	case p >= 60 && p < 70:
		return Frontend
	case p >= 50 && p < 60:
		return Backend
	case p >= 40 && p < 50:
		return Database
	case p >= 30 && p < 40:
		return AppDevelopment
	default:
		return Others
	}
}

// Categorize partitions skills into the fixed buckets. A skill's own category
// wins, then the overrides, then its proficiency range. overrides may be nil.
func Categorize(skills []models.Skill, overrides *Overrides) Buckets {
	out := Buckets{Buckets: make([]Bucket, len(Categories))}
	for i, c := range Categories {
		out.Buckets[i].Category = c
	}

	for _, s := range skills {
		key := strings.TrimSpace(s.Category)
		if !IsCategory(key) {
			key = overrides.Lookup(s.Title)
		}
		if key == "" {
			key = CategoryForProficiency(s.Proficiency)
			out.Inferred++
		}
		i := categoryIndex(key)
		out.Buckets[i].Skills = append(out.Buckets[i].Skills, s)
	}
	return out
}
