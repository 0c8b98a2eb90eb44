package course

import "strings"

// Course is one entry of the fixed course catalog.
type Course struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Topics     []string `json:"topics"`
	VideoQuery string   `json:"video_query"`
}

const (
	DefaultCourse     = "computer-science"
	DefaultVideoQuery = "educational tutorials"
)

var catalog = []Course{
	{
		Key:        "computer-science",
		Name:       "Computer Science",
		Topics:     []string{"programming-basics", "data-structures", "algorithms", "databases", "operating-systems", "computer-networks"},
		VideoQuery: "computer science programming tutorials",
	},
	{
		Key:        "mathematics",
		Name:       "Mathematics",
		Topics:     []string{"algebra", "calculus", "linear-algebra", "probability", "statistics", "geometry"},
		VideoQuery: "mathematics algebra calculus tutorials",
	},
	{
		Key:        "physics",
		Name:       "Physics",
		Topics:     []string{"mechanics", "thermodynamics", "electromagnetism", "optics", "quantum-physics"},
		VideoQuery: "physics mechanics thermodynamics tutorials",
	},
	{
		Key:        "chemistry",
		Name:       "Chemistry",
		Topics:     []string{"atomic-structure", "chemical-bonding", "organic-chemistry", "inorganic-chemistry", "thermochemistry"},
		VideoQuery: "chemistry organic inorganic tutorials",
	},
	{
		Key:        "biology",
		Name:       "Biology",
		Topics:     []string{"cell-biology", "genetics", "evolution", "ecology", "human-physiology"},
		VideoQuery: "biology cell genetics tutorials",
	},
	{
		Key:        "english",
		Name:       "English",
		Topics:     []string{"grammar", "vocabulary", "literature", "writing", "poetry"},
		VideoQuery: "english literature grammar tutorials",
	},
	{
		Key:        "history",
		Name:       "History",
		Topics:     []string{"ancient-history", "medieval-history", "modern-history", "world-wars", "civilizations"},
		VideoQuery: "world history ancient modern tutorials",
	},
}

// Catalog returns a copy of every known course in display order.
func Catalog() []Course {
	out := make([]Course, len(catalog))
	for i, c := range catalog {
		c.Topics = append([]string(nil), c.Topics...)
		out[i] = c
	}
	return out
}

func Lookup(key string) (Course, bool) {
	key = NormalizeKey(key)
	for _, c := range catalog {
		if c.Key == key {
			c.Topics = append([]string(nil), c.Topics...)
			return c, true
		}
	}
	return Course{}, false
}

// HasTopic reports whether topic (normalized) belongs to the course.
func (c Course) HasTopic(topic string) bool {
	topic = NormalizeKey(topic)
	for _, t := range c.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// VideoQueryFor maps a course to its search query, defaulting for unknown keys.
func VideoQueryFor(key string) string {
	if c, ok := Lookup(key); ok {
		return c.VideoQuery
	}
	return DefaultVideoQuery
}

// NormalizeKey lowercases and replaces spaces with hyphens.
func NormalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
