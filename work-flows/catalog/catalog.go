package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

var ErrUnknownSubject = errors.New("unknown subject")
var ErrUnknownLesson = errors.New("unknown lesson")

type Subject struct {
	Name    string   `yaml:"name" json:"name"`
	Icon    string   `yaml:"icon" json:"icon"`
	Lessons []string `yaml:"lessons" json:"lessons"`
}

// Catalog holds the static subject, topic and slug tables. It is read-only
// once loaded and safe to share between sessions.
type Catalog struct {
	Subjects     []Subject         `yaml:"subjects" json:"subjects"`
	LessonTopics map[string]string `yaml:"lesson_topics" json:"lesson_topics"`
	SubjectSlugs map[string]string `yaml:"subject_slugs" json:"subject_slugs"`
}

// Load parses the catalog compiled into the binary.
func Load() (*Catalog, error) {
	return Parse(catalogYAML)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every lesson has a topic key and every subject has a slug.
func (c *Catalog) Validate() error {
	if len(c.Subjects) == 0 {
		return errors.New("catalog has no subjects")
	}

	seen := make(map[string]bool, len(c.Subjects))
	for _, s := range c.Subjects {
		if strings.TrimSpace(s.Name) == "" {
			return errors.New("catalog has a subject without a name")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate subject '%s'", s.Name)
		}
		seen[s.Name] = true

		if len(s.Lessons) == 0 {
			return fmt.Errorf("subject '%s' has no lessons", s.Name)
		}
		if slug := c.SubjectSlugs[s.Name]; slug == "" {
			return fmt.Errorf("subject '%s' has no slug", s.Name)
		}
		for _, lesson := range s.Lessons {
			if topic := c.LessonTopics[lesson]; topic == "" {
				return fmt.Errorf("lesson '%s' of subject '%s' has no topic", lesson, s.Name)
			}
		}
	}

	return nil
}

func (c *Catalog) SubjectNames() []string {
	names := make([]string, 0, len(c.Subjects))
	for _, s := range c.Subjects {
		names = append(names, s.Name)
	}
	return names
}

func (c *Catalog) Subject(name string) (Subject, bool) {
	for _, s := range c.Subjects {
		if s.Name == name {
			return s, true
		}
	}
	return Subject{}, false
}

// Lessons returns the lessons of a subject in display order, or nil.
func (c *Catalog) Lessons(subject string) []string {
	s, ok := c.Subject(subject)
	if !ok {
		return nil
	}
	return append([]string(nil), s.Lessons...)
}

// Label formats a subject the way the selector shows it: "<icon> <name>".
func (c *Catalog) Label(subject string) string {
	s, ok := c.Subject(subject)
	if !ok || s.Icon == "" {
		return subject
	}
	return s.Icon + " " + s.Name
}

// Contains reports whether lesson is one of subject's lessons.
func (c *Catalog) Contains(subject, lesson string) bool {
	s, ok := c.Subject(subject)
	if !ok {
		return false
	}
	for _, l := range s.Lessons {
		if l == lesson {
			return true
		}
	}
	return false
}

// Default is the selection a fresh session starts with: the first lesson of
// the first subject.
func (c *Catalog) Default() (string, string) {
	first := c.Subjects[0]
	return first.Name, first.Lessons[0]
}

func (c *Catalog) SlugFor(subject string) (string, error) {
	slug, ok := c.SubjectSlugs[subject]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownSubject, subject)
	}
	return slug, nil
}

func (c *Catalog) TopicFor(lesson string) (string, error) {
	topic, ok := c.LessonTopics[lesson]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownLesson, lesson)
	}
	return topic, nil
}
