package seeder

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Skills  []CatalogSkill  `yaml:"skills"`
	Courses []CatalogCourse `yaml:"courses"`
	Demo    *CatalogDemo    `yaml:"demo"`
}

type CatalogSkill struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type CatalogCourse struct {
	Title         string            `yaml:"title"`
	Provider      string            `yaml:"provider"`
	URL           string            `yaml:"url"`
	DurationHours int               `yaml:"duration_hours"`
	Level         string            `yaml:"level"`
	Description   string            `yaml:"description"`
	Skills        []CatalogSkillRef `yaml:"skills"`
}

type CatalogSkillRef struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type CatalogDemo struct {
	Employer struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
	} `yaml:"employer"`
	Company struct {
		CompanyName string `yaml:"company_name"`
		Industry    string `yaml:"industry"`
		Size        string `yaml:"size"`
		Website     string `yaml:"website"`
		Location    string `yaml:"location"`
		Description string `yaml:"description"`
	} `yaml:"company"`
	Jobs []CatalogJob `yaml:"jobs"`
}

type CatalogJob struct {
	Title       string               `yaml:"title"`
	Location    string               `yaml:"location"`
	Salary      string               `yaml:"salary"`
	IsRemote    bool                 `yaml:"is_remote"`
	Description string               `yaml:"description"`
	Skills      []CatalogRequirement `yaml:"skills"`
}

// CatalogRequirement leaves RequiredLevel nil when the posting states none.
type CatalogRequirement struct {
	Name          string `yaml:"name"`
	RequiredLevel *int   `yaml:"required_level"`
	Preferred     bool   `yaml:"preferred"`
}

func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

func ParseCatalog(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c Catalog) validate() error {
	known := map[string]struct{}{}
	for _, s := range c.Skills {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" {
			return fmt.Errorf("catalog: skill with empty name")
		}
		if _, dup := known[name]; dup {
			return fmt.Errorf("catalog: duplicate skill %q", s.Name)
		}
		known[name] = struct{}{}
	}

	checkRef := func(owner, name string) error {
		if _, ok := known[strings.ToLower(strings.TrimSpace(name))]; !ok {
			return fmt.Errorf("catalog: %s references unknown skill %q", owner, name)
		}
		return nil
	}

	for _, course := range c.Courses {
		if strings.TrimSpace(course.Title) == "" {
			return fmt.Errorf("catalog: course with empty title")
		}
		for _, ref := range course.Skills {
			if err := checkRef("course "+course.Title, ref.Name); err != nil {
				return err
			}
			if ref.Level < 1 || ref.Level > 5 {
				return fmt.Errorf("catalog: course %q skill %q level out of range", course.Title, ref.Name)
			}
		}
	}

	if c.Demo != nil {
		for _, job := range c.Demo.Jobs {
			for _, req := range job.Skills {
				if err := checkRef("job "+job.Title, req.Name); err != nil {
					return err
				}
				if req.RequiredLevel != nil && (*req.RequiredLevel < 1 || *req.RequiredLevel > 5) {
					return fmt.Errorf("catalog: job %q skill %q level out of range", job.Title, req.Name)
				}
			}
		}
	}
	return nil
}
