package importer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Target describes one employer careers page.
type Target struct {
	CompanyID        uuid.UUID `yaml:"company_id"`
	ListURL          string    `yaml:"list_url"`
	LinkSelector     string    `yaml:"link_selector"`
	TitleSelector    string    `yaml:"title_selector"`
	LocationSelector string    `yaml:"location_selector"`
	BodySelector     string    `yaml:"body_selector"`
	Headless         bool      `yaml:"headless"`
}

type targetsFile struct {
	Targets []Target `yaml:"targets"`
}

var ErrInvalidTarget = errors.New("invalid import target")

func LoadTargets(path string) ([]Target, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTargets(b)
}

func ParseTargets(b []byte) ([]Target, error) {
	var f targetsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse targets: %w", err)
	}
	out := make([]Target, 0, len(f.Targets))
	for i, t := range f.Targets {
		t = t.withDefaults()
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("target %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (t Target) withDefaults() Target {
	t.ListURL = strings.TrimSpace(t.ListURL)
	if strings.TrimSpace(t.LinkSelector) == "" {
		t.LinkSelector = "a"
	}
	if strings.TrimSpace(t.TitleSelector) == "" {
		t.TitleSelector = "title"
	}
	if strings.TrimSpace(t.BodySelector) == "" {
		t.BodySelector = "body"
	}
	return t
}

func (t Target) Validate() error {
	if t.CompanyID == uuid.Nil {
		return fmt.Errorf("%w: company_id is required", ErrInvalidTarget)
	}
	if t.ListURL == "" {
		return fmt.Errorf("%w: list_url is required", ErrInvalidTarget)
	}
	if !strings.HasPrefix(t.ListURL, "http://") && !strings.HasPrefix(t.ListURL, "https://") {
		return fmt.Errorf("%w: list_url must be absolute", ErrInvalidTarget)
	}
	return nil
}
