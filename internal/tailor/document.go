package tailor

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"resume-optimizer/internal/experiences"
	"resume-optimizer/internal/profiles"
)

// Document is the career file read by the CLI.
type Document struct {
	Profile     profiles.Profile `yaml:"profile"`
	Experiences []ExperienceDoc  `yaml:"experiences"`
}

// ExperienceDoc is one position and its bullet pool, listed most recent first.
type ExperienceDoc struct {
	Company   string   `yaml:"company"`
	Title     string   `yaml:"title"`
	StartDate string   `yaml:"start_date"`
	EndDate   string   `yaml:"end_date"`
	IsCurrent bool     `yaml:"is_current"`
	Bullets   []string `yaml:"bullets"`
}

func (e ExperienceDoc) input() experiences.ExperienceInput {
	return experiences.ExperienceInput{
		Company:   e.Company,
		Title:     e.Title,
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
		IsCurrent: e.IsCurrent,
	}
}

// LoadDocument reads and decodes a YAML career file.
func LoadDocument(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, errors.Wrapf(err, "read %s", path)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Document{}, errors.Wrapf(err, "decode %s", path)
	}
	if len(doc.Experiences) == 0 {
		return Document{}, errors.Errorf("%s lists no experiences", path)
	}
	return doc, nil
}

// ReadBullets reads one bullet per non-blank line.
func ReadBullets(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	var bullets []string
	for _, line := range experiences.SplitLines(string(raw)) {
		if line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "- ")); line != "" {
			bullets = append(bullets, line)
		}
	}
	if len(bullets) == 0 {
		return nil, errors.Errorf("%s contains no bullets", path)
	}
	return bullets, nil
}
