// Package seed ships the demo workspace fixtures. The content mirrors the
// sample personas and brand assets the dashboard demos with; it is data
// for onboarding and tests, not part of the scoring library.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"brandpulse/internal/services"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtureMethod struct {
	Type             string   `yaml:"type"`
	Status           string   `yaml:"status"`
	Progress         int      `yaml:"progress"`
	CompletedAt      string   `yaml:"completed_at"`
	ParticipantCount int      `yaml:"participant_count"`
	Insights         []string `yaml:"insights"`
}

type fixtureDemographics struct {
	Age          string `yaml:"age"`
	Location     string `yaml:"location"`
	Occupation   string `yaml:"occupation"`
	Education    string `yaml:"education"`
	Income       string `yaml:"income"`
	FamilyStatus string `yaml:"family_status"`
}

type fixturePersona struct {
	Name            string              `yaml:"name"`
	Tagline         string              `yaml:"tagline"`
	Avatar          string              `yaml:"avatar"`
	Demographics    fixtureDemographics `yaml:"demographics"`
	Goals           []string            `yaml:"goals"`
	Frustrations    []string            `yaml:"frustrations"`
	Motivations     []string            `yaml:"motivations"`
	Behaviors       []string            `yaml:"behaviors"`
	Personality     string              `yaml:"personality"`
	Values          []string            `yaml:"values"`
	Interests       []string            `yaml:"interests"`
	Tags            []string            `yaml:"tags"`
	Status          string              `yaml:"status"`
	ResearchMethods []fixtureMethod     `yaml:"research_methods"`
}

type fixtureAsset struct {
	Type            string          `yaml:"type"`
	Title           string          `yaml:"title"`
	Content         string          `yaml:"content"`
	Category        string          `yaml:"category"`
	Description     string          `yaml:"description"`
	Priority        string          `yaml:"priority"`
	IsCritical      bool            `yaml:"is_critical"`
	ResearchMethods []fixtureMethod `yaml:"research_methods"`
}

type fixtureFile struct {
	Personas []fixturePersona `yaml:"personas"`
	Assets   []fixtureAsset   `yaml:"assets"`
}

// FixtureSet holds the demo entities ready to feed through the create
// services, which assign ids and derive coverage and scores.
type FixtureSet struct {
	Personas []*services.Persona
	Assets   []*services.BrandAsset
}

// Fixtures parses the embedded demo data.
func Fixtures() (*FixtureSet, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse seed fixtures: %w", err)
	}
	set := &FixtureSet{}
	for _, fp := range f.Personas {
		methods, err := convertMethods(fp.ResearchMethods)
		if err != nil {
			return nil, fmt.Errorf("persona %q: %w", fp.Name, err)
		}
		set.Personas = append(set.Personas, &services.Persona{
			Name:    fp.Name,
			Tagline: fp.Tagline,
			Avatar:  fp.Avatar,
			Demographics: services.Demographics{
				Age:          fp.Demographics.Age,
				Location:     fp.Demographics.Location,
				Occupation:   fp.Demographics.Occupation,
				Education:    fp.Demographics.Education,
				Income:       fp.Demographics.Income,
				FamilyStatus: fp.Demographics.FamilyStatus,
			},
			Goals:           fp.Goals,
			Frustrations:    fp.Frustrations,
			Motivations:     fp.Motivations,
			Behaviors:       fp.Behaviors,
			Personality:     fp.Personality,
			Values:          fp.Values,
			Interests:       fp.Interests,
			Tags:            fp.Tags,
			Status:          services.PersonaStatus(fp.Status),
			ResearchMethods: methods,
		})
	}
	for _, fa := range f.Assets {
		methods, err := convertMethods(fa.ResearchMethods)
		if err != nil {
			return nil, fmt.Errorf("asset %q: %w", fa.Title, err)
		}
		set.Assets = append(set.Assets, &services.BrandAsset{
			Type:            fa.Type,
			Title:           fa.Title,
			Content:         fa.Content,
			Category:        fa.Category,
			Description:     fa.Description,
			Priority:        services.AssetPriority(fa.Priority),
			IsCritical:      fa.IsCritical,
			ResearchMethods: methods,
		})
	}
	return set, nil
}

func convertMethods(in []fixtureMethod) ([]services.ResearchMethod, error) {
	out := make([]services.ResearchMethod, 0, len(in))
	for _, fm := range in {
		m := services.ResearchMethod{
			Type:             fm.Type,
			Status:           services.MigrateMethodStatus(fm.Status),
			Progress:         fm.Progress,
			ParticipantCount: fm.ParticipantCount,
			Insights:         fm.Insights,
		}
		if fm.CompletedAt != "" {
			t, err := time.Parse("2006-01-02", fm.CompletedAt)
			if err != nil {
				return nil, fmt.Errorf("method %s: bad completed_at %q: %w", fm.Type, fm.CompletedAt, err)
			}
			m.CompletedAt = &t
		}
		out = append(out, m)
	}
	return out, nil
}
