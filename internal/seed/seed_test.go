package seed

import (
	"testing"

	"brandpulse/internal/services"
)

func TestFixturesParse(t *testing.T) {
	set, err := Fixtures()
	if err != nil {
		t.Fatalf("Fixtures: %v", err)
	}
	if len(set.Personas) != 2 {
		t.Fatalf("personas = %d, want 2", len(set.Personas))
	}
	if len(set.Assets) != 3 {
		t.Fatalf("assets = %d, want 3", len(set.Assets))
	}

	sarah := set.Personas[0]
	if sarah.Name != "Sarah the Startup Founder" {
		t.Fatalf("first persona = %q", sarah.Name)
	}
	if sarah.Status != services.PersonaInResearch {
		t.Fatalf("status = %s", sarah.Status)
	}
	if sarah.Demographics.Occupation != "Founder & CEO" {
		t.Fatalf("demographics = %+v", sarah.Demographics)
	}
	if len(sarah.ResearchMethods) != 4 {
		t.Fatalf("methods = %+v", sarah.ResearchMethods)
	}
}

func TestFixtureMethodsConverted(t *testing.T) {
	set, err := Fixtures()
	if err != nil {
		t.Fatalf("Fixtures: %v", err)
	}

	var interviews *services.ResearchMethod
	for i := range set.Personas[0].ResearchMethods {
		m := &set.Personas[0].ResearchMethods[i]
		if m.Type == services.MethodInterviews {
			interviews = m
		}
	}
	if interviews == nil {
		t.Fatalf("interviews method missing")
	}
	if interviews.Status != services.MethodCompleted {
		t.Fatalf("interviews status = %s", interviews.Status)
	}
	if interviews.CompletedAt == nil {
		t.Fatalf("completed method must carry its timestamp")
	}
	if y, m, d := interviews.CompletedAt.Date(); y != 2025 || m != 1 || d != 15 {
		t.Fatalf("completed_at = %v", interviews.CompletedAt)
	}
	if interviews.ParticipantCount != 8 || len(interviews.Insights) != 3 {
		t.Fatalf("interviews payload = %+v", interviews)
	}
}

func TestFixturesFeedScoring(t *testing.T) {
	set, err := Fixtures()
	if err != nil {
		t.Fatalf("Fixtures: %v", err)
	}

	// Marcus has three of four canonical methods completed.
	marcus := set.Personas[1]
	if got := services.CalculateResearchCoverage(marcus.ResearchMethods); got != 75 {
		t.Fatalf("marcus coverage = %d, want 75", got)
	}

	// The mission asset should land ready to validate: content present and
	// two completed methods with nothing running.
	mission := set.Assets[0]
	if got := services.CalculateAssetStatus(mission); got != services.AssetReadyToValidate {
		t.Fatalf("mission status = %s", got)
	}

	// The positioning asset has no research underway at all.
	positioning := set.Assets[2]
	if got := services.CalculateAssetStatus(positioning); got != services.AssetAwaitingResearch {
		t.Fatalf("positioning status = %s", got)
	}
}
