package services

import "time"

// MethodStatus is the lifecycle of a single research method run against an
// entity. Absence of a record means not-started.
type MethodStatus string

const (
	MethodNotStarted MethodStatus = "not-started"
	MethodInProgress MethodStatus = "in-progress"
	MethodCompleted  MethodStatus = "completed"
	MethodCancelled  MethodStatus = "cancelled"
)

// Canonical method types for the four-step validation checklist. Method
// types are open-ended; these four drive the coverage metric.
const (
	MethodWorkshop      = "workshop"
	MethodInterviews    = "interviews"
	MethodQuestionnaire = "questionnaire"
	MethodAIExploration = "ai-exploration"
)

type ResearchMethod struct {
	Type             string       `json:"type"`
	Status           MethodStatus `json:"status"`
	Progress         int          `json:"progress,omitempty"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	ParticipantCount int          `json:"participant_count,omitempty"`
	Insights         []string     `json:"insights,omitempty"`
}

// PersonaStatus is the coarse lifecycle flag set by UI actions; it is
// stored as-is, never derived.
type PersonaStatus string

const (
	PersonaDraft      PersonaStatus = "draft"
	PersonaInResearch PersonaStatus = "in-research"
	PersonaValidated  PersonaStatus = "validated"
	PersonaArchived   PersonaStatus = "archived"
)

type Demographics struct {
	Age          string `json:"age,omitempty"`
	Location     string `json:"location,omitempty"`
	Occupation   string `json:"occupation,omitempty"`
	Education    string `json:"education,omitempty"`
	Income       string `json:"income,omitempty"`
	FamilyStatus string `json:"family_status,omitempty"`
}

type Persona struct {
	ID           string       `json:"id"`
	WorkspaceID  string       `json:"workspace_id,omitempty"`
	Name         string       `json:"name"`
	Tagline      string       `json:"tagline,omitempty"`
	Avatar       string       `json:"avatar,omitempty"`
	Demographics Demographics `json:"demographics"`
	Goals        []string     `json:"goals,omitempty"`
	Frustrations []string     `json:"frustrations,omitempty"`
	Motivations  []string     `json:"motivations,omitempty"`
	Behaviors    []string     `json:"behaviors,omitempty"`
	Personality  string       `json:"personality,omitempty"`
	Values       []string     `json:"values,omitempty"`
	Interests    []string     `json:"interests,omitempty"`
	Tags         []string     `json:"tags,omitempty"`

	ResearchMethods  []ResearchMethod `json:"research_methods"`
	ResearchCoverage int              `json:"research_coverage"`
	ValidationScore  int              `json:"validation_score"`

	Status      PersonaStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	LastUpdated time.Time     `json:"last_updated"`
}

// AssetStatus is the derived workflow stage of a brand asset. It answers
// "where is this asset in its development cycle", which is a different
// question from DecisionStatus ("can I act on it strategically"); the two
// must stay separate types.
type AssetStatus string

const (
	AssetAwaitingResearch AssetStatus = "awaiting-research"
	AssetInDevelopment    AssetStatus = "in-development"
	AssetReadyToValidate  AssetStatus = "ready-to-validate"
	AssetValidated        AssetStatus = "validated"
)

type AssetPriority string

const (
	PriorityEssential   AssetPriority = "essential"
	PriorityRecommended AssetPriority = "recommended"
	PriorityNiceToHave  AssetPriority = "nice-to-have"
)

type SectionStatus string

const (
	SectionDraft           SectionStatus = "draft"
	SectionReadyToValidate SectionStatus = "ready-to-validate"
	SectionValidated       SectionStatus = "validated"
)

type ContentSection struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content,omitempty"`
	Status      SectionStatus `json:"status"`
	ValidatedAt *time.Time    `json:"validated_at,omitempty"`
	ValidatedBy string        `json:"validated_by,omitempty"`
}

type BrandAsset struct {
	ID          string        `json:"id"`
	WorkspaceID string        `json:"workspace_id,omitempty"`
	Type        string        `json:"type"`
	Title       string        `json:"title"`
	Content     string        `json:"content,omitempty"`
	Category    string        `json:"category,omitempty"`
	Description string        `json:"description,omitempty"`
	Priority    AssetPriority `json:"priority,omitempty"`
	IsCritical  bool          `json:"is_critical,omitempty"`

	ResearchMethods  []ResearchMethod `json:"research_methods"`
	ResearchCoverage int              `json:"research_coverage"`
	ContentSections  []ContentSection `json:"content_sections,omitempty"`

	Status      AssetStatus `json:"status"`
	ValidatedAt *time.Time  `json:"validated_at,omitempty"`
	ValidatedBy string      `json:"validated_by,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	LastUpdated time.Time   `json:"last_updated"`
}

type AuditEntry struct {
	Time   time.Time
	Actor  string
	Action string
	Target string
	Note   string
}

// MigrateMethodStatus maps legacy status strings onto MethodStatus. Stored
// data from older builds used availability labels instead of lifecycle
// states.
func MigrateMethodStatus(old string) MethodStatus {
	switch old {
	case "available":
		return MethodNotStarted
	case "running":
		return MethodInProgress
	case "locked":
		return MethodCancelled
	case string(MethodInProgress):
		return MethodInProgress
	case string(MethodCompleted):
		return MethodCompleted
	case string(MethodCancelled):
		return MethodCancelled
	default:
		return MethodNotStarted
	}
}

// MigrateMethods normalizes a stored method list: legacy statuses are
// mapped, progress is cleared unless in-progress, and completion
// timestamps are cleared unless completed.
func MigrateMethods(methods []ResearchMethod) []ResearchMethod {
	if methods == nil {
		return nil
	}
	out := make([]ResearchMethod, len(methods))
	for i, m := range methods {
		m.Status = MigrateMethodStatus(string(m.Status))
		if m.Status != MethodInProgress {
			m.Progress = 0
		}
		if m.Status != MethodCompleted {
			m.CompletedAt = nil
		}
		out[i] = m
	}
	return out
}
