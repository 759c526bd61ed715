package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PersonaStore interface {
	InsertPersona(p *Persona) (*Persona, error)
	GetPersona(id string) (*Persona, error)
	UpdatePersona(p *Persona) error
	DeletePersona(id string) error
	ListPersonasByWorkspace(wid string) ([]*Persona, error)
	AddAudit(entry AuditEntry)
}

type PersonaService struct {
	store PersonaStore
	now   func() time.Time
	idGen func(prefix string, n int) string
}

func NewPersonaService(store PersonaStore) *PersonaService {
	return &PersonaService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func(prefix string, n int) string { return prefix + shortID(n) },
	}
}

// PersonaPatch carries partial updates; nil fields are left untouched.
type PersonaPatch struct {
	Name         *string        `json:"name,omitempty"`
	Tagline      *string        `json:"tagline,omitempty"`
	Avatar       *string        `json:"avatar,omitempty"`
	Demographics *Demographics  `json:"demographics,omitempty"`
	Goals        *[]string      `json:"goals,omitempty"`
	Frustrations *[]string      `json:"frustrations,omitempty"`
	Motivations  *[]string      `json:"motivations,omitempty"`
	Behaviors    *[]string      `json:"behaviors,omitempty"`
	Personality  *string        `json:"personality,omitempty"`
	Values       *[]string      `json:"values,omitempty"`
	Interests    *[]string      `json:"interests,omitempty"`
	Tags         *[]string      `json:"tags,omitempty"`
	Status       *PersonaStatus `json:"status,omitempty"`
}

func (s *PersonaService) Create(wid, actor string, p *Persona) (*Persona, error) {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return nil, NewInvalidError("name required")
	}
	now := s.now()
	p.ID = s.idGen("p", 8)
	p.WorkspaceID = wid
	if p.Status == "" {
		p.Status = PersonaDraft
	}
	p.ResearchMethods = MigrateMethods(p.ResearchMethods)
	p.CreatedAt = now
	s.refresh(p, now)
	created, err := s.store.InsertPersona(p)
	if err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: actor, Action: "persona_create", Target: p.ID})
	return created, nil
}

func (s *PersonaService) Get(wid, id string) (*Persona, error) {
	p, err := s.store.GetPersona(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, NewNotFoundError("persona not found")
	}
	if p.WorkspaceID != wid {
		return nil, NewForbiddenError("forbidden")
	}
	return p, nil
}

func (s *PersonaService) List(wid string) ([]*Persona, error) {
	return s.store.ListPersonasByWorkspace(wid)
}

func (s *PersonaService) Update(wid, actor, id string, patch PersonaPatch) (*Persona, error) {
	p, err := s.Get(wid, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, NewInvalidError("name required")
		}
		p.Name = *patch.Name
	}
	if patch.Tagline != nil {
		p.Tagline = *patch.Tagline
	}
	if patch.Avatar != nil {
		p.Avatar = *patch.Avatar
	}
	if patch.Demographics != nil {
		p.Demographics = *patch.Demographics
	}
	if patch.Goals != nil {
		p.Goals = *patch.Goals
	}
	if patch.Frustrations != nil {
		p.Frustrations = *patch.Frustrations
	}
	if patch.Motivations != nil {
		p.Motivations = *patch.Motivations
	}
	if patch.Behaviors != nil {
		p.Behaviors = *patch.Behaviors
	}
	if patch.Personality != nil {
		p.Personality = *patch.Personality
	}
	if patch.Values != nil {
		p.Values = *patch.Values
	}
	if patch.Interests != nil {
		p.Interests = *patch.Interests
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.Status != nil {
		switch *patch.Status {
		case PersonaDraft, PersonaInResearch, PersonaValidated, PersonaArchived:
			p.Status = *patch.Status
		default:
			return nil, NewInvalidError("unknown persona status")
		}
	}
	now := s.now()
	s.refresh(p, now)
	if err := s.store.UpdatePersona(p); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: actor, Action: "persona_update", Target: id})
	return p, nil
}

func (s *PersonaService) Delete(wid, actor, id string) error {
	if _, err := s.Get(wid, id); err != nil {
		return err
	}
	if err := s.store.DeletePersona(id); err != nil {
		return err
	}
	s.store.AddAudit(AuditEntry{Time: s.now(), Actor: actor, Action: "persona_delete", Target: id})
	return nil
}

// StartMethod attaches a research method in the in-progress state, or
// restarts a cancelled one. A method already running or completed is a
// conflict.
func (s *PersonaService) StartMethod(wid, actor, id, methodType string) (*Persona, error) {
	methodType = strings.TrimSpace(methodType)
	if methodType == "" {
		return nil, NewInvalidError("method type required")
	}
	p, err := s.Get(wid, id)
	if err != nil {
		return nil, err
	}
	if err := startMethod(&p.ResearchMethods, methodType); err != nil {
		return nil, err
	}
	now := s.now()
	s.refresh(p, now)
	if err := s.store.UpdatePersona(p); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: actor, Action: "persona_method_start", Target: id, Note: methodType})
	return p, nil
}

// MethodUpdate is the lifecycle event applied to a running method: a
// progress tick, a completion with optional participant count and
// insights, or a cancellation.
type MethodUpdate struct {
	Progress         *int     `json:"progress,omitempty"`
	Complete         bool     `json:"complete,omitempty"`
	Cancel           bool     `json:"cancel,omitempty"`
	ParticipantCount int      `json:"participant_count,omitempty"`
	Insights         []string `json:"insights,omitempty"`
}

func (s *PersonaService) UpdateMethod(wid, actor, id, methodType string, upd MethodUpdate) (*Persona, error) {
	p, err := s.Get(wid, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	action, err := applyMethodUpdate(p.ResearchMethods, methodType, upd, now)
	if err != nil {
		return nil, err
	}
	s.refresh(p, now)
	if err := s.store.UpdatePersona(p); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: actor, Action: "persona_" + action, Target: id, Note: methodType})
	return p, nil
}

// Decision recomputes the live verdict and validation score for a
// persona snapshot.
func (s *PersonaService) Decision(wid, id string) (*PersonaDecisionInfo, int, error) {
	p, err := s.Get(wid, id)
	if err != nil {
		return nil, 0, err
	}
	info := CalculatePersonaDecision(p)
	score := CalculatePersonaValidationScore(p, s.now())
	return &info, score, nil
}

// refresh recomputes the derived fields after any mutation.
func (s *PersonaService) refresh(p *Persona, now time.Time) {
	p.ResearchCoverage = CalculateResearchCoverage(p.ResearchMethods)
	p.LastUpdated = now
	p.ValidationScore = CalculatePersonaValidationScore(p, now)
}

// startMethod implements the shared start transition over a method list.
func startMethod(methods *[]ResearchMethod, methodType string) error {
	for i, m := range *methods {
		if m.Type != methodType {
			continue
		}
		switch m.Status {
		case MethodInProgress:
			return NewConflictError("method already in progress")
		case MethodCompleted:
			return NewConflictError("method already completed")
		default:
			(*methods)[i].Status = MethodInProgress
			(*methods)[i].Progress = 0
			(*methods)[i].CompletedAt = nil
			return nil
		}
	}
	*methods = append(*methods, ResearchMethod{Type: methodType, Status: MethodInProgress})
	return nil
}

// applyMethodUpdate mutates the matching record and returns the audit
// action name. Progress is only meaningful while in-progress; CompletedAt
// is set exactly on completion.
func applyMethodUpdate(methods []ResearchMethod, methodType string, upd MethodUpdate, now time.Time) (string, error) {
	idx := -1
	for i, m := range methods {
		if m.Type == methodType {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", NewNotFoundError("method not started")
	}
	m := &methods[idx]

	switch {
	case upd.Complete && upd.Cancel:
		return "", NewInvalidError("complete and cancel are mutually exclusive")
	case upd.Complete:
		if m.Status == MethodCompleted {
			return "", NewConflictError("method already completed")
		}
		m.Status = MethodCompleted
		m.Progress = 0
		completedAt := now
		m.CompletedAt = &completedAt
		if upd.ParticipantCount > 0 {
			m.ParticipantCount = upd.ParticipantCount
		}
		if len(upd.Insights) > 0 {
			m.Insights = append(m.Insights, upd.Insights...)
		}
		return "method_complete", nil
	case upd.Cancel:
		if m.Status == MethodCompleted {
			return "", NewConflictError("method already completed")
		}
		m.Status = MethodCancelled
		m.Progress = 0
		m.CompletedAt = nil
		return "method_cancel", nil
	case upd.Progress != nil:
		if m.Status != MethodInProgress {
			return "", NewConflictError("method not in progress")
		}
		prog := *upd.Progress
		if prog < 0 {
			prog = 0
		}
		if prog > 100 {
			prog = 100
		}
		m.Progress = prog
		if upd.ParticipantCount > 0 {
			m.ParticipantCount = upd.ParticipantCount
		}
		return "method_progress", nil
	default:
		return "", NewInvalidError("no method update given")
	}
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}
