package api

import (
	"sort"
	"strings"
	"sync"

	"brandpulse/internal/services"
)

// memoryStore is the default, process-local store. Entities are handed out
// as deep copies so callers always work on snapshots; a mutation only
// lands when written back through Update.
type memoryStore struct {
	mu         sync.RWMutex
	personas   map[string]*services.Persona
	assets     map[string]*services.BrandAsset
	workspaces map[string]*services.Workspace
	users      map[string]*services.User
	audit      []services.AuditEntry
}

func NewMemoryStore() Store {
	return &memoryStore{
		personas:   map[string]*services.Persona{},
		assets:     map[string]*services.BrandAsset{},
		workspaces: map[string]*services.Workspace{},
		users:      map[string]*services.User{},
		audit:      []services.AuditEntry{},
	}
}

func (s *memoryStore) InsertPersona(p *services.Persona) (*services.Persona, error) {
	if p == nil {
		return nil, services.NewInvalidError("persona required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := clonePersona(p)
	s.personas[cp.ID] = cp
	return clonePersona(cp), nil
}

func (s *memoryStore) GetPersona(id string) (*services.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.personas[id]
	if !ok {
		return nil, nil
	}
	return clonePersona(p), nil
}

func (s *memoryStore) UpdatePersona(p *services.Persona) error {
	if p == nil {
		return services.NewInvalidError("persona required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.personas[p.ID]; !ok {
		return services.NewNotFoundError("persona not found")
	}
	s.personas[p.ID] = clonePersona(p)
	return nil
}

func (s *memoryStore) DeletePersona(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.personas[id]; !ok {
		return services.NewNotFoundError("persona not found")
	}
	delete(s.personas, id)
	return nil
}

func (s *memoryStore) ListPersonasByWorkspace(wid string) ([]*services.Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.Persona{}
	for _, p := range s.personas {
		if p.WorkspaceID == wid {
			out = append(out, clonePersona(p))
		}
	}
	// stable order by id
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) InsertAsset(a *services.BrandAsset) (*services.BrandAsset, error) {
	if a == nil {
		return nil, services.NewInvalidError("asset required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneAsset(a)
	s.assets[cp.ID] = cp
	return cloneAsset(cp), nil
}

func (s *memoryStore) GetAsset(id string) (*services.BrandAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[id]
	if !ok {
		return nil, nil
	}
	return cloneAsset(a), nil
}

func (s *memoryStore) UpdateAsset(a *services.BrandAsset) error {
	if a == nil {
		return services.NewInvalidError("asset required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[a.ID]; !ok {
		return services.NewNotFoundError("asset not found")
	}
	s.assets[a.ID] = cloneAsset(a)
	return nil
}

func (s *memoryStore) DeleteAsset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[id]; !ok {
		return services.NewNotFoundError("asset not found")
	}
	delete(s.assets, id)
	return nil
}

func (s *memoryStore) ListAssetsByWorkspace(wid string) ([]*services.BrandAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*services.BrandAsset{}
	for _, a := range s.assets {
		if a.WorkspaceID == wid {
			out = append(out, cloneAsset(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) AddWorkspace(w *services.Workspace) error {
	if w == nil {
		return services.NewInvalidError("workspace required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *w
	s.workspaces[w.ID] = &cp
	return nil
}

func (s *memoryStore) AddUser(u *services.User) error {
	if u == nil {
		return services.NewInvalidError("user required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[strings.ToLower(u.Email)] = &cp
	return nil
}

func (s *memoryStore) FindUserByEmail(email string) (*services.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memoryStore) AddAudit(e services.AuditEntry) {
	s.mu.Lock()
	s.audit = append(s.audit, e)
	s.mu.Unlock()
}

func (s *memoryStore) ListAudit() []services.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]services.AuditEntry, len(s.audit))
	copy(out, s.audit)
	return out
}

func clonePersona(p *services.Persona) *services.Persona {
	cp := *p
	cp.Goals = append([]string(nil), p.Goals...)
	cp.Frustrations = append([]string(nil), p.Frustrations...)
	cp.Motivations = append([]string(nil), p.Motivations...)
	cp.Behaviors = append([]string(nil), p.Behaviors...)
	cp.Values = append([]string(nil), p.Values...)
	cp.Interests = append([]string(nil), p.Interests...)
	cp.Tags = append([]string(nil), p.Tags...)
	cp.ResearchMethods = cloneMethods(p.ResearchMethods)
	return &cp
}

func cloneAsset(a *services.BrandAsset) *services.BrandAsset {
	cp := *a
	cp.ResearchMethods = cloneMethods(a.ResearchMethods)
	if a.ContentSections != nil {
		cp.ContentSections = make([]services.ContentSection, len(a.ContentSections))
		for i, sec := range a.ContentSections {
			if sec.ValidatedAt != nil {
				t := *sec.ValidatedAt
				sec.ValidatedAt = &t
			}
			cp.ContentSections[i] = sec
		}
	}
	if a.ValidatedAt != nil {
		t := *a.ValidatedAt
		cp.ValidatedAt = &t
	}
	return &cp
}

func cloneMethods(methods []services.ResearchMethod) []services.ResearchMethod {
	if methods == nil {
		return nil
	}
	out := make([]services.ResearchMethod, len(methods))
	for i, m := range methods {
		if m.CompletedAt != nil {
			t := *m.CompletedAt
			m.CompletedAt = &t
		}
		m.Insights = append([]string(nil), m.Insights...)
		out[i] = m
	}
	return out
}
