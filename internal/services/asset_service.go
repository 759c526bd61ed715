package services

import (
	"strings"
	"time"
)

type AssetStore interface {
	InsertAsset(a *BrandAsset) (*BrandAsset, error)
	GetAsset(id string) (*BrandAsset, error)
	UpdateAsset(a *BrandAsset) error
	DeleteAsset(id string) error
	ListAssetsByWorkspace(wid string) ([]*BrandAsset, error)
	AddAudit(entry AuditEntry)
}

type AssetService struct {
	store AssetStore
	now   func() time.Time
	idGen func(prefix string, n int) string
}

func NewAssetService(store AssetStore) *AssetService {
	return &AssetService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func(prefix string, n int) string { return prefix + shortID(n) },
	}
}

// AssetPatch carries partial updates; nil fields are left untouched.
// Status is absent on purpose: the workflow stage is derived, never set.
type AssetPatch struct {
	Type        *string        `json:"type,omitempty"`
	Title       *string        `json:"title,omitempty"`
	Content     *string        `json:"content,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Description *string        `json:"description,omitempty"`
	Priority    *AssetPriority `json:"priority,omitempty"`
	IsCritical  *bool          `json:"is_critical,omitempty"`
}

func (s *AssetService) Create(wid, actor string, a *BrandAsset) (*BrandAsset, error) {
	if a == nil || strings.TrimSpace(a.Title) == "" {
		return nil, NewInvalidError("title required")
	}
	if strings.TrimSpace(a.Type) == "" {
		return nil, NewInvalidError("type required")
	}
	now := s.now()
	a.ID = s.idGen("a", 8)
	a.WorkspaceID = wid
	a.ResearchMethods = MigrateMethods(a.ResearchMethods)
	a.CreatedAt = now
	s.refresh(a, now)
	created, err := s.store.InsertAsset(a)
	if err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: actor, Action: "asset_create", Target: a.ID})
	return created, nil
}

func (s *AssetService) Get(wid, id string) (*BrandAsset, error) {
	a, err := s.store.GetAsset(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, NewNotFoundError("asset not found")
	}
	if a.WorkspaceID != wid {
		return nil, NewForbiddenError("forbidden")
	}
	return a, nil
}

func (s *AssetService) List(wid string, filter AssetFilter) ([]*BrandAsset, error) {
	assets, err := s.store.ListAssetsByWorkspace(wid)
	if err != nil {
		return nil, err
	}
	return FilterAssets(assets, filter), nil
}

func (s *AssetService) Update(wid, actor, id string, patch AssetPatch) (*BrandAsset, error) {
	a, err := s.Get(wid, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, NewInvalidError("title required")
		}
		a.Title = *patch.Title
	}
	if patch.Type != nil {
		if strings.TrimSpace(*patch.Type) == "" {
			return nil, NewInvalidError("type required")
		}
		a.Type = *patch.Type
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.Description != nil {
		a.Description = *patch.Description
	}
	if patch.Priority != nil {
		switch *patch.Priority {
		case PriorityEssential, PriorityRecommended, PriorityNiceToHave:
			a.Priority = *patch.Priority
		default:
			return nil, NewInvalidError("unknown asset priority")
		}
	}
	if patch.IsCritical != nil {
		a.IsCritical = *patch.IsCritical
	}
	now := s.now()
	s.refresh(a, now)
	if err := s.store.UpdateAsset(a); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: actor, Action: "asset_update", Target: id})
	return a, nil
}

func (s *AssetService) Delete(wid, actor, id string) error {
	if _, err := s.Get(wid, id); err != nil {
		return err
	}
	if err := s.store.DeleteAsset(id); err != nil {
		return err
	}
	s.store.AddAudit(AuditEntry{Time: s.now(), Actor: actor, Action: "asset_delete", Target: id})
	return nil
}

func (s *AssetService) StartMethod(wid, actor, id, methodType string) (*BrandAsset, error) {
	methodType = strings.TrimSpace(methodType)
	if methodType == "" {
		return nil, NewInvalidError("method type required")
	}
	a, err := s.Get(wid, id)
	if err != nil {
		return nil, err
	}
	if err := startMethod(&a.ResearchMethods, methodType); err != nil {
		return nil, err
	}
	now := s.now()
	s.refresh(a, now)
	if err := s.store.UpdateAsset(a); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: actor, Action: "asset_method_start", Target: id, Note: methodType})
	return a, nil
}

func (s *AssetService) UpdateMethod(wid, actor, id, methodType string, upd MethodUpdate) (*BrandAsset, error) {
	a, err := s.Get(wid, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	action, err := applyMethodUpdate(a.ResearchMethods, methodType, upd, now)
	if err != nil {
		return nil, err
	}
	s.refresh(a, now)
	if err := s.store.UpdateAsset(a); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: actor, Action: "asset_" + action, Target: id, Note: methodType})
	return a, nil
}

func (s *AssetService) AddSection(wid, actor, id, title, content string) (*BrandAsset, error) {
	if strings.TrimSpace(title) == "" {
		return nil, NewInvalidError("section title required")
	}
	a, err := s.Get(wid, id)
	if err != nil {
		return nil, err
	}
	a.ContentSections = append(a.ContentSections, ContentSection{
		ID:      s.idGen("s", 8),
		Title:   title,
		Content: content,
		Status:  SectionDraft,
	})
	now := s.now()
	s.refresh(a, now)
	if err := s.store.UpdateAsset(a); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: actor, Action: "asset_section_add", Target: id, Note: title})
	return a, nil
}

// SectionPatch updates a content section. Status may only move forward:
// draft to ready-to-validate to validated.
type SectionPatch struct {
	Title   *string        `json:"title,omitempty"`
	Content *string        `json:"content,omitempty"`
	Status  *SectionStatus `json:"status,omitempty"`
}

func (s *AssetService) UpdateSection(wid, actor, id, sectionID string, patch SectionPatch) (*BrandAsset, error) {
	a, err := s.Get(wid, id)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, sec := range a.ContentSections {
		if sec.ID == sectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, NewNotFoundError("section not found")
	}
	sec := &a.ContentSections[idx]
	now := s.now()
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, NewInvalidError("section title required")
		}
		sec.Title = *patch.Title
	}
	if patch.Content != nil {
		sec.Content = *patch.Content
	}
	if patch.Status != nil {
		switch *patch.Status {
		case SectionReadyToValidate:
			if sec.Status == SectionValidated {
				return nil, NewConflictError("section already validated")
			}
			sec.Status = SectionReadyToValidate
		case SectionValidated:
			validatedAt := now
			sec.Status = SectionValidated
			sec.ValidatedAt = &validatedAt
			sec.ValidatedBy = actor
		case SectionDraft:
			return nil, NewInvalidError("sections cannot move back to draft")
		default:
			return nil, NewInvalidError("unknown section status")
		}
	}
	s.refresh(a, now)
	if err := s.store.UpdateAsset(a); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: actor, Action: "asset_section_update", Target: id, Note: sectionID})
	return a, nil
}

// Validate is the explicit "mark validated" action. It records who signed
// off; the derived status picks it up on the next refresh.
func (s *AssetService) Validate(wid, actor, id string) (*BrandAsset, error) {
	a, err := s.Get(wid, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	a.ValidatedAt = &now
	a.ValidatedBy = actor
	s.refresh(a, now)
	if err := s.store.UpdateAsset(a); err != nil {
		return nil, err
	}
	s.store.AddAudit(AuditEntry{Time: now, Actor: actor, Action: "asset_validate", Target: id})
	return a, nil
}

// AssetQuality is the full scoring readout for one asset: quality score
// over its own attached methods, the tier config and tooltip copy, the
// fixed-checklist coverage, and both readiness views (workflow stage and
// strategic verdict).
type AssetQuality struct {
	QualityScore int                `json:"quality_score"`
	QualityLevel QualityLevel       `json:"quality_level"`
	Config       QualityConfig      `json:"config"`
	Message      QualityMessage     `json:"message"`
	Coverage     int                `json:"coverage"`
	Status       AssetStatus        `json:"status"`
	StatusInfo   AssetStatusInfo    `json:"status_info"`
	Decision     DecisionInfo       `json:"decision"`
	Ranked       RankedDecisionInfo `json:"ranked_decision"`
}

func (s *AssetService) Quality(wid, id string) (*AssetQuality, error) {
	a, err := s.Get(wid, id)
	if err != nil {
		return nil, err
	}
	score := CalculateQualityScore(CompletedCount(a.ResearchMethods), len(a.ResearchMethods))
	level := QualityLevelFor(score)
	status := CalculateAssetStatus(a)
	return &AssetQuality{
		QualityScore: score,
		QualityLevel: level,
		Config:       QualityConfigFor(score),
		Message:      QualityMessageFor(level),
		Coverage:     CalculateResearchCoverage(a.ResearchMethods),
		Status:       status,
		StatusInfo:   AssetStatusInfoFor(status),
		Decision:     CalculateDecisionStatus(a.ResearchMethods),
		Ranked:       CalculateRankedDecisionStatus(a.ResearchMethods),
	}, nil
}

// refresh recomputes the derived fields after any mutation.
func (s *AssetService) refresh(a *BrandAsset, now time.Time) {
	a.ResearchCoverage = CalculateResearchCoverage(a.ResearchMethods)
	a.Status = CalculateAssetStatus(a)
	a.LastUpdated = now
}
