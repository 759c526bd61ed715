package services

import (
	"fmt"
	"testing"
	"time"
)

type stubAssetStore struct {
	assets map[string]*BrandAsset
	audit  []AuditEntry
}

func newStubAssetStore() *stubAssetStore {
	return &stubAssetStore{assets: map[string]*BrandAsset{}}
}

func (s *stubAssetStore) InsertAsset(a *BrandAsset) (*BrandAsset, error) {
	s.assets[a.ID] = a
	return a, nil
}

func (s *stubAssetStore) GetAsset(id string) (*BrandAsset, error) {
	return s.assets[id], nil
}

func (s *stubAssetStore) UpdateAsset(a *BrandAsset) error {
	s.assets[a.ID] = a
	return nil
}

func (s *stubAssetStore) DeleteAsset(id string) error {
	delete(s.assets, id)
	return nil
}

func (s *stubAssetStore) ListAssetsByWorkspace(wid string) ([]*BrandAsset, error) {
	out := []*BrandAsset{}
	for _, a := range s.assets {
		if a.WorkspaceID == wid {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubAssetStore) AddAudit(entry AuditEntry) {
	s.audit = append(s.audit, entry)
}

func newTestAssetService(store *stubAssetStore) *AssetService {
	svc := NewAssetService(store)
	svc.now = func() time.Time { return testClock }
	seq := 0
	svc.idGen = func(prefix string, n int) string {
		seq++
		return fmt.Sprintf("%s%d", prefix, seq)
	}
	return svc
}

func TestAssetCreate(t *testing.T) {
	store := newStubAssetStore()
	svc := newTestAssetService(store)

	a, err := svc.Create("w1", "a@b.c", &BrandAsset{
		Type:     "mission",
		Title:    "Mission & Vision",
		Category: "Foundation",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID != "a1" || a.WorkspaceID != "w1" {
		t.Fatalf("unexpected identity: id=%s wid=%s", a.ID, a.WorkspaceID)
	}
	if a.Status != AssetAwaitingResearch {
		t.Fatalf("fresh asset status = %s, want awaiting-research", a.Status)
	}
	if len(store.audit) != 1 || store.audit[0].Action != "asset_create" {
		t.Fatalf("audit = %+v", store.audit)
	}

	_, err = svc.Create("w1", "a@b.c", &BrandAsset{Type: "mission"})
	expectCode(t, err, ErrorInvalid)
	_, err = svc.Create("w1", "a@b.c", &BrandAsset{Title: "Untitled"})
	expectCode(t, err, ErrorInvalid)
}

func TestAssetStatusDerivedOnMutation(t *testing.T) {
	store := newStubAssetStore()
	svc := newTestAssetService(store)
	a, _ := svc.Create("w1", "a@b.c", &BrandAsset{Type: "mission", Title: "Mission"})

	a, err := svc.StartMethod("w1", "a@b.c", a.ID, MethodWorkshop)
	if err != nil {
		t.Fatalf("StartMethod: %v", err)
	}
	if a.Status != AssetInDevelopment {
		t.Fatalf("status after starting research = %s", a.Status)
	}

	a, err = svc.UpdateMethod("w1", "a@b.c", a.ID, MethodWorkshop, MethodUpdate{Complete: true})
	if err != nil {
		t.Fatalf("UpdateMethod: %v", err)
	}
	if a.ResearchCoverage != 25 {
		t.Fatalf("coverage = %d, want 25", a.ResearchCoverage)
	}
	// Completed research but no content keeps the asset in development.
	if a.Status != AssetInDevelopment {
		t.Fatalf("status = %s", a.Status)
	}

	content := "We exist to make brand strategy accessible."
	a, err = svc.Update("w1", "a@b.c", a.ID, AssetPatch{Content: &content})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if a.Status != AssetReadyToValidate {
		t.Fatalf("content plus completed research should be ready to validate, got %s", a.Status)
	}

	a, err = svc.Validate("w1", "a@b.c", a.ID)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if a.Status != AssetValidated {
		t.Fatalf("status after validation = %s", a.Status)
	}
	if a.ValidatedAt == nil || a.ValidatedBy != "a@b.c" {
		t.Fatalf("validation record missing: at=%v by=%q", a.ValidatedAt, a.ValidatedBy)
	}

	// Reopening research demotes the asset even though ValidatedAt stays.
	a, err = svc.StartMethod("w1", "a@b.c", a.ID, MethodInterviews)
	if err != nil {
		t.Fatalf("StartMethod: %v", err)
	}
	if a.Status != AssetInDevelopment {
		t.Fatalf("reopened asset status = %s, want in-development", a.Status)
	}
	if a.ValidatedAt == nil {
		t.Fatalf("validation record should survive demotion")
	}
}

func TestAssetUpdatePatchValidation(t *testing.T) {
	store := newStubAssetStore()
	svc := newTestAssetService(store)
	a, _ := svc.Create("w1", "a@b.c", &BrandAsset{Type: "mission", Title: "Mission"})

	empty := "  "
	_, err := svc.Update("w1", "a@b.c", a.ID, AssetPatch{Title: &empty})
	expectCode(t, err, ErrorInvalid)
	_, err = svc.Update("w1", "a@b.c", a.ID, AssetPatch{Type: &empty})
	expectCode(t, err, ErrorInvalid)

	bad := AssetPriority("urgent")
	_, err = svc.Update("w1", "a@b.c", a.ID, AssetPatch{Priority: &bad})
	expectCode(t, err, ErrorInvalid)

	prio := PriorityEssential
	crit := true
	upd, err := svc.Update("w1", "a@b.c", a.ID, AssetPatch{Priority: &prio, IsCritical: &crit})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if upd.Priority != PriorityEssential || !upd.IsCritical {
		t.Fatalf("patch not applied: %+v", upd)
	}
}

func TestAssetWorkspaceIsolation(t *testing.T) {
	store := newStubAssetStore()
	svc := newTestAssetService(store)
	a, _ := svc.Create("w1", "a@b.c", &BrandAsset{Type: "mission", Title: "Mission"})

	_, err := svc.Get("w2", a.ID)
	expectCode(t, err, ErrorForbidden)
	_, err = svc.Quality("w2", a.ID)
	expectCode(t, err, ErrorForbidden)
	_, err = svc.Validate("w2", "x@y.z", a.ID)
	expectCode(t, err, ErrorForbidden)
	err = svc.Delete("w2", "x@y.z", a.ID)
	expectCode(t, err, ErrorForbidden)
}

func TestAssetListFiltered(t *testing.T) {
	store := newStubAssetStore()
	svc := newTestAssetService(store)
	a1, _ := svc.Create("w1", "a@b.c", &BrandAsset{Type: "mission", Title: "Mission"})
	if _, err := svc.StartMethod("w1", "a@b.c", a1.ID, MethodWorkshop); err != nil {
		t.Fatalf("StartMethod: %v", err)
	}
	if _, err := svc.UpdateMethod("w1", "a@b.c", a1.ID, MethodWorkshop, MethodUpdate{Complete: true}); err != nil {
		t.Fatalf("UpdateMethod: %v", err)
	}
	if _, err := svc.Create("w1", "a@b.c", &BrandAsset{Type: "values", Title: "Values"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create("w2", "x@y.z", &BrandAsset{Type: "voice", Title: "Voice"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := svc.List("w1", AssetFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("workspace list = %v", ids(all))
	}

	got, err := svc.List("w1", AssetFilter{HasMethod: []string{MethodWorkshop}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != a1.ID {
		t.Fatalf("filtered list = %v", ids(got))
	}
}

func TestAssetSections(t *testing.T) {
	store := newStubAssetStore()
	svc := newTestAssetService(store)
	a, _ := svc.Create("w1", "a@b.c", &BrandAsset{Type: "mission", Title: "Mission"})

	a, err := svc.AddSection("w1", "a@b.c", a.ID, "Purpose", "Why we exist.")
	if err != nil {
		t.Fatalf("AddSection: %v", err)
	}
	if len(a.ContentSections) != 1 {
		t.Fatalf("sections = %+v", a.ContentSections)
	}
	sec := a.ContentSections[0]
	if sec.Status != SectionDraft || sec.Title != "Purpose" {
		t.Fatalf("new section = %+v", sec)
	}

	_, err = svc.AddSection("w1", "a@b.c", a.ID, "  ", "")
	expectCode(t, err, ErrorInvalid)

	ready := SectionReadyToValidate
	a, err = svc.UpdateSection("w1", "a@b.c", a.ID, sec.ID, SectionPatch{Status: &ready})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if a.ContentSections[0].Status != SectionReadyToValidate {
		t.Fatalf("section status = %s", a.ContentSections[0].Status)
	}
	if a.Status != AssetReadyToValidate {
		t.Fatalf("asset status should follow its sections, got %s", a.Status)
	}

	validated := SectionValidated
	a, err = svc.UpdateSection("w1", "a@b.c", a.ID, sec.ID, SectionPatch{Status: &validated})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	got := a.ContentSections[0]
	if got.Status != SectionValidated || got.ValidatedAt == nil || got.ValidatedBy != "a@b.c" {
		t.Fatalf("validated section = %+v", got)
	}
	if a.Status != AssetValidated {
		t.Fatalf("asset with all sections validated = %s", a.Status)
	}

	// Forward-only: validated sections never return to draft or review.
	draft := SectionDraft
	_, err = svc.UpdateSection("w1", "a@b.c", a.ID, sec.ID, SectionPatch{Status: &draft})
	expectCode(t, err, ErrorInvalid)
	_, err = svc.UpdateSection("w1", "a@b.c", a.ID, sec.ID, SectionPatch{Status: &ready})
	expectCode(t, err, ErrorConflict)

	_, err = svc.UpdateSection("w1", "a@b.c", a.ID, "missing", SectionPatch{})
	expectCode(t, err, ErrorNotFound)
}

func TestAssetQualityReadout(t *testing.T) {
	store := newStubAssetStore()
	svc := newTestAssetService(store)
	a, _ := svc.Create("w1", "a@b.c", &BrandAsset{
		Type:  "mission",
		Title: "Mission",
		ResearchMethods: []ResearchMethod{
			{Type: MethodWorkshop, Status: MethodCompleted},
			{Type: MethodInterviews, Status: MethodCompleted},
			{Type: MethodQuestionnaire, Status: MethodNotStarted},
		},
	})

	q, err := svc.Quality("w1", a.ID)
	if err != nil {
		t.Fatalf("Quality: %v", err)
	}
	// Quality scores over the three attached methods; coverage over the
	// fixed four-method checklist.
	if q.QualityScore != 67 {
		t.Fatalf("quality score = %d, want 67", q.QualityScore)
	}
	if q.QualityLevel != QualityGood {
		t.Fatalf("quality level = %s, want good", q.QualityLevel)
	}
	if q.Coverage != 50 {
		t.Fatalf("coverage = %d, want 50", q.Coverage)
	}
	if q.Status != AssetInDevelopment {
		t.Fatalf("status = %s", q.Status)
	}
	if q.Decision.Status != DecisionAtRisk {
		t.Fatalf("decision = %s", q.Decision.Status)
	}
	if q.Ranked.Status != DecisionAtRisk || !q.Ranked.TopMethodsCompleted {
		t.Fatalf("ranked = %+v", q.Ranked)
	}
	if q.Config.Label == "" || q.Message.Title == "" || q.StatusInfo.Label == "" {
		t.Fatalf("presentation records missing: %+v", q)
	}
}
