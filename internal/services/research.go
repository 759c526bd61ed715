package services

// Aggregation helpers over research method lists. These are pure
// derivations from entity snapshots; the services mutate, these only read.

// canonicalMethodTotal is the size of the canonical validation checklist
// (workshop, interviews, questionnaire, AI exploration). Coverage measures
// progress toward this fixed checklist; the quality score instead measures
// completion of whatever methods are actually attached. The two metrics
// are deliberately different.
const canonicalMethodTotal = 4

// CompletedCount returns how many methods in the list are completed.
func CompletedCount(methods []ResearchMethod) int {
	n := 0
	for _, m := range methods {
		if m.Status == MethodCompleted {
			n++
		}
	}
	return n
}

// InProgressCount returns how many methods in the list are in progress.
func InProgressCount(methods []ResearchMethod) int {
	n := 0
	for _, m := range methods {
		if m.Status == MethodInProgress {
			n++
		}
	}
	return n
}

// HasCompletedMethod reports whether a method of the given type completed.
func HasCompletedMethod(methods []ResearchMethod, methodType string) bool {
	for _, m := range methods {
		if m.Type == methodType && m.Status == MethodCompleted {
			return true
		}
	}
	return false
}

// TotalParticipants sums participant counts across all methods; missing
// counts read as zero.
func TotalParticipants(methods []ResearchMethod) int {
	total := 0
	for _, m := range methods {
		if m.ParticipantCount > 0 {
			total += m.ParticipantCount
		}
	}
	return total
}

// CalculateResearchCoverage is the percentage of the canonical four-method
// checklist completed, clamped to 100 when more than four methods are
// done.
func CalculateResearchCoverage(methods []ResearchMethod) int {
	return CalculateQualityScore(CompletedCount(methods), canonicalMethodTotal)
}

// CalculateAssetStatus derives the workflow stage of an asset from its
// research and content state. It recomputes from the current snapshot on
// every call; nothing forbids a validated asset from moving back when
// research reopens.
func CalculateAssetStatus(asset *BrandAsset) AssetStatus {
	anyInProgress := InProgressCount(asset.ResearchMethods) > 0
	anyCompleted := CompletedCount(asset.ResearchMethods) > 0
	hasContent := asset.Content != ""

	if len(asset.ContentSections) > 0 {
		allValidated := true
		anyReady := false
		for _, s := range asset.ContentSections {
			if s.Status != SectionValidated {
				allValidated = false
			}
			if s.Status == SectionReadyToValidate {
				anyReady = true
			}
		}
		if allValidated && !anyInProgress {
			return AssetValidated
		}
		if anyReady {
			return AssetReadyToValidate
		}
	} else if hasContent && anyCompleted && !anyInProgress {
		if asset.ValidatedAt != nil {
			return AssetValidated
		}
		return AssetReadyToValidate
	}

	if anyInProgress || anyCompleted {
		return AssetInDevelopment
	}
	return AssetAwaitingResearch
}

// AssetStatusInfo is the static presentation record for a workflow stage.
type AssetStatusInfo struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Badge       string `json:"badge,omitempty"`
}

var assetStatusInfos = map[AssetStatus]AssetStatusInfo{
	AssetAwaitingResearch: {
		Label:       "Awaiting Research",
		Description: "No research or development yet",
		Color:       "gray",
		Icon:        "circle",
	},
	AssetInDevelopment: {
		Label:       "In Development",
		Description: "Research active, content being developed",
		Color:       "blue",
		Icon:        "clock",
	},
	AssetReadyToValidate: {
		Label:       "Ready to Validate",
		Description: "Generated content awaiting your validation",
		Color:       "orange",
		Icon:        "alert-triangle",
		Badge:       "Review",
	},
	AssetValidated: {
		Label:       "Validated",
		Description: "Validated and ready to use",
		Color:       "green",
		Icon:        "check-circle",
	},
}

// AssetStatusInfoFor returns the static display record for a stage.
func AssetStatusInfoFor(status AssetStatus) AssetStatusInfo {
	if info, ok := assetStatusInfos[status]; ok {
		return info
	}
	return assetStatusInfos[AssetAwaitingResearch]
}

var methodLabels = map[string]string{
	MethodWorkshop:      "Workshop",
	MethodInterviews:    "1-on-1 Interviews",
	MethodQuestionnaire: "Strategic Survey",
	MethodAIExploration: "AI Exploration",
}

// MethodLabel returns the display name for a method type, falling back to
// the raw type for unknown methods.
func MethodLabel(methodType string) string {
	if l, ok := methodLabels[methodType]; ok {
		return l
	}
	return methodType
}

// AssetFilter selects assets by status, completed method types, and
// coverage bounds. Nil slices and nil bounds mean no constraint.
type AssetFilter struct {
	Status      []AssetStatus
	HasMethod   []string
	CoverageMin *int
	CoverageMax *int
}

// FilterAssets returns the assets matching every set constraint.
func FilterAssets(assets []*BrandAsset, f AssetFilter) []*BrandAsset {
	out := make([]*BrandAsset, 0, len(assets))
	for _, a := range assets {
		if len(f.Status) > 0 && !containsStatus(f.Status, a.Status) {
			continue
		}
		if len(f.HasMethod) > 0 {
			found := false
			for _, mt := range f.HasMethod {
				if HasCompletedMethod(a.ResearchMethods, mt) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if f.CoverageMin != nil && a.ResearchCoverage < *f.CoverageMin {
			continue
		}
		if f.CoverageMax != nil && a.ResearchCoverage > *f.CoverageMax {
			continue
		}
		out = append(out, a)
	}
	return out
}

// GroupAssetsByStatus buckets assets by workflow stage.
func GroupAssetsByStatus(assets []*BrandAsset) map[AssetStatus][]*BrandAsset {
	out := map[AssetStatus][]*BrandAsset{
		AssetAwaitingResearch: {},
		AssetInDevelopment:    {},
		AssetReadyToValidate:  {},
		AssetValidated:        {},
	}
	for _, a := range assets {
		out[a.Status] = append(out[a.Status], a)
	}
	return out
}

func containsStatus(list []AssetStatus, s AssetStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
