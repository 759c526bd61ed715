package services

import (
	"fmt"
	"math"
	"sort"
)

// InsightsStore is the read surface the workspace rollup needs.
type InsightsStore interface {
	ListAssetsByWorkspace(wid string) ([]*BrandAsset, error)
	ListPersonasByWorkspace(wid string) ([]*Persona, error)
}

// InsightsService aggregates decision readiness across a whole workspace
// so the dashboard can show one verdict instead of a card per entity.
type InsightsService struct {
	store InsightsStore
}

func NewInsightsService(store InsightsStore) *InsightsService {
	return &InsightsService{store: store}
}

// OverallStatus is the workspace-wide verdict. do-not-decide is the rollup
// counterpart of a single entity's blocked status.
type OverallStatus string

const (
	OverallSafe        OverallStatus = "safe-to-decide"
	OverallAtRisk      OverallStatus = "decision-at-risk"
	OverallDoNotDecide OverallStatus = "do-not-decide"
)

type WorkspaceStats struct {
	Safe        int `json:"safe"`
	AtRisk      int `json:"at_risk"`
	Blocked     int `json:"blocked"`
	Total       int `json:"total"`
	AvgCoverage int `json:"avg_coverage"`
}

type WorkspaceSummary struct {
	Status        OverallStatus  `json:"status"`
	TopCauses     []string       `json:"top_causes"`
	PrimaryAction string         `json:"primary_action"`
	ContextText   string         `json:"context_text,omitempty"`
	Stats         WorkspaceStats `json:"stats"`
	BrandScore    BrandScore     `json:"brand_score"`
}

type ratedItem struct {
	name     string
	decision RankedDecisionInfo
}

// Summary computes the dashboard rollup for a workspace: per-entity ranked
// decision statuses collapsed into counts, average coverage, the overall
// verdict, and the two most urgent non-safe items as top causes.
func (s *InsightsService) Summary(wid string) (*WorkspaceSummary, error) {
	assets, err := s.store.ListAssetsByWorkspace(wid)
	if err != nil {
		return nil, err
	}
	personas, err := s.store.ListPersonasByWorkspace(wid)
	if err != nil {
		return nil, err
	}

	items := make([]ratedItem, 0, len(assets)+len(personas))
	for _, a := range assets {
		items = append(items, ratedItem{name: a.Title, decision: CalculateRankedDecisionStatus(a.ResearchMethods)})
	}
	for _, p := range personas {
		items = append(items, ratedItem{name: p.Name, decision: CalculateRankedDecisionStatus(p.ResearchMethods)})
	}

	summary := &WorkspaceSummary{
		Status:        OverallSafe,
		TopCauses:     []string{},
		PrimaryAction: "Review strategies",
		ContextText:   "All brand data is sufficiently validated for strategic decisions.",
		BrandScore:    CalculateBrandScore(assets),
	}
	if len(items) == 0 {
		summary.Stats = WorkspaceStats{}
		return summary, nil
	}

	var safe, atRisk, blocked, coverageSum int
	for _, it := range items {
		coverageSum += it.decision.Coverage
		switch it.decision.Status {
		case DecisionSafe:
			safe++
		case DecisionAtRisk:
			atRisk++
		default:
			blocked++
		}
	}
	summary.Stats = WorkspaceStats{
		Safe:        safe,
		AtRisk:      atRisk,
		Blocked:     blocked,
		Total:       len(items),
		AvgCoverage: int(math.Round(float64(coverageSum) / float64(len(items)))),
	}

	// Most urgent first: blocked before at-risk, then lowest coverage.
	urgent := make([]ratedItem, 0, len(items))
	for _, it := range items {
		if it.decision.Status != DecisionSafe {
			urgent = append(urgent, it)
		}
	}
	sort.SliceStable(urgent, func(i, j int) bool {
		if urgent[i].decision.Status != urgent[j].decision.Status {
			return urgent[i].decision.Status == DecisionBlocked
		}
		return urgent[i].decision.Coverage < urgent[j].decision.Coverage
	})
	if len(urgent) > 2 {
		urgent = urgent[:2]
	}
	for _, u := range urgent {
		summary.TopCauses = append(summary.TopCauses, fmt.Sprintf("%s: %d%% research coverage", u.name, u.decision.Coverage))
	}

	switch {
	case blocked > 0:
		summary.Status = OverallDoNotDecide
		summary.PrimaryAction = fmt.Sprintf("Validate %s", urgent[0].name)
		summary.ContextText = fmt.Sprintf("%d %s insufficient research validation for strategic decisions.", blocked, pluralHasHave(blocked))
	case atRisk > 0:
		summary.Status = OverallAtRisk
		summary.PrimaryAction = fmt.Sprintf("Improve %s", urgent[0].name)
		summary.ContextText = fmt.Sprintf("%d %s limited validation. Strategies are usable but not optimal.", atRisk, pluralHasHave(atRisk))
	}
	return summary, nil
}

func pluralHasHave(n int) string {
	if n == 1 {
		return "item has"
	}
	return "items have"
}

// BrandTier buckets the overall brand score.
type BrandTier string

const (
	TierFoundation BrandTier = "foundation"
	TierDeveloping BrandTier = "developing"
	TierStrong     BrandTier = "strong"
	TierElite      BrandTier = "elite"
)

type BrandDimensions struct {
	Foundation int `json:"foundation"`
	Strategy   int `json:"strategy"`
	Confidence int `json:"confidence"`
	Coverage   int `json:"coverage"`
}

type BrandScore struct {
	OverallScore int             `json:"overall_score"`
	Tier         BrandTier       `json:"tier"`
	Dimensions   BrandDimensions `json:"dimensions"`
}

// CalculateBrandScore derives a weighted brand maturity score from the
// asset portfolio: average coverage of Foundation-category assets (30%),
// of Strategy-category assets (25%), share of validated assets (25%), and
// average coverage overall (20%).
func CalculateBrandScore(assets []*BrandAsset) BrandScore {
	if len(assets) == 0 {
		return BrandScore{Tier: TierFoundation}
	}

	var foundationSum, foundationN, strategySum, strategyN int
	var validated, coverageSum int
	for _, a := range assets {
		switch a.Category {
		case "Foundation":
			foundationSum += a.ResearchCoverage
			foundationN++
		case "Strategy":
			strategySum += a.ResearchCoverage
			strategyN++
		}
		if a.Status == AssetValidated {
			validated++
		}
		coverageSum += a.ResearchCoverage
	}

	foundation := avg(foundationSum, foundationN)
	strategy := avg(strategySum, strategyN)
	confidence := float64(validated) / float64(len(assets)) * 100
	coverage := float64(coverageSum) / float64(len(assets))

	overall := int(math.Round(foundation*0.3 + strategy*0.25 + confidence*0.25 + coverage*0.2))

	tier := TierFoundation
	switch {
	case overall >= 76:
		tier = TierElite
	case overall >= 51:
		tier = TierStrong
	case overall >= 26:
		tier = TierDeveloping
	}

	return BrandScore{
		OverallScore: overall,
		Tier:         tier,
		Dimensions: BrandDimensions{
			Foundation: int(math.Round(foundation)),
			Strategy:   int(math.Round(strategy)),
			Confidence: int(math.Round(confidence)),
			Coverage:   int(math.Round(coverage)),
		},
	}
}

func avg(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
