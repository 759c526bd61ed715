package services

import (
	"math"
	"sort"
	"strings"
	"time"
)

// DecisionStatus is the three-tier strategic-readiness verdict. It is
// derived from research completion, not from the stored lifecycle status.
type DecisionStatus string

const (
	DecisionSafe    DecisionStatus = "safe-to-decide"
	DecisionAtRisk  DecisionStatus = "decision-at-risk"
	DecisionBlocked DecisionStatus = "blocked"
)

// Confidence thresholds for the three-way classification.
const (
	decisionSafeThreshold   = 75
	decisionAtRiskThreshold = 50
)

// DecisionInfo is the full verdict for an entity: the status plus the
// fixed rationale copy attached to its branch.
type DecisionInfo struct {
	Status                DecisionStatus `json:"status"`
	Confidence            int            `json:"confidence"`
	Recommendation        string         `json:"recommendation"`
	CompletedMethods      int            `json:"completed_methods"`
	TotalMethods          int            `json:"total_methods"`
	BehavioralRisks       []string       `json:"behavioral_risks,omitempty"`
	StrategicImplications []string       `json:"strategic_implications,omitempty"`
	RecommendedActions    []string       `json:"recommended_actions,omitempty"`
}

// PersonaDecisionInfo extends DecisionInfo with persona-specific data
// point accounting.
type PersonaDecisionInfo struct {
	DecisionInfo
	VerifiedAssumptions int `json:"verified_assumptions"`
	OpenQuestions       int `json:"open_questions"`
}

// CalculateDecisionStatus derives the strategic-readiness verdict from a
// method list. Confidence is the share of attached methods completed;
// each branch carries static rationale text, never generated from entity
// content.
func CalculateDecisionStatus(methods []ResearchMethod) DecisionInfo {
	total := len(methods)
	completed := CompletedCount(methods)
	confidence := CalculateQualityScore(completed, total)

	info := DecisionInfo{
		Confidence:       confidence,
		CompletedMethods: completed,
		TotalMethods:     total,
	}

	switch {
	case confidence >= decisionSafeThreshold:
		info.Status = DecisionSafe
		info.Recommendation = "This persona has strong research validation. You can confidently use it for strategic product and marketing decisions."
		info.StrategicImplications = []string{
			"Persona is ready for product roadmap planning",
			"Can guide feature prioritization decisions",
			"Validated for marketing campaign targeting",
			"Reliable for user experience design decisions",
		}
		info.RecommendedActions = []string{
			"Share persona with product and design teams",
			"Use for upcoming sprint planning and roadmaps",
			"Create persona-specific value propositions",
		}
	case confidence >= decisionAtRiskThreshold:
		info.Status = DecisionAtRisk
		info.Recommendation = "This persona has moderate validation. Complete additional research before making critical product or campaign decisions."
		info.BehavioralRisks = []string{
			"Incomplete behavioral patterns may lead to misaligned features",
			"Motivations not fully validated through real user research",
			"Demographics may not reflect actual target audience",
		}
		info.StrategicImplications = []string{
			"Use with caution for tactical decisions",
			"Avoid for major product pivots or investments",
			"Supplement with additional user research before committing",
		}
		info.RecommendedActions = []string{
			"Conduct user interviews to validate assumptions",
			"Run surveys to confirm demographics and behaviors",
			"Test messaging with real audience samples",
		}
	default:
		info.Status = DecisionBlocked
		info.Recommendation = "This persona needs significant validation. Do not use for strategic decisions until research coverage reaches at least 50%."
		info.BehavioralRisks = []string{
			"High risk of building for wrong audience",
			"Assumptions not validated with real users",
			"May result in wasted development resources",
			"Marketing campaigns may miss target audience",
		}
		info.StrategicImplications = []string{
			"Not ready for product decisions",
			"Requires foundational research before use",
			"Consider as hypothesis only, not validated insight",
		}
		info.RecommendedActions = []string{
			"Start with user interviews or surveys",
			"Validate demographics with analytics data",
			"Test core assumptions with small experiments",
			"Build research plan before committing resources",
		}
	}
	return info
}

// CalculatePersonaDecision wraps CalculateDecisionStatus with the persona
// data-point bookkeeping shown on the detail view. Ten data points across
// goals, motivations and behaviors is the target.
func CalculatePersonaDecision(p *Persona) PersonaDecisionInfo {
	info := CalculateDecisionStatus(p.ResearchMethods)
	verified := len(p.Goals) + len(p.Motivations) + len(p.Behaviors)
	open := 10 - verified
	if open < 0 {
		open = 0
	}
	return PersonaDecisionInfo{
		DecisionInfo:        info,
		VerifiedAssumptions: verified,
		OpenQuestions:       open,
	}
}

// Validation score factor weights.
const (
	weightResearchCoverage = 40
	weightDataRichness     = 30
	weightRecency          = 20
	weightParticipants     = 10

	richnessFieldCount  = 8
	participantCountCap = 50
	recencyDecayMonths  = 12
)

// CalculatePersonaValidationScore blends four weighted factors into a
// single 0-100 score: research coverage (40), data richness across eight
// profile fields (30), recency with linear decay to zero over twelve
// months (20), and total participant count capped at fifty (10). now is
// injected so recency stays deterministic under test.
func CalculatePersonaValidationScore(p *Persona, now time.Time) int {
	score := float64(p.ResearchCoverage) / 100 * weightResearchCoverage

	filled := 0
	for _, ok := range []bool{
		len(p.Goals) > 0,
		len(p.Frustrations) > 0,
		len(p.Motivations) > 0,
		len(p.Behaviors) > 0,
		strings.TrimSpace(p.Demographics.Age) != "",
		strings.TrimSpace(p.Demographics.Occupation) != "",
		strings.TrimSpace(p.Personality) != "",
		len(p.Values) > 0,
	} {
		if ok {
			filled++
		}
	}
	score += float64(filled) / richnessFieldCount * weightDataRichness

	// 30-day months, same approximation the dashboard always used.
	monthsSinceUpdate := now.Sub(p.LastUpdated).Hours() / 24 / 30
	recency := 1 - monthsSinceUpdate/recencyDecayMonths
	if recency < 0 {
		recency = 0
	}
	score += recency * weightRecency

	participants := float64(TotalParticipants(p.ResearchMethods)) / participantCountCap
	if participants > 1 {
		participants = 1
	}
	score += participants * weightParticipants

	return int(math.Round(score))
}

// DecisionStatusConfig is the static presentation record for a verdict.
type DecisionStatusConfig struct {
	Label        string `json:"label"`
	Icon         string `json:"icon"`
	Description  string `json:"description"`
	Risk         string `json:"risk"`
	CanProceed   bool   `json:"can_proceed"`
	WarningLevel string `json:"warning_level"`
}

var decisionStatusConfigs = map[DecisionStatus]DecisionStatusConfig{
	DecisionSafe: {
		Label:        "Safe to Decide",
		Icon:         "check",
		Description:  "Sufficient research completed to make informed strategic decisions",
		Risk:         "Minimal risk - decisions are backed by validated research",
		CanProceed:   true,
		WarningLevel: "none",
	},
	DecisionAtRisk: {
		Label:        "Proceed with Caution",
		Icon:         "warning",
		Description:  "Partial research coverage - proceed with caution",
		Risk:         "Moderate risk - decisions may lack critical strategic insights",
		CanProceed:   true,
		WarningLevel: "warning",
	},
	DecisionBlocked: {
		Label:        "Complete Research First",
		Icon:         "dot",
		Description:  "Insufficient research to make strategic decisions",
		Risk:         "High risk - decisions would be speculative without proper validation",
		CanProceed:   false,
		WarningLevel: "critical",
	},
}

// DecisionStatusConfigFor returns the static config for a verdict.
func DecisionStatusConfigFor(status DecisionStatus) DecisionStatusConfig {
	if cfg, ok := decisionStatusConfigs[status]; ok {
		return cfg
	}
	return decisionStatusConfigs[DecisionBlocked]
}

// methodRanking orders method types by strategic value; lower ranks carry
// more decision weight. Unknown types rank last.
var methodRanking = map[string]int{
	MethodWorkshop:      1,
	MethodInterviews:    2,
	MethodQuestionnaire: 3,
	MethodAIExploration: 4,
}

const unrankedMethod = 999

// RankedDecisionInfo is the verdict of the ranked variant used by the
// workspace rollup: it weighs which methods completed, not just how many.
type RankedDecisionInfo struct {
	Status              DecisionStatus `json:"status"`
	Coverage            int            `json:"coverage"`
	CompletedMethods    []string       `json:"completed_methods"`
	TopMethodsCompleted bool           `json:"top_methods_completed"`
	MissingTopMethods   []string       `json:"missing_top_methods,omitempty"`
	Recommendation      string         `json:"recommendation"`
	Risk                string         `json:"risk"`
	NextSteps           []string       `json:"next_steps"`
}

// CalculateRankedDecisionStatus classifies by coverage plus completion of
// the two highest-ranked attached methods: safe needs coverage of at
// least 80 and both top methods done; 50-79 coverage is at-risk; below 50
// is blocked.
func CalculateRankedDecisionStatus(methods []ResearchMethod) RankedDecisionInfo {
	total := len(methods)
	completedTypes := make([]string, 0, total)
	completed := 0
	for _, m := range methods {
		if m.Status == MethodCompleted {
			completed++
			completedTypes = append(completedTypes, m.Type)
		}
	}
	coverage := CalculateQualityScore(completed, total)

	ranked := make([]ResearchMethod, len(methods))
	copy(ranked, methods)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankOf(ranked[i].Type) < rankOf(ranked[j].Type)
	})
	top := ranked
	if len(top) > 2 {
		top = top[:2]
	}
	topCompleted := true
	missing := []string{}
	for _, m := range top {
		if m.Status != MethodCompleted {
			topCompleted = false
			missing = append(missing, m.Type)
		}
	}

	info := RankedDecisionInfo{
		Coverage:            coverage,
		CompletedMethods:    completedTypes,
		TopMethodsCompleted: topCompleted,
		MissingTopMethods:   missing,
	}

	switch {
	case coverage >= 80 && topCompleted:
		info.Status = DecisionSafe
		info.Recommendation = "You have sufficient validated research to make confident strategic decisions."
		info.Risk = "Minimal risk - your decisions are backed by comprehensive research."
		info.NextSteps = []string{
			"Proceed with confidence to strategy tools",
			"Consider additional validation if needed",
			"Document key insights before strategizing",
		}
	case coverage >= 50:
		info.Status = DecisionAtRisk
		if !topCompleted {
			info.Recommendation = "Complete the highest-ranked research methods (" + strings.Join(missing, ", ") + ") for better decision quality."
			info.Risk = "Moderate risk - missing critical strategic research methods."
		} else {
			info.Recommendation = "Increase research coverage to 80% for fully validated decisions."
			info.Risk = "Moderate risk - decisions may lack depth without additional research."
		}
		step := "Complete remaining research methods"
		if len(missing) > 0 {
			step = "Complete " + strings.Join(missing, " and ")
		}
		info.NextSteps = []string{
			step,
			"Reach 80% coverage for safe decision-making",
			"Consider the strategic importance of missing methods",
		}
	default:
		info.Status = DecisionBlocked
		info.Recommendation = "Critical: Complete core research before making strategic decisions."
		info.Risk = "High risk - decisions would be speculative without proper validation."
		info.NextSteps = []string{
			"Start with Workshop and 1-on-1 Interviews (highest strategic value)",
			"Reach minimum 50% research coverage",
			"Validate core assumptions before proceeding",
		}
	}
	return info
}

func rankOf(methodType string) int {
	if r, ok := methodRanking[methodType]; ok {
		return r
	}
	return unrankedMethod
}
