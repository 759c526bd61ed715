package services

import "math"

// QualityLevel is the discrete tier a quality score falls into.
type QualityLevel string

const (
	QualityCritical  QualityLevel = "critical"  // 0-19
	QualityLow       QualityLevel = "low"       // 20-39
	QualityBasic     QualityLevel = "basic"     // 40-59
	QualityGood      QualityLevel = "good"      // 60-79
	QualityExcellent QualityLevel = "excellent" // 80-94
	QualityPerfect   QualityLevel = "perfect"   // 95-100
)

// Quality thresholds used across the dashboard.
const (
	QualityMinimumAcceptable = 40
	QualityRecommended       = 60
	QualityHighConfidence    = 80
	QualityPerfectThreshold  = 95
)

// QualityConfig is the static presentation record for a quality tier. The
// UI renders badges and tooltips straight from these values; nothing here
// is computed from entity content.
type QualityConfig struct {
	Level       QualityLevel `json:"level"`
	Label       string       `json:"label"`
	ShortLabel  string       `json:"short_label"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
	Color       string       `json:"color"`
	BgColor     string       `json:"bg_color"`
	TextColor   string       `json:"text_color"`
	MinScore    int          `json:"min_score"`
	MaxScore    int          `json:"max_score"`
}

// QualityMessage is the tooltip copy for a quality tier.
type QualityMessage struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

var qualityConfigs = map[QualityLevel]QualityConfig{
	QualityCritical: {
		Level:       QualityCritical,
		Label:       "Critical Quality Issues",
		ShortLabel:  "Critical",
		Description: "Unreliable data - immediate attention required",
		Icon:        "alert-triangle",
		Color:       "#DC2626",
		BgColor:     "#FEE2E2",
		TextColor:   "#991B1B",
		MinScore:    0,
		MaxScore:    19,
	},
	QualityLow: {
		Level:       QualityLow,
		Label:       "Low Quality",
		ShortLabel:  "Low",
		Description: "Needs significant improvement",
		Icon:        "alert-circle",
		Color:       "#EA580C",
		BgColor:     "#FFEDD5",
		TextColor:   "#C2410C",
		MinScore:    20,
		MaxScore:    39,
	},
	QualityBasic: {
		Level:       QualityBasic,
		Label:       "Basic Quality",
		ShortLabel:  "Basic",
		Description: "Acceptable but room for improvement",
		Icon:        "check-circle",
		Color:       "#EAB308",
		BgColor:     "#FEF9C3",
		TextColor:   "#A16207",
		MinScore:    40,
		MaxScore:    59,
	},
	QualityGood: {
		Level:       QualityGood,
		Label:       "Good Quality",
		ShortLabel:  "Good",
		Description: "Solid quality with high confidence",
		Icon:        "shield",
		Color:       "#1FD1B2",
		BgColor:     "#D1FAE5",
		TextColor:   "#065F46",
		MinScore:    60,
		MaxScore:    79,
	},
	QualityExcellent: {
		Level:       QualityExcellent,
		Label:       "Excellent Quality",
		ShortLabel:  "Excellent",
		Description: "Exceptional quality with very high confidence",
		Icon:        "award",
		Color:       "#5252E3",
		BgColor:     "#DBEAFE",
		TextColor:   "#1E40AF",
		MinScore:    80,
		MaxScore:    94,
	},
	QualityPerfect: {
		Level:       QualityPerfect,
		Label:       "Perfect Quality",
		ShortLabel:  "Perfect",
		Description: "Maximum quality - fully validated and verified",
		Icon:        "crown",
		Color:       "#9333EA",
		BgColor:     "#F3E8FF",
		TextColor:   "#6B21A8",
		MinScore:    95,
		MaxScore:    100,
	},
}

var qualityMessages = map[QualityLevel]QualityMessage{
	QualityCritical: {
		Title:   "Critical Quality Issues",
		Message: "This data is unreliable and should not be used for decision making.",
		Action:  "Complete validation methods immediately",
	},
	QualityLow: {
		Title:   "Low Quality Data",
		Message: "Significant improvements needed before this can be trusted.",
		Action:  "Add more validation methods",
	},
	QualityBasic: {
		Title:   "Basic Quality",
		Message: "Acceptable for initial exploration but needs more validation.",
		Action:  "Improve quality for better insights",
	},
	QualityGood: {
		Title:   "Good Quality",
		Message: "Solid quality with reliable insights for decision making.",
		Action:  "Optional: Add more validation for higher confidence",
	},
	QualityExcellent: {
		Title:   "Excellent Quality",
		Message: "Very high quality with exceptional confidence in insights.",
		Action:  "Quality is excellent - ready for strategic decisions",
	},
	QualityPerfect: {
		Title:   "Perfect Quality",
		Message: "Maximum quality achieved - fully validated and verified.",
		Action:  "Perfect quality - maintain and monitor",
	},
}

// CalculateQualityScore maps completion counts to a 0-100 score. A zero or
// negative total means no methods are defined, which yields 0 rather than
// a division error. Inconsistent inputs (negative completed, completed
// above total) are clamped, never rejected; callers feed unverified
// view-layer data.
func CalculateQualityScore(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed < 0 {
		completed = 0
	}
	score := int(math.Round(float64(completed) / float64(total) * 100))
	if score > 100 {
		score = 100
	}
	return score
}

// QualityLevelFor classifies a score into its tier. Total over all
// integers: scores above 100 classify as perfect, below 0 as critical.
func QualityLevelFor(score int) QualityLevel {
	switch {
	case score >= QualityPerfectThreshold:
		return QualityPerfect
	case score >= QualityHighConfidence:
		return QualityExcellent
	case score >= QualityRecommended:
		return QualityGood
	case score >= QualityMinimumAcceptable:
		return QualityBasic
	case score >= 20:
		return QualityLow
	default:
		return QualityCritical
	}
}

// QualityConfigFor returns the static tier config for a score.
func QualityConfigFor(score int) QualityConfig {
	return qualityConfigs[QualityLevelFor(score)]
}

// QualityMessageFor returns the tooltip copy for a tier.
func QualityMessageFor(level QualityLevel) QualityMessage {
	if msg, ok := qualityMessages[level]; ok {
		return msg
	}
	return qualityMessages[QualityCritical]
}

// CalculateQualityLevel derives a tier straight from completion counts.
// Zero total classifies as critical.
func CalculateQualityLevel(completed, total int) QualityLevel {
	if total <= 0 {
		return QualityCritical
	}
	return QualityLevelFor(CalculateQualityScore(completed, total))
}
