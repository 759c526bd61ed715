package services

import "testing"

func TestCalculateQualityScore(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{3, 0, 0},
		{0, 4, 0},
		{1, 4, 25},
		{2, 4, 50},
		{3, 4, 75},
		{4, 4, 100},
		{1, 3, 33},
		{2, 3, 67},
		{2, 6, 33},
		{5, 3, 100},  // completed above total clamps, never errors
		{-2, 4, 0},   // negative completed clamps to zero
		{0, -1, 0},   // negative total reads as no methods
	}
	for _, c := range cases {
		if got := CalculateQualityScore(c.completed, c.total); got != c.want {
			t.Fatalf("CalculateQualityScore(%d,%d)=%d, want %d", c.completed, c.total, got, c.want)
		}
	}
}

func TestQualityScoreBounded(t *testing.T) {
	for total := 0; total <= 12; total++ {
		for completed := 0; completed <= total; completed++ {
			got := CalculateQualityScore(completed, total)
			if got < 0 || got > 100 {
				t.Fatalf("score out of range: CalculateQualityScore(%d,%d)=%d", completed, total, got)
			}
		}
	}
}

func TestQualityScoreMonotonic(t *testing.T) {
	for total := 1; total <= 10; total++ {
		prev := -1
		for completed := 0; completed <= total; completed++ {
			got := CalculateQualityScore(completed, total)
			if got < prev {
				t.Fatalf("score decreased at (%d,%d): %d < %d", completed, total, got, prev)
			}
			prev = got
		}
	}
}

func TestQualityLevelBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  QualityLevel
	}{
		{0, QualityCritical},
		{19, QualityCritical},
		{20, QualityLow},
		{39, QualityLow},
		{40, QualityBasic},
		{59, QualityBasic},
		{60, QualityGood},
		{79, QualityGood},
		{80, QualityExcellent},
		{94, QualityExcellent},
		{95, QualityPerfect},
		{100, QualityPerfect},
	}
	for _, c := range cases {
		if got := QualityLevelFor(c.score); got != c.want {
			t.Fatalf("QualityLevelFor(%d)=%s, want %s", c.score, got, c.want)
		}
	}
}

// Every integer score must map to exactly one tier, and the tier's
// configured range must contain it.
func TestQualityLevelPartition(t *testing.T) {
	for score := 0; score <= 100; score++ {
		level := QualityLevelFor(score)
		cfg := QualityConfigFor(score)
		if cfg.Level != level {
			t.Fatalf("config level mismatch at %d: %s vs %s", score, cfg.Level, level)
		}
		if score < cfg.MinScore || score > cfg.MaxScore {
			t.Fatalf("score %d outside configured range of %s [%d,%d]", score, level, cfg.MinScore, cfg.MaxScore)
		}
	}
}

func TestCalculateQualityLevel(t *testing.T) {
	if got := CalculateQualityLevel(0, 0); got != QualityCritical {
		t.Fatalf("zero total should classify critical, got %s", got)
	}
	if got := CalculateQualityLevel(4, 4); got != QualityPerfect {
		t.Fatalf("full completion should classify perfect, got %s", got)
	}
	if got := CalculateQualityLevel(2, 4); got != QualityBasic {
		t.Fatalf("half completion should classify basic, got %s", got)
	}
}

func TestQualityMessageFor(t *testing.T) {
	for _, level := range []QualityLevel{QualityCritical, QualityLow, QualityBasic, QualityGood, QualityExcellent, QualityPerfect} {
		msg := QualityMessageFor(level)
		if msg.Title == "" || msg.Message == "" || msg.Action == "" {
			t.Fatalf("incomplete message for %s: %+v", level, msg)
		}
	}
	if got := QualityMessageFor("bogus"); got != qualityMessages[QualityCritical] {
		t.Fatalf("unknown level should fall back to critical copy")
	}
}
