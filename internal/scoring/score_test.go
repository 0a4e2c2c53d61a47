package scoring

import "testing"

func TestFinalRiskClampAndBoost(t *testing.T) {
	cases := []struct {
		behavior  int
		deception bool
		boost     int
		want      int
	}{
		{behavior: 1, deception: false, boost: 30, want: 1},
		{behavior: 40, deception: true, boost: 30, want: 70},
		{behavior: 82, deception: true, boost: 30, want: 100},
		{behavior: 100, deception: false, boost: 30, want: 100},
		{behavior: 150, deception: false, boost: 30, want: 100},
		{behavior: -5, deception: false, boost: 30, want: 0},
		{behavior: 50, deception: true, boost: -10, want: 50},
	}
	for _, c := range cases {
		if got := FinalRisk(c.behavior, c.deception, c.boost); got != c.want {
			t.Fatalf("FinalRisk(%d,%v,%d)=%d want=%d", c.behavior, c.deception, c.boost, got, c.want)
		}
	}
}

func TestFinalRiskMonotonic(t *testing.T) {
	prev := -1
	for s := 0; s <= 100; s++ {
		plain := FinalRisk(s, false, 30)
		boosted := FinalRisk(s, true, 30)
		if plain < prev {
			t.Fatalf("risk decreased at behavior=%d: prev=%d got=%d", s, prev, plain)
		}
		if boosted < plain {
			t.Fatalf("deception lowered risk at behavior=%d: plain=%d boosted=%d", s, plain, boosted)
		}
		if boosted < 0 || boosted > 100 {
			t.Fatalf("risk out of range at behavior=%d: %d", s, boosted)
		}
		prev = plain
	}
}

func TestVerdictThresholds(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		risk      int
		deception bool
		want      string
	}{
		{risk: 10, deception: false, want: VerdictCleared},
		{risk: 54, deception: false, want: VerdictCleared},
		{risk: 55, deception: false, want: VerdictQuarantined},
		{risk: 79, deception: false, want: VerdictQuarantined},
		{risk: 80, deception: false, want: VerdictBlocked},
		{risk: 5, deception: true, want: VerdictBlocked},
	}
	for _, c := range cases {
		got, rationale := Verdict(c.risk, c.deception, th)
		if got != c.want {
			t.Fatalf("Verdict(%d,%v)=%s want=%s", c.risk, c.deception, got, c.want)
		}
		if rationale == "" {
			t.Fatalf("Verdict(%d,%v) returned empty rationale", c.risk, c.deception)
		}
	}
}

func TestActionAndColor(t *testing.T) {
	if got := Action(VerdictBlocked); got != "Block & contain" {
		t.Fatalf("Action(BLOCKED)=%q", got)
	}
	if got := Action(VerdictQuarantined); got != "Quarantine for review" {
		t.Fatalf("Action(QUARANTINED)=%q", got)
	}
	if got := Action(VerdictCleared); got != "Allow" {
		t.Fatalf("Action(CLEARED)=%q", got)
	}
	if got := RiskColor(80); got != ColorBlocked {
		t.Fatalf("RiskColor(80)=%s want=%s", got, ColorBlocked)
	}
	if got := RiskColor(55); got != ColorQuarantined {
		t.Fatalf("RiskColor(55)=%s want=%s", got, ColorQuarantined)
	}
	if got := RiskColor(54); got != ColorCleared {
		t.Fatalf("RiskColor(54)=%s want=%s", got, ColorCleared)
	}
}

func TestBehaviorFlags(t *testing.T) {
	rules := DefaultFlagRules()

	t.Run("below_all_thresholds", func(t *testing.T) {
		if got := BehaviorFlags(35, rules); len(got) != 0 {
			t.Fatalf("expected no flags at 35, got %v", got)
		}
	})

	t.Run("strictly_above_is_required", func(t *testing.T) {
		if got := BehaviorFlags(56, rules); len(got) != 2 {
			t.Fatalf("expected 2 flags at 56, got %v", got)
		}
	})

	t.Run("all_thresholds_in_order", func(t *testing.T) {
		reversed := []FlagRule{rules[2], rules[1], rules[0]}
		got := BehaviorFlags(76, reversed)
		if len(got) != 3 {
			t.Fatalf("expected 3 flags at 76, got %v", got)
		}
		if got[0] != rules[0].Text || got[2] != rules[2].Text {
			t.Fatalf("flags not ordered by threshold: %v", got)
		}
	})
}
