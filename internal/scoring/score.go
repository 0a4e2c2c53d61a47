package scoring

import "sort"

const (
	VerdictCleared     = "CLEARED"
	VerdictQuarantined = "QUARANTINED"
	VerdictBlocked     = "BLOCKED"
)

const (
	ColorBlocked     = "#B00020"
	ColorQuarantined = "#B26A00"
	ColorCleared     = "#0B6E4F"
)

type Thresholds struct {
	QuarantineFloor int
	BlockFloor      int
}

type FlagRule struct {
	Above int
	Text  string
}

func DefaultThresholds() Thresholds {
	return Thresholds{QuarantineFloor: 55, BlockFloor: 80}
}

func DefaultFlagRules() []FlagRule {
	return []FlagRule{
		{Above: 35, Text: "Observed suspicious script execution pattern"},
		{Above: 55, Text: "Outbound network callback behavior detected"},
		{Above: 75, Text: "Privilege escalation / credential access behavior"},
	}
}

// FinalRisk adds boost when deception fired and clamps to [0,100]. A negative
// boost is treated as zero so the result never drops when deception fires.
func FinalRisk(behaviorScore int, deceptionTriggered bool, boost int) int {
	risk := clamp(behaviorScore, 0, 100)
	if deceptionTriggered && boost > 0 {
		risk += boost
	}
	return clamp(risk, 0, 100)
}

// Verdict maps a risk score to a verdict. Deception always blocks.
func Verdict(finalRisk int, deceptionTriggered bool, th Thresholds) (string, string) {
	if deceptionTriggered {
		return VerdictBlocked, "Deception trigger indicates confirmed malicious intent."
	}
	if finalRisk >= th.BlockFloor {
		return VerdictBlocked, "High-confidence malicious behavioral indicators."
	}
	if finalRisk >= th.QuarantineFloor {
		return VerdictQuarantined, "Suspicious indicators; requires further validation."
	}
	return VerdictCleared, "No significant malicious behavior detected."
}

func Action(verdict string) string {
	switch verdict {
	case VerdictBlocked:
		return "Block & contain"
	case VerdictQuarantined:
		return "Quarantine for review"
	default:
		return "Allow"
	}
}

func ConfidenceSignal(deceptionTriggered bool) string {
	if deceptionTriggered {
		return "Deception trigger (deterministic)"
	}
	return "Behavioral correlation (scored)"
}

// RiskColor uses the default thresholds so the colour bands stay stable
// across policies.
func RiskColor(finalRisk int) string {
	th := DefaultThresholds()
	switch {
	case finalRisk >= th.BlockFloor:
		return ColorBlocked
	case finalRisk >= th.QuarantineFloor:
		return ColorQuarantined
	default:
		return ColorCleared
	}
}

// BehaviorFlags returns the texts of every rule whose threshold the score
// strictly exceeds, in ascending threshold order.
func BehaviorFlags(score int, rules []FlagRule) []string {
	sorted := append([]FlagRule(nil), rules...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Above < sorted[j].Above })
	flags := []string{}
	for _, r := range sorted {
		if score > r.Above {
			flags = append(flags, r.Text)
		}
	}
	return flags
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
