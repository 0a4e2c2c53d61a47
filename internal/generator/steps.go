package generator

import "github.com/solardome/preclear-demo/internal/scoring"

const (
	stepIngress    = "INGRESS_CAPTURED"
	stepSandbox    = "SANDBOX_EXECUTED"
	stepScored     = "INDICATORS_SCORED"
	stepDeception  = "DECEPTION_ACCESSED"
	stepRiskEngine = "RISK_ENGINE_VERDICT"
)

func stepCatalog() map[string]string {
	return map[string]string{
		stepIngress:    "Ingress captured and artifact extracted",
		stepSandbox:    "Behavioral sandbox executed (simulated)",
		stepScored:     "Behavioral indicators scored",
		stepDeception:  "Deception asset accessed → confirmed malicious intent",
		stepRiskEngine: "Risk engine produced verdict",
	}
}

// interceptionSteps builds the narrative timeline. The deception step only
// appears when deception fired; the last step always names the action.
func interceptionSteps(deception bool, verdict string) []string {
	ids := []string{stepIngress, stepSandbox, stepScored}
	if deception {
		ids = append(ids, stepDeception)
	}
	ids = append(ids, stepRiskEngine)
	return renderSteps(ids, verdict)
}

// demoSteps skips the scoring step: the scripted demo goes straight from
// sandbox to the deception tripwire.
func demoSteps() []string {
	return renderSteps([]string{stepIngress, stepSandbox, stepDeception, stepRiskEngine}, scoring.VerdictBlocked)
}

func renderSteps(ids []string, verdict string) []string {
	catalog := stepCatalog()
	out := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		out = append(out, catalog[id])
	}
	return append(out, "Automated action: "+scoring.Action(verdict))
}
