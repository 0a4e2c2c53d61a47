package generator

import "github.com/solardome/preclear-demo/internal/report"

var socToolSources = []string{"EDR", "SIEM", "Email Gateway", "CASB", "IAM", "Firewall", "Proxy", "DLP"}

var socAlertTitles = []string{
	"Suspicious PowerShell activity",
	"Unusual login location",
	"New device registered",
	"Multiple failed login attempts",
	"Possible phishing link clicked",
	"Outbound connection to unknown domain",
	"Rare process execution",
	"OAuth consent granted to new app",
	"Anomalous file download volume",
	"New admin permission assigned",
	"DNS query to newly registered domain",
	"Credential stuffing pattern suspected",
}

// Repeated entries weight the draw towards Medium.
var socSeverities = []string{"Low", "Medium", "Medium", "High", "Low", "Medium"}

// socNoise fabricates the alert flood a traditional SOC would see for the
// same artifact. Callers hold g.mu.
func (g *Generator) socNoise() []report.SOCAlert {
	count := g.between(g.pol.SOCNoise.MinAlerts, g.pol.SOCNoise.MaxAlerts)
	alerts := make([]report.SOCAlert, 0, count)
	for i := 0; i < count; i++ {
		alerts = append(alerts, report.SOCAlert{
			Tool:     socToolSources[g.src.IntN(len(socToolSources))],
			Severity: socSeverities[g.src.IntN(len(socSeverities))],
			Title:    socAlertTitles[g.src.IntN(len(socAlertTitles))],
		})
	}
	return alerts
}
