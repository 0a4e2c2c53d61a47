package report

import "time"

const (
	SourceUpload = "upload"
	SourceDemo   = "demo"
)

// TimeLayout is how CreatedAt is shown on pages and in history.
const TimeLayout = "2006-01-02 15:04:05"

type SOCAlert struct {
	Tool     string `json:"tool"`
	Severity string `json:"sev"`
	Title    string `json:"title"`
}

// Report is immutable once generated. Handlers share it by value; Clone
// copies the slices so callers cannot alias stored state.
type Report struct {
	ID                 string     `json:"report_id"`
	CreatedAt          time.Time  `json:"created_at"`
	Source             string     `json:"source"`
	Filename           string     `json:"filename"`
	SizeBytes          int        `json:"size_bytes"`
	SHA256             string     `json:"sha256,omitempty"`
	BehaviorScore      int        `json:"behavior_score"`
	DeceptionTriggered bool       `json:"deception_triggered"`
	FinalRisk          int        `json:"final_risk"`
	Verdict            string     `json:"verdict"`
	Rationale          string     `json:"rationale"`
	Flags              []string   `json:"flags"`
	Steps              []string   `json:"steps"`
	SOCAlerts          []SOCAlert `json:"soc_alerts"`
}

func (r Report) Clone() Report {
	out := r
	out.Flags = append([]string(nil), r.Flags...)
	out.Steps = append([]string(nil), r.Steps...)
	out.SOCAlerts = append([]SOCAlert(nil), r.SOCAlerts...)
	return out
}

// Summary is the history/API listing row.
type Summary struct {
	ID        string `json:"report_id"`
	CreatedAt string `json:"created_at"`
	Source    string `json:"source"`
	Filename  string `json:"filename"`
	Verdict   string `json:"verdict"`
	FinalRisk int    `json:"final_risk"`
}

func (r Report) Summary() Summary {
	return Summary{
		ID:        r.ID,
		CreatedAt: r.CreatedAt.Format(TimeLayout),
		Source:    r.Source,
		Filename:  r.Filename,
		Verdict:   r.Verdict,
		FinalRisk: r.FinalRisk,
	}
}
