package report

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/solardome/preclear-demo/internal/scoring"
)

const productName = "PreClear"

type RenderOptions struct {
	// MaxReports is quoted on the history and not-found pages.
	MaxReports int
	// SOCPreviewLimit caps the rows shown in the traditional SOC table.
	SOCPreviewLimit int
	CloudDemoURL    string
	// LogoPath is an optional image under /static; a CSS mark is drawn
	// when empty.
	LogoPath string
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		MaxReports:      20,
		SOCPreviewLimit: 12,
	}
}

type Renderer struct {
	opts RenderOptions
}

func NewRenderer(opts RenderOptions) *Renderer {
	if opts.SOCPreviewLimit < 0 {
		opts.SOCPreviewLimit = 0
	}
	return &Renderer{opts: opts}
}

func (r *Renderer) Home(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`<div class="grid"><div class="card"><h2>Upload Artifact for Pre-Ingress Analysis</h2>`)
	b.WriteString(`<p class="subtle">Upload any file to generate an analysis report (behavioral signals + deception trigger + risk verdict).</p>`)
	if r.opts.CloudDemoURL != "" {
		fmt.Fprintf(&b, `<div class="actions"><a class="btn-link secondary" href="%s" target="_blank" rel="noopener noreferrer">Open Cloud Demo</a></div>`, esc(r.opts.CloudDemoURL))
	}
	b.WriteString(`<div class="metrics">`)
	for _, m := range homeMetrics {
		fmt.Fprintf(&b, `<div class="metric"><div class="k">%s</div><div class="v">%s</div><div class="s">%s</div></div>`, esc(m[0]), esc(m[1]), esc(m[2]))
	}
	b.WriteString(`</div><hr/>`)
	b.WriteString(`<form action="/demo" method="get"><button type="submit">Run Investor Demo Mode</button></form>`)
	b.WriteString(`<p class="subtle">Fully automated replay + detection sequence.</p>`)
	b.WriteString(`<form class="upload" action="/analyze" enctype="multipart/form-data" method="post"><input name="file" type="file" required /><button type="submit">Analyze &amp; Generate Report</button></form>`)
	b.WriteString(`</div><div class="card"><h2>What This Demonstrates</h2><ul class="timeline">`)
	for _, item := range []string{
		"Early-stage detection posture",
		"Behavior-based scoring (sandbox)",
		"High-confidence signal (deception)",
		"Traditional SOC noise vs " + productName + " clarity",
	} {
		fmt.Fprintf(&b, "<li>%s</li>", esc(item))
	}
	b.WriteString(`</ul><hr/><p class="subtle">JSON API: <a href="/api/reports">/api/reports</a></p></div></div>`)
	return r.page(w, "Upload → Report", b.String())
}

var homeMetrics = [][3]string{
	{"Time to Decision", "~3s", "Automated correlation + verdict"},
	{"Alert Reduction", "90%+", "Fewer, higher-confidence signals"},
	{"Confidence Signal", "Deception", "Deterministic tripwires reduce false positives"},
	{"Outcome", "Pre-Ingress", "Stops threats before compromise"},
}

func (r *Renderer) Report(w io.Writer, rep Report) error {
	color := scoring.RiskColor(rep.FinalRisk)
	riskPct := clampPct(rep.FinalRisk)

	var b strings.Builder
	b.WriteString(`<div class="grid"><div class="card"><h2>Analysis Report</h2><p class="subtle">`)
	fmt.Fprintf(&b, `Artifact: <span class="mono">%s</span><br/>`, esc(rep.Filename))
	fmt.Fprintf(&b, `Report ID: <span class="mono">%s</span><br/>`, esc(rep.ID))
	fmt.Fprintf(&b, `Generated: <span class="mono">%s</span>`, esc(rep.CreatedAt.Format(TimeLayout)))
	if rep.SHA256 != "" {
		fmt.Fprintf(&b, `<br/>SHA-256: <span class="mono">%s</span> (%d bytes)`, esc(rep.SHA256), rep.SizeBytes)
	}
	b.WriteString(`</p>`)

	fmt.Fprintf(&b, `<div class="verdict"><span class="badge-dot" style="background:%s;"></span>Verdict: <span style="color:%s;">%s</span></div>`, color, color, esc(rep.Verdict))
	fmt.Fprintf(&b, `<p class="subtle">%s</p>`, esc(rep.Rationale))

	deceptionNote := ""
	if rep.DeceptionTriggered {
		deceptionNote = " • Deception Triggered"
	}
	fmt.Fprintf(&b, `<div class="progress"><div class="subtle">Final Risk Score: <span class="mono">%d/100</span>%s</div><div class="bar"><div style="width:%d%%; background:%s;"></div></div></div>`, rep.FinalRisk, esc(deceptionNote), riskPct, color)
	fmt.Fprintf(&b, `<div class="kv"><div class="item"><div class="label">Behavior Score</div><div class="value">%d/100</div></div><div class="item"><div class="label">Deception Triggered</div><div class="value">%s</div></div></div>`, rep.BehaviorScore, yesNo(rep.DeceptionTriggered))

	b.WriteString(`<hr/><h2>Behavioral Indicators</h2><ul class="timeline">`)
	if len(rep.Flags) == 0 {
		b.WriteString("<li>No significant behavioral flags.</li>")
	}
	for _, f := range rep.Flags {
		fmt.Fprintf(&b, "<li>%s</li>", esc(f))
	}
	b.WriteString(`</ul><hr/><h2>Threat Interception Timeline</h2><ol class="timeline">`)
	for _, s := range rep.Steps {
		fmt.Fprintf(&b, "<li>%s</li>", esc(s))
	}
	b.WriteString(`</ol>`)

	r.writeSplitScreen(&b, rep)

	b.WriteString(`<hr/><div class="actions"><a class="btn-link secondary" href="/">Back to home</a><a class="btn-link secondary" href="/history">View history</a><a class="btn-link" href="/simulate">Simulate Attack (Replay)</a></div></div>`)
	b.WriteString(`<div class="card"><h2>Investor Narrative</h2><p class="subtle">` + productName + ` stops threats <b>before compromise</b> by combining early-stage signals: behavioral analysis, high-confidence deception triggers, and automated response.</p>`)
	b.WriteString(`<ul class="timeline"><li><b>Earlier:</b> before endpoint execution and lateral movement</li><li><b>Cleaner:</b> deception reduces false positives</li><li><b>Faster:</b> automation beats human triage</li></ul>`)
	b.WriteString(`<hr/><p class="subtle"><a href="/simulate">Run Attack Replay</a></p></div></div>`)
	return r.page(w, "Report Generated", b.String())
}

func (r *Renderer) writeSplitScreen(b *strings.Builder, rep Report) {
	b.WriteString(`<hr/><h2>Why ` + productName + ` Matters (Split Screen)</h2>`)
	b.WriteString(`<p class="subtle">Traditional tools generate many ambiguous alerts; ` + productName + ` produces fewer, higher-confidence signals and an immediate action.</p>`)
	b.WriteString(`<div class="split"><div class="panel"><h3>Traditional SOC View (Noise)</h3><table class="table"><thead><tr><th>Source</th><th>Sev</th><th>Alert</th></tr></thead><tbody>`)
	shown := rep.SOCAlerts
	if len(shown) > r.opts.SOCPreviewLimit {
		shown = shown[:r.opts.SOCPreviewLimit]
	}
	for _, a := range shown {
		fmt.Fprintf(b, `<tr><td class="mono">%s</td><td><span class="tag">%s</span></td><td>%s</td></tr>`, esc(a.Tool), esc(a.Severity), esc(a.Title))
	}
	fmt.Fprintf(b, `</tbody></table><p class="subtle">+ %d more alerts requiring triage…</p></div>`, len(rep.SOCAlerts)-len(shown))

	b.WriteString(`<div class="panel"><h3>` + productName + ` View (Clarity)</h3><div class="kv">`)
	for _, kv := range [][2]string{
		{"Verdict", rep.Verdict},
		{"Action", scoring.Action(rep.Verdict)},
		{"Confidence Signal", scoring.ConfidenceSignal(rep.DeceptionTriggered)},
		{"Time to Decision", "Seconds (automated)"},
	} {
		fmt.Fprintf(b, `<div class="item"><div class="label">%s</div><div class="value">%s</div></div>`, esc(kv[0]), esc(kv[1]))
	}
	b.WriteString(`</div></div></div>`)
}

func (r *Renderer) History(w io.Writer, reports []Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="card"><h2>Recent Analyses (Last %d)</h2>`, r.opts.MaxReports)
	b.WriteString(`<p class="subtle">Reports are stored in memory and reset when the server restarts.</p>`)
	b.WriteString(`<table class="table"><thead><tr><th>Time</th><th>Artifact</th><th>Verdict</th><th>Risk</th><th></th></tr></thead><tbody>`)
	if len(reports) == 0 {
		b.WriteString(`<tr><td colspan="5" class="subtle">No reports yet.</td></tr>`)
	}
	for _, rep := range reports {
		s := rep.Summary()
		fmt.Fprintf(&b, `<tr><td class="mono">%s</td><td class="mono">%s</td><td><span class="tag">%s</span></td><td class="mono">%d/100</td><td><a href="/report/%s">Open</a></td></tr>`, esc(s.CreatedAt), esc(s.Filename), esc(s.Verdict), s.FinalRisk, esc(s.ID))
	}
	b.WriteString(`</tbody></table><hr/><div class="actions"><a class="btn-link secondary" href="/">Back to Home</a></div></div>`)
	return r.page(w, "History", b.String())
}

func (r *Renderer) NotFound(w io.Writer, id string) error {
	var b strings.Builder
	b.WriteString(`<div class="card"><h2>Report not found</h2>`)
	fmt.Fprintf(&b, `<p class="subtle">Report <span class="mono">%s</span> may have expired (history keeps the last %d).</p>`, esc(id), r.opts.MaxReports)
	b.WriteString(`<p class="subtle"><a href="/history">Back to history</a></p></div>`)
	return r.page(w, "Not Found", b.String())
}

type replayStep struct {
	Title       string
	Description string
}

var replaySteps = []replayStep{
	{"Reconnaissance", "Attacker enumerates exposed services and targets identities."},
	{"Credential Testing", "Password spraying / token probing begins (low-and-slow)."},
	{"Payload Staging", "Malicious content is prepared for delivery (file/link)."},
	{productName + " Behavioral Sandbox", "Artifact detonated in isolation; behaviors recorded."},
	{"Deception Tripwire", "Decoy identity / token accessed → high-confidence intent."},
	{"Risk Engine Correlation", "Signals fused → confidence raised → verdict produced."},
	{"Automated Action", "Block/quarantine + notify SIEM/SOC + optional token revoke."},
	{"Outcome", "Threat stopped before reaching internal systems."},
}

// Simulate renders the scripted attack replay. The animation is client-side
// only; nothing is generated or stored.
func (r *Renderer) Simulate(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`<div class="grid"><div class="card"><h2>Attack Replay (Simulated)</h2>`)
	b.WriteString(`<p class="subtle">This replay illustrates how ` + productName + ` intercepts attacker intent <b>before compromise</b>. It is a narrative simulation designed for investor and design-partner demos.</p>`)
	b.WriteString(`<div class="replay-controls"><button type="button" onclick="startReplay()">Start Replay</button><button type="button" class="secondary" onclick="resetReplay()">Reset</button><span class="pill" id="replayStatus">Ready</span></div><div class="replay">`)
	for _, s := range replaySteps {
		fmt.Fprintf(&b, `<div class="replay-step" data-step><div class="replay-left"><div class="replay-dot"></div><div class="replay-line"></div></div><div class="replay-body"><div class="replay-title">%s</div><div class="replay-desc">%s</div></div></div>`, esc(s.Title), esc(s.Description))
	}
	b.WriteString(`</div><hr/><div class="actions"><a class="btn-link secondary" href="/">Back to Upload</a></div></div>`)
	b.WriteString(`<div class="card"><h2>Demo Talking Points</h2><ul class="timeline"><li><b>Timing shift:</b> detection starts before endpoint execution.</li><li><b>Signal quality:</b> deception triggers reduce false positives.</li><li><b>Automation:</b> decision and action occur in seconds.</li><li><b>SOC impact:</b> fewer alerts, higher confidence, faster response.</li></ul>`)
	b.WriteString(`<hr/><p class="subtle">Tip: Run this replay first, then upload a file to generate a report.</p></div></div>`)
	b.WriteString(`<script>(function(){var timer=null;var status=document.getElementById('replayStatus');function steps(){return Array.prototype.slice.call(document.querySelectorAll('[data-step]'))}window.resetReplay=function(setReady){if(timer){clearInterval(timer);timer=null}steps().forEach(function(el){el.classList.remove('active')});if(setReady!==false){status.textContent='Ready'}};window.startReplay=function(){window.resetReplay(false);var all=steps();var i=0;status.textContent='Running…';timer=setInterval(function(){if(i>=all.length){clearInterval(timer);timer=null;status.textContent='Complete';return}all[i].classList.add('active');i++},900)}})();</script>`)
	return r.page(w, "Attack Replay", b.String())
}

type demoStage struct {
	Percent int
	Text    string
}

var demoStages = []demoStage{
	{15, "Reconnaissance detected…"},
	{30, "Behavioral sandbox executing…"},
	{50, "Deception trigger activated…"},
	{75, "Risk engine correlating signals…"},
	{95, "Generating prevention verdict…"},
}

// Demo renders the self-driving progress page that lands on /demo-report.
func (r *Renderer) Demo(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`<div class="card"><h2>Investor Demo Mode</h2><p class="subtle">Demonstrating full pre-ingress interception workflow...</p>`)
	b.WriteString(`<div id="demoStatus" class="pill">Initializing…</div><div class="progress"><div class="bar"><div id="demoBar" style="width:0%; background:var(--accent);"></div></div></div>`)
	b.WriteString(`<p class="subtle">This will automatically run the attack replay and generate a report.</p></div>`)
	b.WriteString(`<script>(function(){var bar=document.getElementById('demoBar');var status=document.getElementById('demoStatus');var stages=[`)
	for i, s := range demoStages {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{p:%d,t:%q}`, s.Percent, s.Text)
	}
	b.WriteString(`];var i=0;function run(){if(i>=stages.length){status.textContent='Complete. Loading report…';setTimeout(function(){window.location.href='/demo-report'},1200);return}status.textContent=stages[i].t;bar.style.width=stages[i].p+'%';i++;setTimeout(run,1000)}setTimeout(run,800)})();</script>`)
	return r.page(w, "Demo Mode", b.String())
}

// WriteHTML renders a standalone report page to disk.
func (r *Renderer) WriteHTML(path string, rep Report) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	var b strings.Builder
	if err := r.Report(&b, rep); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

func (r *Renderer) page(w io.Writer, pill, content string) error {
	var b strings.Builder
	b.WriteString(`<!doctype html><html lang="en"><head><meta charset="utf-8" /><meta name="viewport" content="width=device-width, initial-scale=1" />`)
	fmt.Fprintf(&b, "<title>%s Demo</title>", productName)
	b.WriteString(baseCSS)
	b.WriteString(`</head><body><div class="container"><div class="header"><div class="brand">`)
	if r.opts.LogoPath != "" {
		fmt.Fprintf(&b, `<img src="%s" class="logo-img" alt="">`, esc(r.opts.LogoPath))
	} else {
		b.WriteString(`<div class="logo"></div>`)
	}
	fmt.Fprintf(&b, `<div><h1>%s</h1><p>Pre-ingress threat interception • demo environment</p></div></div><div class="pill">%s</div></div>`, productName, esc(pill))
	b.WriteString(content)
	fmt.Fprintf(&b, `<div class="footer">%s demo • This prototype simulates detection logic for presentation purposes.</div></div></body></html>`, productName)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "write page")
	}
	return nil
}

func esc(s string) string {
	return html.EscapeString(s)
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
