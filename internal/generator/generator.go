// Package generator fabricates demo reports. Nothing here inspects the
// uploaded bytes beyond their length and digest; every score is a draw from
// the configured random source.
package generator

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/solardome/preclear-demo/internal/policy"
	"github.com/solardome/preclear-demo/internal/report"
	"github.com/solardome/preclear-demo/internal/scoring"
)

const defaultFilename = "uploaded_file"

// Source is the subset of *rand.Rand the generator draws from.
type Source interface {
	IntN(n int) int
}

type Option func(*Generator)

// WithSource replaces the random source. Draws are serialized by the
// generator, so src need not be safe for concurrent use.
func WithSource(src Source) Option {
	return func(g *Generator) { g.src = src }
}

// WithSeed makes every draw reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.src = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithIDFunc(newID func() string) Option {
	return func(g *Generator) { g.newID = newID }
}

type Generator struct {
	pol   policy.Policy
	mu    sync.Mutex
	src   Source
	now   func() time.Time
	newID func() string
}

// New expects a policy that passed policy.Validate.
func New(pol policy.Policy, opts ...Option) *Generator {
	if pol.Deception.OneIn < 1 {
		pol.Deception.OneIn = 1
	}
	g := &Generator{
		pol:   pol,
		src:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:   time.Now,
		newID: NewReportID,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewReportID returns the first ten hex digits of a random UUID.
func NewReportID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

func (g *Generator) Policy() policy.Policy {
	return g.pol
}

// Analyze produces a randomized report for an uploaded artifact.
func (g *Generator) Analyze(filename string, content []byte) report.Report {
	if strings.TrimSpace(filename) == "" {
		filename = defaultFilename
	}

	g.mu.Lock()
	behavior := g.between(g.pol.Behavior.MinScore, g.pol.Behavior.MaxScore)
	deception := g.src.IntN(g.pol.Deception.OneIn) == 0
	alerts := g.socNoise()
	g.mu.Unlock()

	finalRisk := scoring.FinalRisk(behavior, deception, g.pol.Deception.RiskBoost)
	verdict, rationale := scoring.Verdict(finalRisk, deception, g.pol.Thresholds())

	return report.Report{
		ID:                 g.newID(),
		CreatedAt:          g.now(),
		Source:             report.SourceUpload,
		Filename:           filename,
		SizeBytes:          len(content),
		SHA256:             report.Digest(content),
		BehaviorScore:      behavior,
		DeceptionTriggered: deception,
		FinalRisk:          finalRisk,
		Verdict:            verdict,
		Rationale:          rationale,
		Flags:              scoring.BehaviorFlags(behavior, g.pol.FlagRules()),
		Steps:              interceptionSteps(deception, verdict),
		SOCAlerts:          alerts,
	}
}

// DemoReport is the scripted outcome shown at the end of investor demo mode.
// Only the SOC noise is random.
func (g *Generator) DemoReport() report.Report {
	g.mu.Lock()
	alerts := g.socNoise()
	g.mu.Unlock()

	return report.Report{
		ID:                 g.newID(),
		CreatedAt:          g.now(),
		Source:             report.SourceDemo,
		Filename:           "simulated_attack_payload.exe",
		BehaviorScore:      82,
		DeceptionTriggered: true,
		FinalRisk:          100,
		Verdict:            scoring.VerdictBlocked,
		Rationale:          "High-confidence deception signal confirms malicious intent.",
		Flags: []string{
			"Outbound command-and-control behavior detected",
			"Credential access attempt observed",
			"Privilege escalation sequence identified",
		},
		Steps:     demoSteps(),
		SOCAlerts: alerts,
	}
}

// between draws uniformly from [lo, hi]. Callers hold g.mu.
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.src.IntN(hi-lo+1)
}
