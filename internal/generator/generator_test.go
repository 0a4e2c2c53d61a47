package generator

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solardome/preclear-demo/internal/policy"
	"github.com/solardome/preclear-demo/internal/report"
	"github.com/solardome/preclear-demo/internal/scoring"
)

// scriptedSource replays fixed draws and returns 0 once exhausted.
type scriptedSource struct {
	draws []int
	calls []int
}

func (s *scriptedSource) IntN(n int) int {
	s.calls = append(s.calls, n)
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v % n
}

var fixedNow = time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)

func newTestGenerator(src Source) *Generator {
	return New(policy.Default(),
		WithSource(src),
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() string { return "fixedid000" }),
	)
}

func TestAnalyzeScriptedDraws(t *testing.T) {
	cases := []struct {
		name          string
		behaviorDraw  int
		deceptionDraw int
		wantBehavior  int
		wantDeception bool
		wantRisk      int
		wantVerdict   string
		wantFlags     int
		wantSteps     int
	}{
		{name: "cleared", behaviorDraw: 9, deceptionDraw: 1, wantBehavior: 10, wantRisk: 10, wantVerdict: scoring.VerdictCleared, wantFlags: 0, wantSteps: 5},
		{name: "quarantined", behaviorDraw: 59, deceptionDraw: 2, wantBehavior: 60, wantRisk: 60, wantVerdict: scoring.VerdictQuarantined, wantFlags: 2, wantSteps: 5},
		{name: "blocked_by_score", behaviorDraw: 89, deceptionDraw: 3, wantBehavior: 90, wantRisk: 90, wantVerdict: scoring.VerdictBlocked, wantFlags: 3, wantSteps: 5},
		{name: "blocked_by_deception", behaviorDraw: 19, deceptionDraw: 0, wantBehavior: 20, wantDeception: true, wantRisk: 50, wantVerdict: scoring.VerdictBlocked, wantFlags: 0, wantSteps: 6},
		{name: "deception_clamped", behaviorDraw: 84, deceptionDraw: 0, wantBehavior: 85, wantDeception: true, wantRisk: 100, wantVerdict: scoring.VerdictBlocked, wantFlags: 3, wantSteps: 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := &scriptedSource{draws: []int{c.behaviorDraw, c.deceptionDraw}}
			rep := newTestGenerator(src).Analyze("sample.docm", []byte("payload"))

			assert.Equal(t, c.wantBehavior, rep.BehaviorScore)
			assert.Equal(t, c.wantDeception, rep.DeceptionTriggered)
			assert.Equal(t, c.wantRisk, rep.FinalRisk)
			assert.Equal(t, c.wantVerdict, rep.Verdict)
			assert.Len(t, rep.Flags, c.wantFlags)
			require.Len(t, rep.Steps, c.wantSteps)
			assert.Equal(t, "Automated action: "+scoring.Action(c.wantVerdict), rep.Steps[len(rep.Steps)-1])
			assert.NotEmpty(t, rep.Rationale)

			require.GreaterOrEqual(t, len(src.calls), 3)
			assert.Equal(t, 100, src.calls[0], "behavior drawn from [1,100]")
			assert.Equal(t, 4, src.calls[1], "deception drawn one in four")
			assert.Equal(t, 18, src.calls[2], "alert count drawn from [18,35]")
		})
	}
}

func TestAnalyzeMetadata(t *testing.T) {
	rep := newTestGenerator(&scriptedSource{}).Analyze("  ", []byte("abc"))

	assert.Equal(t, "fixedid000", rep.ID)
	assert.Equal(t, fixedNow, rep.CreatedAt)
	assert.Equal(t, "uploaded_file", rep.Filename)
	assert.Equal(t, report.SourceUpload, rep.Source)
	assert.Equal(t, 3, rep.SizeBytes)
	assert.Equal(t, report.Digest([]byte("abc")), rep.SHA256)
	assert.Len(t, rep.SOCAlerts, 18)
}

func TestAnalyzeSeededIsDeterministic(t *testing.T) {
	opts := []Option{
		WithSeed(42),
		WithClock(func() time.Time { return fixedNow }),
		WithIDFunc(func() string { return "seeded0000" }),
	}
	a := New(policy.Default(), opts...)
	b := New(policy.Default(), opts...)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Analyze("f.bin", []byte{1, 2, 3}), b.Analyze("f.bin", []byte{1, 2, 3}))
	}
}

func TestAnalyzeInvariantsOverManyDraws(t *testing.T) {
	pol := policy.Default()
	g := New(pol, WithSeed(7))
	for i := 0; i < 2000; i++ {
		rep := g.Analyze("f.bin", nil)
		require.GreaterOrEqual(t, rep.BehaviorScore, 1)
		require.LessOrEqual(t, rep.BehaviorScore, 100)
		require.GreaterOrEqual(t, rep.FinalRisk, rep.BehaviorScore)
		require.LessOrEqual(t, rep.FinalRisk, 100)
		require.GreaterOrEqual(t, len(rep.SOCAlerts), pol.SOCNoise.MinAlerts)
		require.LessOrEqual(t, len(rep.SOCAlerts), pol.SOCNoise.MaxAlerts)
		if rep.DeceptionTriggered {
			require.Equal(t, scoring.VerdictBlocked, rep.Verdict)
		}
	}
}

func TestDemoReportIsScripted(t *testing.T) {
	rep := newTestGenerator(&scriptedSource{}).DemoReport()

	assert.Equal(t, report.SourceDemo, rep.Source)
	assert.Equal(t, "simulated_attack_payload.exe", rep.Filename)
	assert.Equal(t, 82, rep.BehaviorScore)
	assert.True(t, rep.DeceptionTriggered)
	assert.Equal(t, 100, rep.FinalRisk)
	assert.Equal(t, scoring.VerdictBlocked, rep.Verdict)
	assert.Len(t, rep.Flags, 3)
	assert.Equal(t, []string{
		"Ingress captured and artifact extracted",
		"Behavioral sandbox executed (simulated)",
		"Deception asset accessed → confirmed malicious intent",
		"Risk engine produced verdict",
		"Automated action: Block & contain",
	}, rep.Steps)
}

func TestNewReportIDShape(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{10}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewReportID()
		require.Regexp(t, re, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestZeroOddsPolicyDoesNotPanic(t *testing.T) {
	pol := policy.Default()
	pol.Deception.OneIn = 0
	rep := New(pol, WithSeed(1)).Analyze("f", nil)
	assert.True(t, rep.DeceptionTriggered)
}
