package policy

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/solardome/preclear-demo/internal/scoring"
)

const SchemaVersion = "1.0"

// Policy drives the report generator. Every number here is a presentation
// choice; the defaults reproduce the investor demo.
type Policy struct {
	SchemaVersion string    `yaml:"schema_version"`
	Behavior      Behavior  `yaml:"behavior"`
	Deception     Deception `yaml:"deception"`
	Verdict       Verdict   `yaml:"verdict"`
	SOCNoise      SOCNoise  `yaml:"soc_noise"`
}

type Behavior struct {
	MinScore int        `yaml:"min_score"`
	MaxScore int        `yaml:"max_score"`
	Flags    []FlagRule `yaml:"flags"`
}

type FlagRule struct {
	Above int    `yaml:"above"`
	Text  string `yaml:"text"`
}

type Deception struct {
	// OneIn is the odds denominator: deception fires on one draw out of OneIn.
	OneIn     int `yaml:"one_in"`
	RiskBoost int `yaml:"risk_boost"`
}

type Verdict struct {
	QuarantineFloor int `yaml:"quarantine_floor"`
	BlockFloor      int `yaml:"block_floor"`
}

type SOCNoise struct {
	MinAlerts    int `yaml:"min_alerts"`
	MaxAlerts    int `yaml:"max_alerts"`
	PreviewLimit int `yaml:"preview_limit"`
}

func Default() Policy {
	th := scoring.DefaultThresholds()
	flags := []FlagRule{}
	for _, r := range scoring.DefaultFlagRules() {
		flags = append(flags, FlagRule{Above: r.Above, Text: r.Text})
	}
	return Policy{
		SchemaVersion: SchemaVersion,
		Behavior:      Behavior{MinScore: 1, MaxScore: 100, Flags: flags},
		Deception:     Deception{OneIn: 4, RiskBoost: 30},
		Verdict:       Verdict{QuarantineFloor: th.QuarantineFloor, BlockFloor: th.BlockFloor},
		SOCNoise:      SOCNoise{MinAlerts: 18, MaxAlerts: 35, PreviewLimit: 12},
	}
}

func (p Policy) Thresholds() scoring.Thresholds {
	return scoring.Thresholds{QuarantineFloor: p.Verdict.QuarantineFloor, BlockFloor: p.Verdict.BlockFloor}
}

func (p Policy) FlagRules() []scoring.FlagRule {
	out := make([]scoring.FlagRule, 0, len(p.Behavior.Flags))
	for _, f := range p.Behavior.Flags {
		out = append(out, scoring.FlagRule{Above: f.Above, Text: f.Text})
	}
	return out
}

// Validate returns semantic problems; an empty slice means the policy is usable.
func Validate(p Policy) []string {
	var errs []string
	if p.SchemaVersion != SchemaVersion {
		errs = append(errs, fmt.Sprintf("unsupported policy schema_version %q", p.SchemaVersion))
	}
	if p.Behavior.MinScore < 0 || p.Behavior.MaxScore > 100 || p.Behavior.MinScore > p.Behavior.MaxScore {
		errs = append(errs, "behavior score range must satisfy 0 <= min_score <= max_score <= 100")
	}
	for i, f := range p.Behavior.Flags {
		if f.Text == "" {
			errs = append(errs, fmt.Sprintf("behavior.flags[%d].text must not be empty", i))
		}
	}
	if p.Deception.OneIn < 1 {
		errs = append(errs, "deception.one_in must be >= 1")
	}
	if p.Deception.RiskBoost < 0 {
		errs = append(errs, "deception.risk_boost must be >= 0")
	}
	if p.Verdict.QuarantineFloor <= 0 || p.Verdict.QuarantineFloor > p.Verdict.BlockFloor || p.Verdict.BlockFloor > 100 {
		errs = append(errs, "verdict floors must satisfy 0 < quarantine_floor <= block_floor <= 100")
	}
	if p.SOCNoise.MinAlerts < 0 || p.SOCNoise.MinAlerts > p.SOCNoise.MaxAlerts {
		errs = append(errs, "soc_noise must satisfy 0 <= min_alerts <= max_alerts")
	}
	if p.SOCNoise.PreviewLimit < 0 {
		errs = append(errs, "soc_noise.preview_limit must be >= 0")
	}
	return errs
}

// Load reads a policy file. An empty path yields the default policy.
func Load(path string) (Policy, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, errors.Wrapf(err, "read policy %s", path)
	}
	return Parse(path, b)
}

func Parse(source string, b []byte) (Policy, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return Policy{}, errors.Wrapf(err, "parse %s", source)
	}
	if schemaErrs := validatePolicyYAML(&root); len(schemaErrs) > 0 {
		return Policy{}, errors.New(formatSchemaErrors(source, schemaErrs))
	}
	var pol Policy
	if err := root.Decode(&pol); err != nil {
		return Policy{}, errors.Wrapf(err, "decode %s", source)
	}
	if errs := Validate(pol); len(errs) > 0 {
		return Policy{}, errors.Newf("invalid policy %s: %v", source, errs)
	}
	return pol, nil
}
