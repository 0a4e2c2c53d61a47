package policy

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type schemaError struct {
	Path    string
	Line    int
	Message string
}

func (e schemaError) String() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d field %s: %s", e.Line, e.Path, e.Message)
	}
	return fmt.Sprintf("field %s: %s", e.Path, e.Message)
}

func formatSchemaErrors(path string, errs []schemaError) string {
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].Line != errs[j].Line {
			return errs[i].Line < errs[j].Line
		}
		if errs[i].Path != errs[j].Path {
			return errs[i].Path < errs[j].Path
		}
		return errs[i].Message < errs[j].Message
	})
	var b strings.Builder
	b.WriteString("schema validation failed for ")
	b.WriteString(path)
	for _, e := range errs {
		b.WriteString("\n- ")
		b.WriteString(e.String())
	}
	return b.String()
}

func validatePolicyYAML(root *yaml.Node) []schemaError {
	if root == nil || len(root.Content) == 0 {
		return []schemaError{{Path: "policy", Message: "empty YAML document"}}
	}
	errList := []schemaError{}
	top := []string{"schema_version", "behavior", "deception", "verdict", "soc_noise"}
	m := validateMapNode(root.Content[0], "policy", top, top, &errList)
	if v, ok := m["behavior"]; ok {
		b := validateMapNode(v, "policy.behavior", []string{"min_score", "max_score", "flags"}, []string{"min_score", "max_score"}, &errList)
		if flags, ok := b["flags"]; ok {
			for i, item := range validateSequenceNode(flags, "policy.behavior.flags", &errList) {
				p := fmt.Sprintf("policy.behavior.flags[%d]", i)
				f := validateMapNode(item, p, []string{"above", "text"}, []string{"above", "text"}, &errList)
				validateIntScalar(f["above"], p+".above", &errList)
			}
		}
		validateIntScalar(b["min_score"], "policy.behavior.min_score", &errList)
		validateIntScalar(b["max_score"], "policy.behavior.max_score", &errList)
	}
	if v, ok := m["deception"]; ok {
		d := validateMapNode(v, "policy.deception", []string{"one_in", "risk_boost"}, []string{"one_in", "risk_boost"}, &errList)
		validateIntScalar(d["one_in"], "policy.deception.one_in", &errList)
		validateIntScalar(d["risk_boost"], "policy.deception.risk_boost", &errList)
	}
	if v, ok := m["verdict"]; ok {
		d := validateMapNode(v, "policy.verdict", []string{"quarantine_floor", "block_floor"}, []string{"quarantine_floor", "block_floor"}, &errList)
		validateIntScalar(d["quarantine_floor"], "policy.verdict.quarantine_floor", &errList)
		validateIntScalar(d["block_floor"], "policy.verdict.block_floor", &errList)
	}
	if v, ok := m["soc_noise"]; ok {
		s := validateMapNode(v, "policy.soc_noise", []string{"min_alerts", "max_alerts", "preview_limit"}, []string{"min_alerts", "max_alerts"}, &errList)
		for _, k := range []string{"min_alerts", "max_alerts", "preview_limit"} {
			validateIntScalar(s[k], "policy.soc_noise."+k, &errList)
		}
	}
	return errList
}

func validateMapNode(node *yaml.Node, path string, allowed, required []string, errs *[]schemaError) map[string]*yaml.Node {
	result := map[string]*yaml.Node{}
	if node == nil {
		*errs = append(*errs, schemaError{Path: path, Message: "missing object"})
		return result
	}
	if node.Kind != yaml.MappingNode {
		*errs = append(*errs, schemaError{Path: path, Line: node.Line, Message: "must be a mapping/object"})
		return result
	}
	allowedSet := map[string]bool{}
	for _, a := range allowed {
		allowedSet[a] = true
	}
	seen := map[string]int{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i]
		key := k.Value
		if prevLine, ok := seen[key]; ok {
			*errs = append(*errs, schemaError{Path: path + "." + key, Line: k.Line, Message: fmt.Sprintf("duplicate key (already defined at line %d)", prevLine)})
			continue
		}
		seen[key] = k.Line
		if !allowedSet[key] {
			*errs = append(*errs, schemaError{Path: path + "." + key, Line: k.Line, Message: "unknown field"})
		}
		result[key] = node.Content[i+1]
	}
	for _, req := range required {
		if _, ok := result[req]; !ok {
			*errs = append(*errs, schemaError{Path: path + "." + req, Line: node.Line, Message: "missing required field"})
		}
	}
	return result
}

func validateSequenceNode(node *yaml.Node, path string, errs *[]schemaError) []*yaml.Node {
	if node == nil {
		*errs = append(*errs, schemaError{Path: path, Message: "missing sequence"})
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		*errs = append(*errs, schemaError{Path: path, Line: node.Line, Message: "must be a sequence/array"})
		return nil
	}
	return node.Content
}

// validateIntScalar tolerates a nil node; missing fields are reported by the
// enclosing mapping check.
func validateIntScalar(node *yaml.Node, path string, errs *[]schemaError) {
	if node == nil {
		return
	}
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
		*errs = append(*errs, schemaError{Path: path, Line: node.Line, Message: "must be an integer"})
	}
}
