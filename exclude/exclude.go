// Package exclude implements glob-capable exclude-rule matching for
// dependency edges.
//
// An exclude rule is a pair of group/module patterns. Patterns use the
// usual wildcard syntax from POM metadata: "*" matches anything, and a
// pattern like "org.slf4j*" matches every group sharing that prefix. An
// empty pattern is treated as "*".
//
// Matchers are immutable; Union returns a new matcher and never mutates
// the receiver, so a matcher can be shared across concurrent resolution
// workers and extended independently along each traversal path.
package exclude

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// Rule is a single group/module exclude pattern pair.
//
// Rules are plain values. Duplicates are allowed and order is preserved:
// order never changes matching semantics, but diagnostics print rules in
// declaration order.
type Rule struct {
	// Group is the glob pattern matched against a module's group.
	Group string

	// Module is the glob pattern matched against a module's name.
	Module string
}

// String returns the rule as "group:module".
func (r Rule) String() string {
	return patternOrStar(r.Group) + ":" + patternOrStar(r.Module)
}

func patternOrStar(pattern string) string {
	if pattern == "" {
		return "*"
	}
	return pattern
}

type compiledRule struct {
	rule   Rule
	group  glob.Glob
	module glob.Glob
}

// Matcher decides whether a module is excluded by a set of rules.
// A module is excluded if ANY rule matches both its group and its name.
type Matcher struct {
	rules []compiledRule
}

// New compiles the given rules into a matcher.
// A nil or empty rule set yields a matcher that excludes nothing.
func New(rules ...Rule) (*Matcher, error) {
	m := &Matcher{}
	return m.Union(rules...)
}

// Union returns a new matcher covering the receiver's rules plus the given
// ones. The receiver is unchanged.
func (m *Matcher) Union(rules ...Rule) (*Matcher, error) {
	if len(rules) == 0 {
		return m, nil
	}
	combined := make([]compiledRule, 0, len(m.rules)+len(rules))
	combined = append(combined, m.rules...)
	for _, r := range rules {
		group, err := glob.Compile(patternOrStar(r.Group))
		if err != nil {
			return nil, fmt.Errorf("compile exclude group pattern %q: %w", r.Group, err)
		}
		module, err := glob.Compile(patternOrStar(r.Module))
		if err != nil {
			return nil, fmt.Errorf("compile exclude module pattern %q: %w", r.Module, err)
		}
		combined = append(combined, compiledRule{rule: r, group: group, module: module})
	}
	return &Matcher{rules: combined}, nil
}

// ExcludesModule reports whether the module identified by group and name is
// excluded by any rule in the matcher.
func (m *Matcher) ExcludesModule(group, name string) bool {
	for _, r := range m.rules {
		if r.group.Match(group) && r.module.Match(name) {
			return true
		}
	}
	return false
}

// Empty reports whether the matcher carries no rules.
func (m *Matcher) Empty() bool {
	return len(m.rules) == 0
}

// Rules returns the rules in declaration order.
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	for i, r := range m.rules {
		out[i] = r.rule
	}
	return out
}

// Signature returns a canonical representation of the rule set: sorted and
// deduplicated. Two matchers with the same effective rules share a
// signature, which makes it usable as a visited-set key during graph
// traversal.
func (m *Matcher) Signature() string {
	if len(m.rules) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.rules))
	for _, r := range m.rules {
		parts = append(parts, r.rule.String())
	}
	sort.Strings(parts)
	deduped := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(deduped) == 0 || deduped[len(deduped)-1] != p {
			deduped = append(deduped, p)
		}
	}
	return strings.Join(deduped, ",")
}
