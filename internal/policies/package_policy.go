// Package policies implements solver.StrategyPolicy: a compiled
// exact/prefix/wildcard matcher over package names, resolving a
// per-name override of the solve-wide candidate ordering strategy.
package policies

import (
	"strings"

	"condasolver/internal/solver"
)

// StrategyRule is one configured override: Match is an exact name
// ("numpy"), a prefix ("test-*"), or the wildcard "*", and Strategy is
// applied to requirements whose name matches it.
type StrategyRule struct {
	Match    string
	Strategy solver.Strategy
}

// StrategyPolicy resolves a per-package-name override of the
// solve-wide strategy with a compiled exact/prefix/wildcard matcher:
// exact matches win over prefix matches, which win over the wildcard,
// and earlier rules in the configured order win ties within the same
// kind.
type StrategyPolicy struct {
	rules []StrategyRule

	exact    map[string]int
	prefixes []prefixPattern
	wildcard int
}

type prefixPattern struct {
	prefix string
	index  int
}

// NewStrategyPolicy compiles rules into the lookup tables StrategyFor
// consults. Rules are evaluated in the order given; an earlier rule
// matching the same name pattern kind shadows a later one.
func NewStrategyPolicy(rules []StrategyRule) StrategyPolicy {
	p := StrategyPolicy{
		rules:    rules,
		exact:    map[string]int{},
		wildcard: -1,
	}
	for idx, rule := range rules {
		pattern := strings.TrimSpace(rule.Match)
		switch {
		case pattern == "" || pattern == "*":
			if p.wildcard < 0 {
				p.wildcard = idx
			}
		case strings.HasSuffix(pattern, "*"):
			p.prefixes = append(p.prefixes, prefixPattern{prefix: strings.TrimSuffix(pattern, "*"), index: idx})
		default:
			if _, ok := p.exact[pattern]; !ok {
				p.exact[pattern] = idx
			}
		}
	}
	return p
}

// StrategyFor implements solver.StrategyPolicy.
func (p StrategyPolicy) StrategyFor(name string) (solver.Strategy, bool) {
	if idx, ok := p.exact[name]; ok {
		return p.rules[idx].Strategy, true
	}
	best := -1
	for _, entry := range p.prefixes {
		if strings.HasPrefix(name, entry.prefix) {
			if best < 0 || entry.index < best {
				best = entry.index
			}
		}
	}
	if best >= 0 {
		return p.rules[best].Strategy, true
	}
	if p.wildcard >= 0 {
		return p.rules[p.wildcard].Strategy, true
	}
	return solver.Highest, false
}
