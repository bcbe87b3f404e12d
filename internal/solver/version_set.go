package solver

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// versionSetOps is the ordered list of relational tokens tried during
// parsing. Longer tokens must precede shorter ones so ">=" is not
// mis-split as ">" followed by "=".
var versionSetOps = []string{">=", "<=", "~=", "!=", "==", ">", "<", "="}

// matchClause is one comma-separated term of a version-set expression,
// e.g. the ">=1.2" in ">=1.2,<2.0=py310*".
type matchClause struct {
	op          string
	version     string
	versionGlob bool // version ends in ".*": a prefix match, not an exact release
	buildGlob   string
	spec        pep440.Specifiers // prepared once at parse time, empty for bare/glob clauses
}

// parsedVersionSet is an interned version-set expression: a conjunction
// (AND) of matchClause terms, or the special "match anything" case used
// for bare-name requirements ("foo" with no constraint).
type parsedVersionSet struct {
	raw      string
	name     NameID
	anything bool
	clauses  []matchClause
}

// parseVersionSet parses a conda-style match-spec version string such as
// ">=1.0,<2.0", "1.2.*", "1.2.3=py310*", or "*" (match anything). Commas
// separate AND-ed clauses. A bare version with no operator is treated as
// an exact-version match unless it ends in ".*", which is a prefix glob.
func parseVersionSet(raw string) (parsedVersionSet, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "*" {
		return parsedVersionSet{raw: trimmed, anything: true}, nil
	}
	var clauses []matchClause
	for _, part := range strings.Split(trimmed, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		clause, err := parseMatchClause(part)
		if err != nil {
			return parsedVersionSet{}, err
		}
		clauses = append(clauses, clause)
	}
	if len(clauses) == 0 {
		return parsedVersionSet{raw: trimmed, anything: true}, nil
	}
	return parsedVersionSet{raw: trimmed, clauses: clauses}, nil
}

func parseMatchClause(part string) (matchClause, error) {
	op := "=="
	version := part
	for _, token := range versionSetOps {
		if strings.HasPrefix(part, token) {
			op = token
			version = strings.TrimSpace(part[len(token):])
			break
		}
	}
	if op == "=" {
		op = "=="
	}

	buildGlob := ""
	if idx := strings.LastIndex(version, "="); idx >= 0 && op == "==" {
		buildGlob = strings.TrimSpace(version[idx+1:])
		version = strings.TrimSpace(version[:idx])
	}

	versionGlob := false
	if strings.HasSuffix(version, ".*") {
		versionGlob = true
		version = strings.TrimSuffix(version, ".*")
		if op == "==" {
			op = "=="
		}
	}
	if version == "" {
		return matchClause{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version-set clause has no version: " + part)
	}

	clause := matchClause{op: op, version: version, versionGlob: versionGlob, buildGlob: buildGlob}
	if !versionGlob {
		specText := op + version
		spec, err := pep440.NewSpecifiers(specText)
		if err != nil {
			return matchClause{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid version-set clause: " + part).
				WithCause(err)
		}
		clause.spec = spec
	}
	return clause, nil
}

// matches reports whether a (version, build) pair satisfies the
// expression. A parse-failure on the candidate's own version string is
// treated as "does not match any non-trivial expression" per the
// unparseable-version policy in SPEC_FULL.md.
func (p parsedVersionSet) matches(version string, build string) bool {
	if p.anything {
		return true
	}
	parsed, err := pep440.Parse(version)
	if err != nil {
		return false
	}
	for _, clause := range p.clauses {
		if clause.versionGlob {
			if !strings.HasPrefix(version, clause.version) {
				return false
			}
		} else if !clause.spec.Check(parsed) {
			return false
		}
		if clause.buildGlob != "" && !globMatch(clause.buildGlob, build) {
			return false
		}
	}
	return true
}

// globMatch implements the small subset of shell globbing conda build
// strings use: a single trailing or leading "*" wildcard, or an exact
// match when there is no wildcard.
func globMatch(pattern string, value string) bool {
	switch {
	case pattern == "*":
		return true
	case strings.HasSuffix(pattern, "*"):
		return strings.HasPrefix(value, strings.TrimSuffix(pattern, "*"))
	case strings.HasPrefix(pattern, "*"):
		return strings.HasSuffix(value, strings.TrimPrefix(pattern, "*"))
	default:
		return pattern == value
	}
}
