package solver

import (
	"sort"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// sortCandidates orders ids by strategy, used both as a Requires
// clause's literal order and as the decision heuristic's try-order for
// that name. strategy must already be resolved to Highest or
// LowestVersion by the caller (see strategyForName); candidateLess has
// no notion of "direct dependency of root", so LowestVersionDirect is
// never passed in here. The order is computed once per Requires clause,
// when that clause is built, and never recomputed: a clause's literal
// order is fixed from then on, so sortCandidates must stay
// deterministic and idempotent for a given input slice.
func (u *universe) sortCandidates(ids []CandidateID, strategy Strategy, preferInstalledOnTie bool) []CandidateID {
	out := append([]CandidateID(nil), ids...)
	sort.SliceStable(out, func(i, j int) bool {
		return u.candidateLess(out[i], out[j], strategy, preferInstalledOnTie)
	})
	return out
}

// candidateLess reports whether a should be tried before b. Ties are
// broken, in order: build number (higher first), timestamp (newer
// first), then the candidate handle itself so the order is always
// total and deterministic.
func (u *universe) candidateLess(a, b CandidateID, strategy Strategy, preferInstalledOnTie bool) bool {
	ra, rb := u.record(a), u.record(b)

	if preferInstalledOnTie && ra.installed != rb.installed {
		return ra.installed
	}

	va, errA := pep440.Parse(ra.version)
	vb, errB := pep440.Parse(rb.version)
	switch {
	case errA != nil && errB != nil:
		// Neither parses: fall through to the build/timestamp/handle
		// tiebreak below.
	case errA != nil:
		return false // unparseable versions sort last.
	case errB != nil:
		return true
	default:
		if cmp := va.Compare(vb); cmp != 0 {
			if strategy == LowestVersion {
				return cmp < 0
			}
			return cmp > 0
		}
	}

	if preferInstalledOnTie && strategy == Highest && ra.installed != rb.installed {
		return ra.installed
	}
	if ra.buildNumber != rb.buildNumber {
		return ra.buildNumber > rb.buildNumber
	}
	if ra.timestamp != rb.timestamp {
		return ra.timestamp > rb.timestamp
	}
	return a < b
}
