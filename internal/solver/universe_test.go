package solver

import (
	"testing"

	"condasolver/internal/ports"
)

func TestNewUniverseAllocatesRootCandidateHandleZero(t *testing.T) {
	u := newUniverse(nil, nil)
	if u.count() != 1 {
		t.Fatalf("expected exactly the root candidate interned, got count %d", u.count())
	}
	rec := u.record(RootCandidate)
	if rec.name != rootName {
		t.Fatalf("expected root candidate name %q, got %q", rootName, rec.name)
	}
}

func TestInternNameIsStructurallyDeduplicating(t *testing.T) {
	u := newUniverse(nil, nil)
	a := u.internName("numpy")
	b := u.internName("numpy")
	if a != b {
		t.Fatalf("interning the same name twice should return the same handle")
	}
	if u.nameOf(a) != "numpy" {
		t.Fatalf("nameOf should round-trip the interned string")
	}
}

func TestInternVersionSetIsStructurallyDeduplicating(t *testing.T) {
	u := newUniverse(nil, nil)
	name := u.internName("numpy")
	a, err := u.internVersionSet(name, ">=1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := u.internVersionSet(name, ">=1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("interning the same (name, expr) twice should return the same handle")
	}
}

func TestCandidatesSatisfyingInternsOnlyMatchingCandidates(t *testing.T) {
	repo := newFakeRepo(
		fakeRecord{name: "numpy", version: "1.10.0", buildString: "py310_0"},
		fakeRecord{name: "numpy", version: "1.26.0", buildString: "py310_0"},
	)
	u := newUniverse([]ports.RepositoryView{repo}, nil)

	vs, err := parseVersionSet(">=1.20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	matches := u.candidatesSatisfying("numpy", vs)
	if len(matches) != 1 {
		t.Fatalf("expected exactly one match for >=1.20, got %d", len(matches))
	}
	if rec := u.record(matches[0]); rec.version != "1.26.0" {
		t.Fatalf("expected the matching candidate to be 1.26.0, got %s", rec.version)
	}
	// Only the matching candidate should have been interned; the name is
	// still known via the repository index either way.
	if u.count() != 2 { // root + the one matching candidate
		t.Fatalf("expected only the satisfying candidate to be interned, count = %d", u.count())
	}
	if !u.hasAnyCandidates("numpy") {
		t.Fatalf("hasAnyCandidates should see numpy regardless of the filter result")
	}
}

func TestInternByKeyFindsExactFingerprint(t *testing.T) {
	repo := newFakeRepo(
		fakeRecord{name: "numpy", version: "1.26.0", buildString: "py310_0", subdir: "linux-64", hash: "abc123"},
	)
	u := newUniverse([]ports.RepositoryView{repo}, nil)

	id, ok := u.internByKey(candidateKey{name: "numpy", version: "1.26.0", build: "py310_0", subdir: "linux-64", hash: "abc123"})
	if !ok {
		t.Fatalf("expected internByKey to find the exact fingerprint")
	}
	if rec := u.record(id); rec.version != "1.26.0" {
		t.Fatalf("expected version 1.26.0, got %s", rec.version)
	}

	_, ok = u.internByKey(candidateKey{name: "numpy", version: "9.9.9"})
	if ok {
		t.Fatalf("internByKey should not find a fingerprint absent from the repository")
	}
}

func TestHasAnyCandidatesFalseForUnknownName(t *testing.T) {
	u := newUniverse(nil, nil)
	if u.hasAnyCandidates("scipy") {
		t.Fatalf("hasAnyCandidates should be false when no repository offers the name")
	}
}
