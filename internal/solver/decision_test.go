package solver

import "testing"

// Level 0 is the level nearly every early assignment happens at (the
// install-root clause, locks, exclusions). Both true and false must
// stay distinguishable from "unassigned" at that level.
func TestDecisionMapLevelZeroTrueFalseDistinctFromUnassigned(t *testing.T) {
	d := newDecisionMap(4)

	if d.isAssigned(CandidateID(0)) {
		t.Fatalf("candidate 0 should start unassigned")
	}

	d.set(CandidateID(0), true, 0)
	value, ok := d.value(CandidateID(0))
	if !ok {
		t.Fatalf("candidate 0 should be assigned after set(true, level 0)")
	}
	if !value {
		t.Fatalf("candidate 0 should read true, got false")
	}
	if got := d.level(CandidateID(0)); got != 0 {
		t.Fatalf("level should be 0, got %d", got)
	}

	d.set(CandidateID(1), false, 0)
	value, ok = d.value(CandidateID(1))
	if !ok {
		t.Fatalf("candidate 1 should be assigned after set(false, level 0)")
	}
	if value {
		t.Fatalf("candidate 1 should read false, got true")
	}
	if got := d.level(CandidateID(1)); got != 0 {
		t.Fatalf("level should be 0, got %d", got)
	}
}

func TestDecisionMapResetClearsToUnassigned(t *testing.T) {
	d := newDecisionMap(2)
	d.set(CandidateID(0), true, 3)
	d.reset(CandidateID(0))
	if d.isAssigned(CandidateID(0)) {
		t.Fatalf("candidate should be unassigned after reset")
	}
	if got := d.level(CandidateID(0)); got != 0 {
		t.Fatalf("level of an unassigned candidate should read 0, got %d", got)
	}
}

func TestDecisionMapPreservesLevelAcrossValues(t *testing.T) {
	d := newDecisionMap(2)
	d.set(CandidateID(0), true, 5)
	if got := d.level(CandidateID(0)); got != 5 {
		t.Fatalf("expected level 5, got %d", got)
	}
	d.set(CandidateID(0), false, 5)
	if got := d.level(CandidateID(0)); got != 5 {
		t.Fatalf("expected level 5 after flipping to false, got %d", got)
	}
	value, _ := d.value(CandidateID(0))
	if value {
		t.Fatalf("expected false after flip")
	}
}
