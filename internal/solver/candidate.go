package solver

import "condasolver/internal/ports"

// candidateRecord is the solver's internal copy of a candidate's
// metadata. It is captured once, at intern time, from a
// ports.RecordView so the solver never calls back into external
// collaborators during search.
type candidateRecord struct {
	name        string
	nameID      NameID
	version     string
	buildString string
	buildNumber int
	subdir      string
	hash        string
	timestamp   int64
	depends     []string
	constrains  []string
	installed   bool
}

// candidateKey is the fingerprint candidates are hash-consed on: two
// RecordViews describing the same (name, version, build, subdir, hash)
// intern to the same CandidateID.
type candidateKey struct {
	name, version, build, subdir, hash string
}

func keyOf(v ports.RecordView) candidateKey {
	return candidateKey{
		name:    v.Name(),
		version: v.Version(),
		build:   v.BuildString(),
		subdir:  v.Subdir(),
		hash:    v.Hash(),
	}
}

func recordFromView(v ports.RecordView, nameID NameID, installed bool) candidateRecord {
	return candidateRecord{
		name:        v.Name(),
		nameID:      nameID,
		version:     v.Version(),
		buildString: v.BuildString(),
		buildNumber: v.BuildNumber(),
		subdir:      v.Subdir(),
		hash:        v.Hash(),
		timestamp:   v.Timestamp(),
		depends:     append([]string(nil), v.Depends()...),
		constrains:  append([]string(nil), v.Constrains()...),
		installed:   installed,
	}
}
