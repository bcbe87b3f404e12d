package solver

import "condasolver/internal/ports"

// rootName is the synthetic package name of RootCandidate.
const rootName = "__root__"

// versionSetKey is the hash-consing key for interned version-set
// expressions: two parses of the same (name, expression) text must
// produce the same handle, or same-name exclusion and sort stability
// break.
type versionSetKey struct {
	name NameID
	expr string
}

// universe owns every interner pool plus the flattened, fully
// materialized repository index the rule encoder reads from. It is the
// solver's only source of candidate and name data; nothing else in the
// package touches a ports.RepositoryView directly.
type universe struct {
	names   *arena[string]
	nameIDs map[string]NameID

	candidates   *arena[candidateRecord]
	candidateIDs map[candidateKey]CandidateID
	byName       map[NameID][]CandidateID

	versionSets   *arena[parsedVersionSet]
	versionSetIDs map[versionSetKey]VersionSetID

	repoByName map[string][]ports.RecordView
	installed  map[candidateKey]bool
}

func newUniverse(repos []ports.RepositoryView, installed []candidateKey) *universe {
	u := &universe{
		names:         newArena[string](64),
		nameIDs:       map[string]NameID{},
		candidates:    newArena[candidateRecord](256),
		candidateIDs:  map[candidateKey]CandidateID{},
		byName:        map[NameID][]CandidateID{},
		versionSets:   newArena[parsedVersionSet](64),
		versionSetIDs: map[versionSetKey]VersionSetID{},
		repoByName:    map[string][]ports.RecordView{},
		installed:     map[candidateKey]bool{},
	}
	for _, key := range installed {
		u.installed[key] = true
	}
	for _, repo := range repos {
		if repo == nil {
			continue
		}
		for _, name := range repo.PackageNames() {
			u.repoByName[name] = append(u.repoByName[name], repo.CandidatesByName(name)...)
		}
	}

	rootID := u.internName(rootName)
	root := u.candidates.alloc(candidateRecord{name: rootName, nameID: rootID})
	if CandidateID(root) != RootCandidate {
		panic(errFatal("root candidate did not receive handle 0"))
	}
	u.byName[rootID] = []CandidateID{RootCandidate}
	return u
}

func (u *universe) internName(name string) NameID {
	if id, ok := u.nameIDs[name]; ok {
		return id
	}
	id := NameID(u.names.alloc(name))
	u.nameIDs[name] = id
	return id
}

func (u *universe) nameOf(id NameID) string {
	return *u.names.get(int(id))
}

func (u *universe) internVersionSet(name NameID, expr string) (VersionSetID, error) {
	key := versionSetKey{name: name, expr: expr}
	if id, ok := u.versionSetIDs[key]; ok {
		return id, nil
	}
	parsed, err := parseVersionSet(expr)
	if err != nil {
		return 0, err
	}
	parsed.name = name
	id := VersionSetID(u.versionSets.alloc(parsed))
	u.versionSetIDs[key] = id
	return id, nil
}

func (u *universe) versionSet(id VersionSetID) *parsedVersionSet {
	return u.versionSets.get(int(id))
}

// internCandidate returns the existing handle for v's fingerprint, or
// allocates a new one. The bool result reports whether this call
// allocated (i.e. this is the first time this candidate was observed).
func (u *universe) internCandidate(v ports.RecordView) (CandidateID, bool) {
	key := keyOf(v)
	if id, ok := u.candidateIDs[key]; ok {
		return id, false
	}
	nameID := u.internName(v.Name())
	record := recordFromView(v, nameID, u.installed[key])
	id := CandidateID(u.candidates.alloc(record))
	u.candidateIDs[key] = id
	u.byName[nameID] = append(u.byName[nameID], id)
	return id, true
}

func (u *universe) record(id CandidateID) *candidateRecord {
	return u.candidates.get(int(id))
}

func (u *universe) candidatesOf(name NameID) []CandidateID {
	return u.byName[name]
}

// candidatesSatisfying interns (if necessary) and returns every
// repository candidate of the given name whose (version, build) matches
// the version-set expression vs.
func (u *universe) candidatesSatisfying(name string, vs parsedVersionSet) []CandidateID {
	var out []CandidateID
	for _, view := range u.repoByName[name] {
		if !vs.matches(view.Version(), view.BuildString()) {
			continue
		}
		id, _ := u.internCandidate(view)
		out = append(out, id)
	}
	return out
}

func (u *universe) count() int {
	return u.candidates.len()
}

// hasAnyCandidates reports whether any repository, materialized or not
// yet interned, offers a candidate of this name at all. Used by the
// problem extractor to tell "this package name does not exist anywhere"
// apart from "it exists, but nothing satisfies this version-set" (both
// leave byName empty when the version-set filters everything out).
func (u *universe) hasAnyCandidates(name string) bool {
	return len(u.repoByName[name]) > 0
}

// internByKey looks up, and interns if necessary, the exact candidate a
// caller-supplied fingerprint names (used for Locked/Pinned/Excluded
// handling). ok is false if no repository candidate matches the key.
func (u *universe) internByKey(key candidateKey) (CandidateID, bool) {
	if id, ok := u.candidateIDs[key]; ok {
		return id, true
	}
	for _, view := range u.repoByName[key.name] {
		if keyOf(view) == key {
			id, _ := u.internCandidate(view)
			return id, true
		}
	}
	return 0, false
}
