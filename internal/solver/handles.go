package solver

// NameID is a stable integer handle for an interned package name.
type NameID int32

// VersionSetID is a stable integer handle for an interned version-set
// expression, paired with the package name it applies to.
type VersionSetID int32

// CandidateID is a stable integer handle for an interned candidate.
// RootCandidate is reserved for the synthetic root forced true at
// decision level 0.
type CandidateID int32

// RootCandidate is the synthetic candidate whose dependency list is the
// user's top-level requirements and whose conflicts are the user's
// top-level constraints. It is handle 0, per spec.
const RootCandidate CandidateID = 0

// ClauseID is a stable integer handle for a clause in the clause arena.
// RootClause is always the install-root unit clause (invariant 4).
type ClauseID int32

// RootClause is the unit clause that forces RootCandidate true.
const RootClause ClauseID = 0

// noClause marks a decision stack entry as a decide rather than a
// unit propagation, and marks an unused watch-chain link.
const noClause ClauseID = -1
