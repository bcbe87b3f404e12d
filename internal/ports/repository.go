// Package ports declares the external collaborator interfaces the solver
// core consumes. None of these are implemented by the core itself:
// repository fetch/cache, archive handling, and environment construction
// are out of scope, so this package only describes the shapes the core
// needs handed to it.
package ports

// RecordView is the candidate metadata interface consumed by the rule
// encoder. All strings are normalized and all dependency/constraint
// expressions must parse successfully before entering the solver.
type RecordView interface {
	// Name is the normalized package name.
	Name() string
	// Version is the candidate's version string.
	Version() string
	// BuildString is the candidate's build string (e.g. "py310h1234_0").
	BuildString() string
	// BuildNumber is the candidate's build number, used as a sort
	// tiebreaker within a version.
	BuildNumber() int
	// Subdir is the (channel, subdir) origin the candidate was indexed
	// from, e.g. "linux-64".
	Subdir() string
	// Hash is a content hash distinguishing otherwise-identical builds.
	Hash() string
	// Timestamp is the candidate's upload time, used as a sort
	// tiebreaker within a (version, build number) group.
	Timestamp() int64
	// Depends lists this candidate's dependency expressions, each of the
	// form "name" or "name <version-set>".
	Depends() []string
	// Constrains lists this candidate's constraint expressions, in the
	// same "name" / "name <version-set>" form as Depends. Each names the
	// version range of that package this candidate can coexist with;
	// candidates of that name outside the range conflict with it.
	Constrains() []string
}

// RepositoryView enumerates the candidates of a particular (channel,
// subdir) origin. The solver is handed a fully-materialized view: it
// never calls back into RepositoryView concurrently with itself, and it
// never triggers network or disk I/O through this interface.
type RepositoryView interface {
	// PackageNames lists every package name this view has candidates for.
	PackageNames() []string
	// CandidatesByName returns every candidate of the given name known to
	// this view, in no particular order.
	CandidatesByName(name string) []RecordView
}
