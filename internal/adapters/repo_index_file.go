package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"condasolver/internal/ports"
)

// repodataRecord is one entry of a conda-style repodata.json
// "packages"/"packages.conda" map: name/version/build/build_number/
// depends/constrains, the wire format this adapter reads.
type repodataRecord struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	BuildString string   `json:"build"`
	BuildNumber int      `json:"build_number"`
	Timestamp   int64    `json:"timestamp"`
	Depends     []string `json:"depends"`
	Constrains  []string `json:"constrains"`
}

type repodataFile struct {
	Packages      map[string]repodataRecord `json:"packages"`
	PackagesConda map[string]repodataRecord `json:"packages.conda"`
}

// repoRecordView adapts one repodataRecord, plus the subdir and
// content hash its key/origin supply, to ports.RecordView.
type repoRecordView struct {
	rec    repodataRecord
	subdir string
	hash   string
}

func (v repoRecordView) Name() string        { return v.rec.Name }
func (v repoRecordView) Version() string     { return v.rec.Version }
func (v repoRecordView) BuildString() string { return v.rec.BuildString }
func (v repoRecordView) BuildNumber() int    { return v.rec.BuildNumber }
func (v repoRecordView) Subdir() string      { return v.subdir }
func (v repoRecordView) Hash() string        { return v.hash }
func (v repoRecordView) Timestamp() int64    { return v.rec.Timestamp }
func (v repoRecordView) Depends() []string   { return v.rec.Depends }
func (v repoRecordView) Constrains() []string { return v.rec.Constrains }

// RepoIndexFileAdapter reads one conda-style repodata.json file per
// configured subdir from disk into a fully-materialized
// ports.RepositoryView. It is the thinnest possible stand-in for a real
// repository fetch/cache layer: no network I/O, no caching, just file
// reads the solver is handed the result of before a solve begins.
type RepoIndexFileAdapter struct {
	Subdirs map[string]string // subdir name -> path to its repodata.json
	byName  map[string][]ports.RecordView
	loaded  bool
}

func NewRepoIndexFileAdapter(subdirs map[string]string) *RepoIndexFileAdapter {
	return &RepoIndexFileAdapter{Subdirs: subdirs}
}

func (a *RepoIndexFileAdapter) PackageNames() []string {
	a.mustLoad()
	names := make([]string, 0, len(a.byName))
	for name := range a.byName {
		names = append(names, name)
	}
	return names
}

func (a *RepoIndexFileAdapter) CandidatesByName(name string) []ports.RecordView {
	a.mustLoad()
	return a.byName[name]
}

// mustLoad panics on a malformed repodata.json rather than threading an
// error through the ports.RepositoryView interface, which has no
// error-returning methods since the solver expects an already
// fully-materialized view; callers that want a recoverable error should
// call Load explicitly first.
func (a *RepoIndexFileAdapter) mustLoad() {
	if a.loaded {
		return
	}
	if err := a.Load(); err != nil {
		panic(err)
	}
}

// Load reads every configured subdir's repodata.json eagerly. Calling
// it explicitly lets a caller surface a malformed index as an error
// before handing the adapter to the solver.
func (a *RepoIndexFileAdapter) Load() error {
	byName := map[string][]ports.RecordView{}
	for subdir, path := range a.Subdirs {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("repodata.json not found for subdir " + subdir).
				WithCause(err)
		}
		var file repodataFile
		if err := json.Unmarshal(data, &file); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid repodata.json for subdir " + subdir).
				WithCause(err)
		}
		for hash, rec := range file.Packages {
			byName[rec.Name] = append(byName[rec.Name], repoRecordView{rec: rec, subdir: subdir, hash: hash})
		}
		for hash, rec := range file.PackagesConda {
			byName[rec.Name] = append(byName[rec.Name], repoRecordView{rec: rec, subdir: subdir, hash: hash})
		}
	}
	a.byName = byName
	a.loaded = true
	return nil
}

var _ ports.RepositoryView = (*RepoIndexFileAdapter)(nil)
