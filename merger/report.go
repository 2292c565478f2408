package merger

import (
	"github.com/viant/projmerge/project"
)

// Skip reasons
const (
	ReasonMetadata       = "assembly metadata"
	ReasonRuntimeLibrary = "runtime library"
	ReasonDuplicate      = "duplicate"
)

// Skip records an item that was not merged
type Skip struct {
	Project string
	Kind    string
	Include string
	Reason  string
}

// Conflict records a package referenced with different versions; the first version wins
type Conflict struct {
	Include   string
	Kept      string
	Discarded string
	Project   string
}

// Report summarizes a merge
type Report struct {
	Root                     string
	Output                   string
	Kind                     project.Kind
	Projects                 []string // merged projects, in merge order
	Items                    int      // file items added to the root
	References               int      // library references added to the root
	RemovedProjectReferences int
	Skipped                  []Skip
	Conflicts                []Conflict
	Digest                   uint64 // highwayhash of the saved output
}

func (r *Report) skip(p *project.Project, kind, include, reason string) {
	r.Skipped = append(r.Skipped, Skip{Project: p.FilePath, Kind: kind, Include: include, Reason: reason})
}
