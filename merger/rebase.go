package merger

import (
	"fmt"
	"github.com/beevik/etree"
	"github.com/viant/projmerge/project"
	"golang.org/x/mod/semver"
	"strings"
)

// rebase rewrites item's Include as an absolute path anchored at origin and reports it to progress
func (m *Merger) rebase(origin string, item *etree.Element) {
	include := project.Include(item)
	if m.resolve(origin, item) {
		m.announce(item.Tag, include)
	}
}

// resolve rewrites item's Include as an absolute path anchored at origin and reports whether it did.
// Library references only get their HintPath rewritten; identifier items are left untouched.
func (m *Merger) resolve(origin string, item *etree.Element) bool {
	kind := item.Tag
	if project.IsLibraryKind(kind) {
		m.rebaseHintPath(origin, item)
		return false
	}
	if m.config.IsNonPathItem(kind) {
		return false
	}
	include := project.Include(item)
	if include == "" || isExpression(include) {
		return false
	}
	item.CreateAttr(project.IncludeAttr, project.ResolvePath(origin, include))
	return true
}

func (m *Merger) announce(kind, include string) {
	fmt.Fprintf(m.progress, "%s: %s\n", kind, include)
}

func (m *Merger) rebaseHintPath(origin string, reference *etree.Element) {
	for _, hint := range reference.SelectElements(project.HintPath) {
		if text := strings.TrimSpace(hint.Text()); text != "" && !isExpression(text) {
			hint.SetText(project.ResolvePath(origin, text))
		}
	}
}

// isExpression reports whether value starts with an MSBuild property or item expansion,
// whose location cannot be known without evaluation.
func isExpression(value string) bool {
	value = strings.TrimSpace(value)
	return strings.HasPrefix(value, "$(") || strings.HasPrefix(value, "@(")
}

func versionConflict(kept, candidate *etree.Element) (*Conflict, bool) {
	keptVersion, candidateVersion := project.PackageVersion(kept), project.PackageVersion(candidate)
	if keptVersion == "" || candidateVersion == "" || strings.EqualFold(keptVersion, candidateVersion) {
		return nil, false
	}
	return &Conflict{
		Include:   project.Include(kept),
		Kept:      keptVersion,
		Discarded: candidateVersion,
	}, true
}

// Newer returns which side of the conflict holds the higher semantic version: "kept",
// "discarded", or "unknown" when either version is not semantic.
func (c *Conflict) Newer() string {
	kept, discarded := "v"+c.Kept, "v"+c.Discarded
	if !semver.IsValid(kept) || !semver.IsValid(discarded) {
		return "unknown"
	}
	if semver.Compare(kept, discarded) >= 0 {
		return "kept"
	}
	return "discarded"
}
