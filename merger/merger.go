// Package merger collapses a project and every project it references into the root project.
package merger

import (
	"context"
	"fmt"
	"github.com/beevik/etree"
	"github.com/viant/afs"
	"github.com/viant/projmerge/config"
	"github.com/viant/projmerge/document"
	"github.com/viant/projmerge/project"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// Merger inlines referenced projects into a root project
type Merger struct {
	config           *config.Config
	progress         io.Writer
	logger           *slog.Logger
	removeStrongName bool
}

// New creates a merger; a nil cfg selects config.DefaultConfig
func New(cfg *config.Config, options ...Option) *Merger {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := &Merger{
		config:           cfg,
		progress:         io.Discard,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		removeStrongName: cfg.RemoveStrongName,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Run loads the project at input, merges it and writes the result to output
func (m *Merger) Run(ctx context.Context, fs afs.Service, input, output string) (*Report, error) {
	root, err := project.Load(ctx, fs, input, project.WithConfig(m.config), project.WithLogger(m.logger))
	if err != nil {
		return nil, err
	}
	report, err := m.Merge(ctx, root)
	if err != nil {
		return nil, err
	}
	if report.Output, err = filepath.Abs(output); err != nil {
		return nil, fmt.Errorf("failed to get absolute path of %s: %w", output, err)
	}
	data, err := root.Save(ctx, report.Output)
	if err != nil {
		return nil, err
	}
	if report.Digest, err = Digest(data); err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", report.Output, err)
	}
	return report, nil
}

// Merge inlines every project reachable from root into root's document.
// Referenced projects are read but never modified.
func (m *Merger) Merge(ctx context.Context, root *project.Project) (*Report, error) {
	report := &Report{Root: root.FilePath, Kind: root.Kind()}
	items, err := root.CompiledItems(ctx)
	if err != nil {
		return nil, err
	}
	if root.Kind() == project.Implicit {
		// declared items sit next to the enumerated ones
		items = append(items, root.Items()...)
	}
	for _, item := range items {
		m.rebase(root.Dir, item)
	}
	for _, reference := range root.References() {
		m.rebaseHintPath(root.Dir, reference)
	}

	referenced, err := root.AllReferencedProjects(ctx)
	if err != nil {
		return nil, err
	}
	for _, rp := range referenced {
		report.Projects = append(report.Projects, rp.FilePath)
		for _, reference := range rp.References() {
			m.mergeReference(root, rp, reference, report)
		}
		if err = m.mergeItems(ctx, root, rp, report); err != nil {
			return nil, err
		}
	}

	for _, reference := range root.ProjectReferences() {
		root.RemoveProjectReference(project.Include(reference))
		report.RemovedProjectReferences++
	}
	if icon := root.ApplicationIcon(); icon != nil {
		if text := strings.TrimSpace(icon.Text()); text != "" && !isExpression(text) {
			icon.SetText(project.ResolvePath(root.Dir, text))
		}
	}
	if m.removeStrongName {
		root.RemoveStrongName()
	}
	return report, nil
}

func (m *Merger) mergeItems(ctx context.Context, root, rp *project.Project, report *Report) error {
	items, err := rp.CompiledItems(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		kind, include := item.Tag, project.Include(item)
		if project.IsLibraryKind(kind) || kind == project.ProjectReference {
			continue
		}
		if m.config.IsMetadataFile(include) {
			m.logger.Debug("skipping assembly metadata", "project", rp.FilePath, "include", include)
			report.skip(rp, kind, include, ReasonMetadata)
			continue
		}
		candidate := document.Rehome(item, "")
		resolved := m.resolve(rp.Dir, candidate)
		if _, added := root.EnsureInclude(candidate); !added {
			m.logger.Debug("skipping duplicate item", "project", rp.FilePath, "kind", kind, "include", include)
			report.skip(rp, kind, include, ReasonDuplicate)
			continue
		}
		if resolved {
			m.announce(kind, include)
		}
		report.Items++
	}
	return nil
}

func (m *Merger) mergeReference(root, rp *project.Project, reference *etree.Element, report *Report) {
	include := project.Include(reference)
	merged, added := root.EnsureReference(reference)
	switch {
	case merged == nil:
		m.logger.Debug("skipping runtime library", "project", rp.FilePath, "include", include)
		report.skip(rp, reference.Tag, include, ReasonRuntimeLibrary)
	case added:
		m.rebaseHintPath(rp.Dir, merged)
		report.References++
	default:
		if conflict, ok := versionConflict(merged, reference); ok {
			conflict.Project = rp.FilePath
			m.logger.Warn("package version conflict", "include", conflict.Include, "kept", conflict.Kept, "discarded", conflict.Discarded, "project", rp.FilePath, "newer", conflict.Newer())
			report.Conflicts = append(report.Conflicts, *conflict)
		}
		report.skip(rp, reference.Tag, include, ReasonDuplicate)
	}
}
