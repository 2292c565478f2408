package project

import (
	"context"
)

// ReferencedProjects loads the projects directly referenced by p.
// References to files that do not exist are skipped.
func (p *Project) ReferencedProjects(ctx context.Context) ([]*Project, error) {
	var result []*Project
	for _, reference := range p.ProjectReferences() {
		include := Include(reference)
		if include == "" {
			continue
		}
		location := ResolvePath(p.Dir, include)
		referenced, err := Load(ctx, p.fs, location, p.options()...)
		if err != nil {
			if IsMissing(err) {
				p.logger.Debug("skipping missing project reference", "project", p.FilePath, "reference", location)
				continue
			}
			return nil, err
		}
		result = append(result, referenced)
	}
	return result, nil
}

// AllReferencedProjects returns every project reachable from p through project references,
// de-duplicated by Key, in depth-first order of first visit. p itself is never included.
func (p *Project) AllReferencedProjects(ctx context.Context) ([]*Project, error) {
	w := &walker{
		visiting: map[string]bool{p.Key(): true},
		seen:     map[string]bool{},
	}
	if err := w.walk(ctx, p); err != nil {
		return nil, err
	}
	return w.projects, nil
}

type walker struct {
	visiting map[string]bool
	seen     map[string]bool
	projects []*Project
}

func (w *walker) walk(ctx context.Context, p *Project) error {
	referenced, err := p.ReferencedProjects(ctx)
	if err != nil {
		return err
	}
	for _, candidate := range referenced {
		key := candidate.Key()
		if w.visiting[key] || w.seen[key] {
			continue
		}
		w.seen[key] = true
		w.projects = append(w.projects, candidate)
		w.visiting[key] = true
		err = w.walk(ctx, candidate)
		delete(w.visiting, key)
		if err != nil {
			return err
		}
	}
	return nil
}
