package project

import (
	"context"
	"fmt"
	"github.com/beevik/etree"
	"github.com/viant/afs/url"
	"path/filepath"
	"sort"
)

// dialect holds the policies that differ between project kinds
type dialect interface {
	kind() Kind
	compiledItems(ctx context.Context, p *Project) ([]*etree.Element, error)
	ensureReference(p *Project, reference *etree.Element) (*etree.Element, bool)
}

// explicitDialect reads items from the document's item groups
type explicitDialect struct{}

func (explicitDialect) kind() Kind {
	return Explicit
}

func (explicitDialect) compiledItems(_ context.Context, p *Project) ([]*etree.Element, error) {
	return p.Items(), nil
}

func (explicitDialect) ensureReference(p *Project, reference *etree.Element) (*etree.Element, bool) {
	return p.ensure(reference, "", p.References(), nil)
}

// implicitDialect enumerates source files under the project directory and
// imports libraries as package references
type implicitDialect struct{}

func (implicitDialect) kind() Kind {
	return Implicit
}

func (d implicitDialect) compiledItems(ctx context.Context, p *Project) ([]*etree.Element, error) {
	var result []*etree.Element
	if err := d.enumerate(ctx, p, p.Dir, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// enumerate appends items for files in dir, then descends into sub directories, both in name order
func (d implicitDialect) enumerate(ctx context.Context, p *Project, dir string, result *[]*etree.Element) error {
	objects, err := p.fs.List(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].Name() < objects[j].Name()
	})
	var subDirs []string
	for _, object := range objects {
		location := filepath.Clean(filepath.FromSlash(url.Path(object.URL())))
		if object.IsDir() {
			if location == dir || p.config.IsSkippedDir(object.Name()) {
				continue
			}
			subDirs = append(subDirs, location)
			continue
		}
		var kind string
		switch {
		case p.config.IsSourceFile(location):
			kind = Compile
		case p.config.IsResourceFile(location):
			kind = EmbeddedResource
		default:
			continue
		}
		item := etree.NewElement(kind)
		item.CreateAttr(IncludeAttr, location)
		*result = append(*result, item)
	}
	for _, subDir := range subDirs {
		if err = d.enumerate(ctx, p, subDir, result); err != nil {
			return err
		}
	}
	return nil
}

func (implicitDialect) ensureReference(p *Project, reference *etree.Element) (*etree.Element, bool) {
	name := AssemblyName(Include(reference))
	if p.config.IsRuntimeLibrary(name) {
		return nil, false
	}
	if reference.Tag != Reference {
		return p.ensure(reference, "", p.References(), nil)
	}
	return p.ensure(reference, PackageReference, p.References(), func(clone *etree.Element) {
		include := Include(clone)
		clone.CreateAttr(IncludeAttr, AssemblyName(include))
		if version := AssemblyVersion(include); version != "" && PackageVersion(clone) == "" {
			clone.CreateAttr(VersionAttr, version)
		}
		for _, hint := range clone.SelectElements(HintPath) {
			clone.RemoveChild(hint)
		}
	})
}
