// Package project models MSBuild project files in their legacy (explicit item list)
// and SDK (implicit item enumeration) dialects.
package project

import (
	"context"
	"github.com/beevik/etree"
	"github.com/viant/afs"
	"github.com/viant/projmerge/config"
	"github.com/viant/projmerge/document"
	"log/slog"
	"strings"
)

// Kind identifies a project dialect
type Kind int

const (
	// Explicit projects list every item in their item groups
	Explicit Kind = iota
	// Implicit projects compile every source file under their directory
	Implicit
)

func (k Kind) String() string {
	if k == Implicit {
		return "implicit"
	}
	return "explicit"
}

// Project represents a loaded project file
type Project struct {
	FilePath  string // absolute path of the project file
	Dir       string // absolute path of the directory holding the project file
	Document  *etree.Document
	Root      *etree.Element
	namespace string
	dialect   dialect
	fs        afs.Service
	config    *config.Config
	logger    *slog.Logger
}

// Kind returns the project dialect
func (p *Project) Kind() Kind {
	return p.dialect.kind()
}

// Key returns the project identity: its absolute path, case-folded
func (p *Project) Key() string {
	return strings.ToLower(p.FilePath)
}

// Equal reports whether p and other denote the same project file
func (p *Project) Equal(other *Project) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Key() == other.Key()
}

func (p *Project) String() string {
	return p.FilePath
}

// Config returns the settings the project was loaded with
func (p *Project) Config() *config.Config {
	return p.config
}

// CompiledItems returns the items compiled or embedded by the project.
// The result is recomputed on every call.
func (p *Project) CompiledItems(ctx context.Context) ([]*etree.Element, error) {
	return p.dialect.compiledItems(ctx, p)
}

// ItemGroups returns the item groups of the project
func (p *Project) ItemGroups() []*etree.Element {
	return p.children(p.Root, ItemGroup)
}

// Items returns every element with an Include attribute inside any item group, in document order
func (p *Project) Items() []*etree.Element {
	var result []*etree.Element
	for _, group := range p.ItemGroups() {
		for _, item := range group.ChildElements() {
			if item.SelectAttr(IncludeAttr) != nil {
				result = append(result, item)
			}
		}
	}
	return result
}

// References returns Reference and PackageReference items
func (p *Project) References() []*etree.Element {
	var result []*etree.Element
	for _, group := range p.ItemGroups() {
		result = append(result, p.children(group, Reference)...)
		result = append(result, p.children(group, PackageReference)...)
	}
	return result
}

// ProjectReferences returns ProjectReference items
func (p *Project) ProjectReferences() []*etree.Element {
	var result []*etree.Element
	for _, group := range p.ItemGroups() {
		result = append(result, p.children(group, ProjectReference)...)
	}
	return result
}

// IncludedFilePaths returns Include values of file items declared in the document
func (p *Project) IncludedFilePaths() []string {
	var result []string
	for _, item := range p.fileItems() {
		result = append(result, Include(item))
	}
	return result
}

// IncludeElement returns the file item whose Include matches filePath case-insensitively, or nil
func (p *Project) IncludeElement(filePath string) *etree.Element {
	return find(p.fileItems(), filePath)
}

// EnsureReference merges reference into the project. It returns the existing equivalent
// reference with false, or the attached copy with true. A nil element means the reference
// is not importable into this project.
func (p *Project) EnsureReference(reference *etree.Element) (*etree.Element, bool) {
	if reference == nil {
		return nil, false
	}
	return p.dialect.ensureReference(p, reference)
}

// EnsureInclude merges a file item into the project. It returns the existing item with
// the same Include and false, or the attached copy and true.
func (p *Project) EnsureInclude(include *etree.Element) (*etree.Element, bool) {
	if include == nil {
		return nil, false
	}
	return p.ensure(include, "", p.Items(), nil)
}

// RemoveReference detaches the library reference matching filePath, if any
func (p *Project) RemoveReference(filePath string) {
	detach(find(p.References(), filePath))
}

// RemoveProjectReference detaches the project reference matching filePath, if any
func (p *Project) RemoveProjectReference(filePath string) {
	detach(find(p.ProjectReferences(), filePath))
}

// RemoveInclude detaches the file item matching filePath, if any
func (p *Project) RemoveInclude(filePath string) {
	detach(p.IncludeElement(filePath))
}

// ApplicationIcon returns the ApplicationIcon property, or nil
func (p *Project) ApplicationIcon() *etree.Element {
	return p.Property("ApplicationIcon")
}

// Save writes the project document to location
func (p *Project) Save(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		location = p.FilePath
	}
	return document.Save(ctx, p.fs, p.Document, location, p.config.Indent)
}

// ensure returns the element of existing sharing candidate's identity, or attaches a copy of
// candidate (renamed to tag when not empty, then passed to shape) to a matching item group.
func (p *Project) ensure(candidate *etree.Element, tag string, existing []*etree.Element, shape func(*etree.Element)) (*etree.Element, bool) {
	clone := document.Rehome(candidate, tag)
	if shape != nil {
		shape(clone)
	}
	key := identity(clone)
	for _, element := range existing {
		if identity(element) == key {
			return element, false
		}
	}
	p.adopt(clone)
	p.itemGroupFor(clone.Tag).AddChild(clone)
	return clone, true
}

// itemGroupFor returns the first item group holding items of kind, creating one when none does
func (p *Project) itemGroupFor(kind string) *etree.Element {
	for _, group := range p.ItemGroups() {
		if len(p.children(group, kind)) > 0 {
			return group
		}
	}
	group := etree.NewElement(ItemGroup)
	p.adopt(group)
	p.Root.AddChild(group)
	return group
}

// adopt moves element and its descendants into the project's namespace prefix
func (p *Project) adopt(element *etree.Element) {
	element.Space = p.Root.Space
	for _, child := range element.ChildElements() {
		p.adopt(child)
	}
}

func (p *Project) fileItems() []*etree.Element {
	var result []*etree.Element
	for _, item := range p.Items() {
		if IsFileKind(item.Tag) {
			result = append(result, item)
		}
	}
	return result
}

// children returns child elements of parent named tag within the project namespace
func (p *Project) children(parent *etree.Element, tag string) []*etree.Element {
	if parent == nil {
		return nil
	}
	var result []*etree.Element
	for _, child := range parent.ChildElements() {
		if child.Tag == tag && child.NamespaceURI() == p.namespace {
			result = append(result, child)
		}
	}
	return result
}

func find(elements []*etree.Element, include string) *etree.Element {
	for _, element := range elements {
		if strings.EqualFold(Include(element), include) {
			return element
		}
	}
	return nil
}

func detach(element *etree.Element) {
	if element == nil {
		return
	}
	if parent := element.Parent(); parent != nil {
		parent.RemoveChild(element)
	}
}
