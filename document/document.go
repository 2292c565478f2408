// Package document loads and persists MSBuild project files as editable XML trees.
package document

import (
	"bytes"
	"context"
	"fmt"
	"github.com/beevik/etree"
	"github.com/viant/afs"
	"io/fs"
	"path/filepath"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

// ParseError reports a file that is not well-formed XML
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads location and parses it into a document tree.
// A missing location returns an error wrapping fs.ErrNotExist.
func Load(ctx context.Context, service afs.Service, location string) (*etree.Document, error) {
	exists, err := service.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", location, err)
	}
	if !exists {
		return nil, fmt.Errorf("failed to load %s: %w", location, fs.ErrNotExist)
	}
	data, err := service.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", location, err)
	}
	return Parse(location, data)
}

// Parse parses data into a document tree; location is used for error reporting only.
func Parse(location string, data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &ParseError{Path: location, Err: err}
	}
	if doc.Root() == nil {
		return nil, &ParseError{Path: location, Err: fmt.Errorf("missing root element")}
	}
	return doc, nil
}

// Bytes serializes doc, indenting elements by indent spaces when indent > 0
func Bytes(doc *etree.Document, indent int) ([]byte, error) {
	if indent > 0 {
		doc.Indent(indent)
	}
	return doc.WriteToBytes()
}

// Save writes doc to location, creating the parent directory when needed.
func Save(ctx context.Context, service afs.Service, doc *etree.Document, location string, indent int) ([]byte, error) {
	data, err := Bytes(doc, indent)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", location, err)
	}
	if err = ensureDir(ctx, service, filepath.Dir(location)); err != nil {
		return nil, err
	}
	if err = service.Upload(ctx, location, fileMode, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", location, err)
	}
	return data, nil
}

func ensureDir(ctx context.Context, service afs.Service, dir string) error {
	exists, err := service.Exists(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to check directory %s: %w", dir, err)
	}
	if exists {
		return nil
	}
	if err = service.Create(ctx, dir, dirMode|fs.ModeDir, true); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
