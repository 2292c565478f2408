package project

import (
	"context"
	"errors"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/projmerge/config"
	"github.com/viant/projmerge/document"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MSBuildNamespace is the namespace of legacy project documents
	MSBuildNamespace = "http://schemas.microsoft.com/developer/msbuild/2003"

	sdkAttr   = "Sdk"
	sdkPrefix = "microsoft.net.sdk"
	rootTag   = "Project"
)

// Option configures project loading
type Option func(*Project)

// WithConfig sets the settings used by the project and every project it references
func WithConfig(cfg *config.Config) Option {
	return func(p *Project) {
		if cfg != nil {
			p.config = cfg
		}
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Project) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Load reads the project file at location and selects its dialect: .csproj and .vbproj
// files whose root Sdk attribute names a Microsoft.NET.Sdk are implicit, anything else is explicit.
func Load(ctx context.Context, fs afs.Service, location string, options ...Option) (*Project, error) {
	filePath, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path of %s: %w", location, err)
	}
	doc, err := document.Load(ctx, fs, filePath)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root.Tag != rootTag {
		return nil, &document.ParseError{Path: filePath, Err: fmt.Errorf("unexpected root element %q", root.FullTag())}
	}
	p := &Project{
		FilePath:  filePath,
		Dir:       filepath.Dir(filePath),
		Document:  doc,
		Root:      root,
		namespace: root.NamespaceURI(),
		dialect:   explicitDialect{},
		fs:        fs,
		config:    config.DefaultConfig(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(p)
	}
	if isImplicit(filePath, root.SelectAttrValue(sdkAttr, "")) {
		p.dialect = implicitDialect{}
	}
	return p, nil
}

func isImplicit(filePath, sdk string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".csproj", ".vbproj":
		return strings.HasPrefix(strings.ToLower(strings.TrimSpace(sdk)), sdkPrefix)
	}
	return false
}

// IsMissing reports whether err was caused by a project file that does not exist
func IsMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// options returns the options that reproduce p's settings for a referenced project
func (p *Project) options() []Option {
	return []Option{WithConfig(p.config), WithLogger(p.logger)}
}
