// Package repository resolves user supplied locations to MSBuild project files.
package repository

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"path/filepath"
	"sort"
	"strings"
)

// Detector locates MSBuild project files
type Detector struct {
	fs afs.Service
	// project file extensions
	markers []string
}

// New creates a detector for .csproj, .vbproj and .proj files
func New(fs afs.Service) *Detector {
	return &Detector{
		fs: fs,
		markers: []string{
			".csproj", // C# projects
			".vbproj", // Visual Basic projects
			".proj",   // generic MSBuild projects
		},
	}
}

// IsProjectFile reports whether name carries a project file extension
func (d *Detector) IsProjectFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, marker := range d.markers {
		if ext == marker {
			return true
		}
	}
	return false
}

// DetectProject resolves location to an absolute project file path.
// A project file resolves to itself, a directory to the single project file it holds,
// and any other file to the project file of the nearest enclosing project directory.
func (d *Detector) DetectProject(ctx context.Context, location string) (string, error) {
	absPath, err := filepath.Abs(location)
	if err != nil {
		return "", err
	}
	object, err := d.fs.Object(ctx, absPath)
	if err != nil {
		return "", fmt.Errorf("failed to locate %s: %w", absPath, err)
	}
	if !object.IsDir() {
		if d.IsProjectFile(absPath) {
			return absPath, nil
		}
		root, err := d.findProjectRoot(ctx, filepath.Dir(absPath))
		if err != nil {
			return "", err
		}
		if root == "" {
			return "", fmt.Errorf("no project file found above %s", absPath)
		}
		absPath = root
	}
	files, err := d.ProjectFiles(ctx, absPath)
	if err != nil {
		return "", err
	}
	switch len(files) {
	case 0:
		return "", fmt.Errorf("no project file found in %s", absPath)
	case 1:
		return files[0], nil
	}
	return "", fmt.Errorf("ambiguous project directory %s: %s", absPath, strings.Join(files, ", "))
}

// ProjectFiles returns the project files held directly in dir, sorted by name
func (d *Detector) ProjectFiles(ctx context.Context, dir string) ([]string, error) {
	objects, err := d.fs.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var files []string
	for _, object := range objects {
		if object.IsDir() || !d.IsProjectFile(object.Name()) {
			continue
		}
		files = append(files, filepath.Clean(filepath.FromSlash(url.Path(object.URL()))))
	}
	sort.Strings(files)
	return files, nil
}

// findProjectRoot searches up from startDir for a directory holding a project file
func (d *Detector) findProjectRoot(ctx context.Context, startDir string) (string, error) {
	dir := startDir
	for {
		files, err := d.ProjectFiles(ctx, dir)
		if err != nil {
			return "", err
		}
		if len(files) > 0 {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// We've reached the filesystem root with no match
			return "", nil
		}
		dir = parent
	}
}
