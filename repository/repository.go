package repository

import (
	"context"
	"path/filepath"
	"strings"
)

// Repository describes a resolved merge input
type Repository struct {
	Kind        string // project file type: csproj, vbproj or proj
	Root        string // absolute directory holding the project file
	Origin      string // location as supplied
	ProjectFile string // absolute project file path
	Name        string // project file name without extension
}

// Detect resolves location like DetectProject and describes the result
func (d *Detector) Detect(ctx context.Context, location string) (*Repository, error) {
	projectFile, err := d.DetectProject(ctx, location)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(projectFile)
	ext := filepath.Ext(base)
	return &Repository{
		Kind:        strings.ToLower(strings.TrimPrefix(ext, ".")),
		Root:        filepath.Dir(projectFile),
		Origin:      location,
		ProjectFile: projectFile,
		Name:        strings.TrimSuffix(base, ext),
	}, nil
}
