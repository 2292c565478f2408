package project_test

import (
	"context"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/projmerge/document"
	"github.com/viant/projmerge/project"
	"os"
	"path/filepath"
	"testing"
)

const legacyHeader = `<?xml version="1.0" encoding="utf-8"?>
<Project ToolsVersion="15.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
`

// writeTree creates files (relative path => content) under a temp directory and returns it
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		location := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
		require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	}
	return dir
}

func load(t *testing.T, location string, options ...project.Option) *project.Project {
	t.Helper()
	p, err := project.Load(context.Background(), afs.New(), location, options...)
	require.NoError(t, err)
	return p
}

func serialize(t *testing.T, p *project.Project) string {
	t.Helper()
	data, err := document.Bytes(p.Document, 2)
	require.NoError(t, err)
	return string(data)
}

func includes(elements []*etree.Element) []string {
	var result []string
	for _, element := range elements {
		result = append(result, element.Tag+":"+project.Include(element))
	}
	return result
}
