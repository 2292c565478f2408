package config

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "projmerge.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(strings.TrimSpace(`
runtimeLibraries:
  - System
  - System.Xml
skipDirs:
  - bin
  - obj
removeStrongName: true
indent: 4
`)), 0o644))
	tomlPath := filepath.Join(dir, "projmerge.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(strings.TrimSpace(`
sourceExtensions = [".cs"]
nonPathItems = ["Service"]
`)), 0o644))
	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("indent: [1"), 0o644))
	jsonPath := filepath.Join(dir, "projmerge.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte("{}"), 0o644))

	testCases := []struct {
		description string
		location    string
		expect      func(t *testing.T, cfg *Config)
		expectErr   bool
	}{
		{
			description: "defaults without location",
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			description: "defaults when missing",
			location:    filepath.Join(dir, "missing.yaml"),
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			description: "yaml overrides",
			location:    yamlPath,
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"System", "System.Xml"}, cfg.RuntimeLibraries)
				assert.Equal(t, []string{"bin", "obj"}, cfg.SkipDirs)
				assert.True(t, cfg.RemoveStrongName)
				assert.Equal(t, 4, cfg.Indent)
				assert.Equal(t, DefaultConfig().SourceExtensions, cfg.SourceExtensions)
			},
		},
		{
			description: "toml overrides",
			location:    tomlPath,
			expect: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{".cs"}, cfg.SourceExtensions)
				assert.Equal(t, []string{"Service"}, cfg.NonPathItems)
				assert.Equal(t, DefaultConfig().RuntimeLibraries, cfg.RuntimeLibraries)
			},
		},
		{description: "malformed yaml", location: badPath, expectErr: true},
		{description: "unsupported format", location: jsonPath, expectErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			cfg, err := Load(context.Background(), afs.New(), testCase.location)
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			testCase.expect(t, cfg)
		})
	}
}

func TestConfig_IsMetadataFile(t *testing.T) {
	cfg := DefaultConfig()
	testCases := []struct {
		path   string
		expect bool
	}{
		{path: "AssemblyInfo.cs", expect: true},
		{path: `Properties\AssemblyInfo.cs`, expect: true},
		{path: "Foo.AssemblyInfo.vb", expect: true},
		{path: "X.AssemblyAttributes.cs", expect: true},
		{path: "/tmp/obj/Debug/net8.0/.NETCoreApp,Version=v8.0.AssemblyAttributes.cs", expect: true},
		{path: "assemblyinfo", expect: true},
		{path: "MyAssemblyInfo.cs", expect: false},
		{path: "AssemblyInfoHelper.cs", expect: false},
		{path: "Program.cs", expect: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.path, func(t *testing.T) {
			assert.Equal(t, testCase.expect, cfg.IsMetadataFile(testCase.path))
		})
	}
}

func TestConfig_Predicates(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.IsRuntimeLibrary("system.windows.forms"))
	assert.False(t, cfg.IsRuntimeLibrary("System.Xml"))
	assert.True(t, cfg.IsSourceFile("a.CS"))
	assert.True(t, cfg.IsSourceFile("b.vb"))
	assert.False(t, cfg.IsSourceFile("c.fs"))
	assert.True(t, cfg.IsResourceFile("Strings.resx"))
	assert.True(t, cfg.IsNonPathItem("service"))
	assert.False(t, cfg.IsSkippedDir("obj"))
}
