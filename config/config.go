// Package config holds projmerge settings.
//
// Settings come from DefaultConfig, optionally overridden by a YAML (.yaml, .yml)
// or TOML (.toml) file. A missing settings file is not an error.
package config

import (
	"context"
	"fmt"
	"github.com/pelletier/go-toml/v2"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
	"path/filepath"
	"strings"
)

// Config controls project loading and merging
type Config struct {
	// RuntimeLibraries are framework assemblies never imported as package references
	RuntimeLibraries []string `yaml:"runtimeLibraries" toml:"runtimeLibraries"`
	// SourceExtensions are compiled by convention in SDK style projects
	SourceExtensions []string `yaml:"sourceExtensions" toml:"sourceExtensions"`
	// ResourceExtensions are embedded by convention in SDK style projects
	ResourceExtensions []string `yaml:"resourceExtensions" toml:"resourceExtensions"`
	// MetadataNames are file names (without extension) of per-project assembly metadata
	MetadataNames []string `yaml:"metadataNames" toml:"metadataNames"`
	// MetadataSuffixes are file name suffixes (without extension) of per-project assembly metadata
	MetadataSuffixes []string `yaml:"metadataSuffixes" toml:"metadataSuffixes"`
	// NonPathItems are item kinds whose Include is an identifier, not a path
	NonPathItems []string `yaml:"nonPathItems" toml:"nonPathItems"`
	// SkipDirs are directory names not scanned by convention enumeration
	SkipDirs         []string `yaml:"skipDirs,omitempty" toml:"skipDirs,omitempty"`
	RemoveStrongName bool     `yaml:"removeStrongName" toml:"removeStrongName"`
	Indent           int      `yaml:"indent" toml:"indent"`
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	return &Config{
		RuntimeLibraries:   []string{"System", "System.Core", "System.Drawing", "System.Windows.Forms", "Microsoft.CSharp"},
		SourceExtensions:   []string{".cs", ".vb"},
		ResourceExtensions: []string{".resx"},
		MetadataNames:      []string{"assemblyinfo"},
		MetadataSuffixes:   []string{".assemblyinfo", ".assemblyattributes"},
		NonPathItems:       []string{"Service", "BootstrapperPackage"},
		Indent:             2,
	}
}

// Load reads settings from location on top of DefaultConfig; an empty or missing location yields defaults.
func Load(ctx context.Context, fs afs.Service, location string) (*Config, error) {
	cfg := DefaultConfig()
	if location == "" {
		return cfg, nil
	}
	exists, err := fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check config %s: %w", location, err)
	}
	if !exists {
		return cfg, nil
	}
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", location, err)
	}
	if err = Decode(location, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode unmarshals data into cfg, selecting the format from location's extension
func Decode(location string, data []byte, cfg *Config) error {
	var err error
	switch strings.ToLower(filepath.Ext(location)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format: %s", location)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", location, err)
	}
	return nil
}

// IsRuntimeLibrary reports whether name is a well-known framework assembly
func (c *Config) IsRuntimeLibrary(name string) bool {
	return containsFold(c.RuntimeLibraries, name)
}

// IsNonPathItem reports whether items of kind carry identifiers rather than paths
func (c *Config) IsNonPathItem(kind string) bool {
	return containsFold(c.NonPathItems, kind)
}

// IsSkippedDir reports whether directory name is excluded from convention enumeration
func (c *Config) IsSkippedDir(name string) bool {
	return containsFold(c.SkipDirs, name)
}

// IsMetadataFile reports whether the file at path holds per-project assembly metadata
func (c *Config) IsMetadataFile(path string) bool {
	base := filepath.Base(filepath.FromSlash(strings.ReplaceAll(path, `\`, "/")))
	name := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	for _, candidate := range c.MetadataNames {
		if name == strings.ToLower(candidate) {
			return true
		}
	}
	for _, suffix := range c.MetadataSuffixes {
		if strings.HasSuffix(name, strings.ToLower(suffix)) {
			return true
		}
	}
	return false
}

// IsSourceFile reports whether path is compiled by convention
func (c *Config) IsSourceFile(path string) bool {
	return containsFold(c.SourceExtensions, filepath.Ext(path))
}

// IsResourceFile reports whether path is embedded by convention
func (c *Config) IsResourceFile(path string) bool {
	return containsFold(c.ResourceExtensions, filepath.Ext(path))
}

func containsFold(values []string, candidate string) bool {
	for _, value := range values {
		if strings.EqualFold(value, candidate) {
			return true
		}
	}
	return false
}
