package project

import (
	"github.com/beevik/etree"
	"path/filepath"
	"strings"
)

// Item kinds
const (
	Compile          = "Compile"
	EmbeddedResource = "EmbeddedResource"
	Content          = "Content"
	Page             = "Page"
	None             = "None"
	Reference        = "Reference"
	PackageReference = "PackageReference"
	ProjectReference = "ProjectReference"

	ItemGroup     = "ItemGroup"
	PropertyGroup = "PropertyGroup"

	IncludeAttr = "Include"
	VersionAttr = "Version"
	HintPath    = "HintPath"
)

var fileKinds = map[string]bool{
	Compile:          true,
	EmbeddedResource: true,
	Content:          true,
	Page:             true,
	None:             true,
}

// IsFileKind reports whether items of kind name a file to compile or embed
func IsFileKind(kind string) bool {
	return fileKinds[kind]
}

// IsLibraryKind reports whether items of kind name a library
func IsLibraryKind(kind string) bool {
	return kind == Reference || kind == PackageReference
}

// Include returns the trimmed Include attribute of element, or "" if absent
func Include(element *etree.Element) string {
	if element == nil {
		return ""
	}
	return strings.TrimSpace(element.SelectAttrValue(IncludeAttr, ""))
}

// AssemblyName returns the simple name of a possibly assembly-qualified reference,
// i.e. "Foo" for "Foo, Version=1.0.0.0, Culture=neutral".
func AssemblyName(include string) string {
	if index := strings.Index(include, ","); index != -1 {
		include = include[:index]
	}
	return strings.TrimSpace(include)
}

// AssemblyVersion returns the Version= part of an assembly-qualified reference, or ""
func AssemblyVersion(include string) string {
	parts := strings.Split(include, ",")
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), VersionAttr) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// identity returns the de-duplication key of an item
func identity(element *etree.Element) string {
	include := Include(element)
	if IsLibraryKind(element.Tag) {
		include = AssemblyName(include)
	}
	return strings.ToLower(include)
}

// ResolvePath interprets value as a path relative to origin and returns it absolute and cleaned.
// Backslash separators are accepted on every platform.
func ResolvePath(origin, value string) string {
	value = filepath.FromSlash(strings.ReplaceAll(value, `\`, "/"))
	if !filepath.IsAbs(value) {
		value = filepath.Join(origin, value)
	}
	return filepath.Clean(value)
}

// PackageVersion returns the Version attribute or Version child text of a package reference
func PackageVersion(element *etree.Element) string {
	if element == nil {
		return ""
	}
	if version := element.SelectAttrValue(VersionAttr, ""); version != "" {
		return strings.TrimSpace(version)
	}
	if child := element.SelectElement(VersionAttr); child != nil {
		return strings.TrimSpace(child.Text())
	}
	return ""
}
