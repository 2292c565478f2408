package project_test

import (
	"context"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/projmerge/project"
	"path/filepath"
	"strings"
	"testing"
)

const legacyProject = legacyHeader + `  <PropertyGroup>
    <AssemblyName>Legacy</AssemblyName>
    <ApplicationIcon>app.ico</ApplicationIcon>
  </PropertyGroup>
  <PropertyGroup Condition="'$(Configuration)' == 'Release'">
    <Optimize>true</Optimize>
  </PropertyGroup>
  <ItemGroup>
    <Reference Include="System" />
    <PackageReference Include="Foo" Version="1.0.0" />
  </ItemGroup>
  <ItemGroup>
    <Compile Include="a.cs" />
    <Compile Include="sub\b.cs" />
    <Content Include="readme.txt" />
    <Folder Include="empty\" />
  </ItemGroup>
  <ItemGroup>
    <ProjectReference Include="..\lib\Lib.csproj" />
  </ItemGroup>
</Project>
`

func newElement(tag, include string) *etree.Element {
	element := etree.NewElement(tag)
	element.CreateAttr(project.IncludeAttr, include)
	return element
}

func TestProject_Enumeration(t *testing.T) {
	dir := writeTree(t, map[string]string{"app/App.csproj": legacyProject})
	p := load(t, filepath.Join(dir, "app", "App.csproj"))

	items, err := p.CompiledItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Reference:System",
		"PackageReference:Foo",
		"Compile:a.cs",
		`Compile:sub\b.cs`,
		"Content:readme.txt",
		`Folder:empty\`,
		`ProjectReference:..\lib\Lib.csproj`,
	}, includes(items))
	assert.Equal(t, []string{"Reference:System", "PackageReference:Foo"}, includes(p.References()))
	assert.Equal(t, []string{`ProjectReference:..\lib\Lib.csproj`}, includes(p.ProjectReferences()))
	assert.Equal(t, []string{"a.cs", `sub\b.cs`, "readme.txt"}, p.IncludedFilePaths())
	assert.Len(t, p.ItemGroups(), 3)
}

func TestProject_EnsureInclude(t *testing.T) {
	dir := writeTree(t, map[string]string{"app/App.csproj": legacyProject})

	testCases := []struct {
		description string
		candidate   *etree.Element
		expectAdded bool
		expectGroup int
	}{
		{description: "duplicate, case insensitive", candidate: newElement(project.Compile, "A.CS"), expectGroup: 1},
		{description: "new item joins group of its kind", candidate: newElement(project.Compile, "c.cs"), expectAdded: true, expectGroup: 1},
		{description: "new kind creates a group", candidate: newElement(project.EmbeddedResource, "r.resx"), expectAdded: true, expectGroup: 3},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			p := load(t, filepath.Join(dir, "app", "App.csproj"))
			merged, added := p.EnsureInclude(testCase.candidate)
			require.NotNil(t, merged)
			assert.Equal(t, testCase.expectAdded, added)
			assert.True(t, merged != testCase.candidate, "candidate must not be attached")
			assert.Nil(t, testCase.candidate.Parent())
			assert.Equal(t, p.ItemGroups()[testCase.expectGroup], merged.Parent())
			assert.Equal(t, project.MSBuildNamespace, merged.NamespaceURI())
		})
	}
}

func TestProject_EnsureReference_Explicit(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app/App.csproj": legacyProject,
		"sdk/Sdk.csproj": `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <PackageReference Include="Bar" Version="2.0.0"><PrivateAssets>all</PrivateAssets></PackageReference>
    <Reference Include="system" />
    <Reference Include="System.Drawing" />
  </ItemGroup>
</Project>`,
	})
	p := load(t, filepath.Join(dir, "app", "App.csproj"))
	sdk := load(t, filepath.Join(dir, "sdk", "Sdk.csproj"))
	references := sdk.References()

	merged, added := p.EnsureReference(references[0])
	assert.False(t, added)
	assert.Equal(t, "System", project.Include(merged))

	merged, added = p.EnsureReference(references[1])
	assert.True(t, added)
	assert.Equal(t, project.Reference, merged.Tag)
	assert.Equal(t, p.ItemGroups()[0], merged.Parent())

	merged, added = p.EnsureReference(references[2])
	assert.True(t, added)
	assert.Equal(t, project.PackageReference, merged.Tag)
	assert.Equal(t, "2.0.0", project.PackageVersion(merged))
	assert.Equal(t, "all", merged.SelectElement("PrivateAssets").Text())
	assert.Equal(t, project.MSBuildNamespace, merged.NamespaceURI())

	assert.Equal(t, 1, strings.Count(serialize(t, p), "xmlns"))
	assert.Len(t, sdk.References(), 3, "source project must be left intact")
}

func TestProject_Remove(t *testing.T) {
	dir := writeTree(t, map[string]string{"app/App.csproj": legacyProject})
	p := load(t, filepath.Join(dir, "app", "App.csproj"))

	p.RemoveInclude(`SUB\B.CS`)
	p.RemoveInclude("missing.cs")
	p.RemoveReference("foo")
	p.RemoveProjectReference(`..\LIB\lib.csproj`)

	assert.Equal(t, []string{"a.cs", "readme.txt"}, p.IncludedFilePaths())
	assert.Equal(t, []string{"Reference:System"}, includes(p.References()))
	assert.Empty(t, p.ProjectReferences())
	assert.Nil(t, p.IncludeElement(`sub\b.cs`))
	assert.NotNil(t, p.IncludeElement("A.cs"))
}

func TestProject_Properties(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app/App.csproj": legacyProject,
		"sdk/Sdk.csproj": `<Project Sdk="Microsoft.NET.Sdk"></Project>`,
	})
	p := load(t, filepath.Join(dir, "app", "App.csproj"))

	icon := p.ApplicationIcon()
	require.NotNil(t, icon)
	assert.Equal(t, "app.ico", icon.Text())
	assert.Nil(t, load(t, filepath.Join(dir, "sdk", "Sdk.csproj")).ApplicationIcon())

	release := p.PropertyGroup("'$(Configuration)' == 'Release'")
	require.NotNil(t, release)
	p.SetProperty(release, "Optimize", "false")
	p.SetProperty(release, "DebugType", "none")
	assert.Equal(t, "false", p.Property("Optimize").Text())
	assert.Equal(t, "none", p.Property("DebugType").Text())
	assert.Equal(t, project.MSBuildNamespace, p.Property("DebugType").NamespaceURI())
	assert.Nil(t, p.PropertyGroup("missing"))
}

func TestProject_RemoveStrongName(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app/App.csproj": legacyHeader + `  <PropertyGroup>
    <SignAssembly>true</SignAssembly>
    <AssemblyOriginatorKeyFile>key.snk</AssemblyOriginatorKeyFile>
  </PropertyGroup>
  <ItemGroup>
    <None Include="key.snk" />
  </ItemGroup>
</Project>`,
	})
	p := load(t, filepath.Join(dir, "app", "App.csproj"))
	p.RemoveStrongName()
	assert.Nil(t, p.Property("SignAssembly"))
	assert.Nil(t, p.Property("AssemblyOriginatorKeyFile"))
	assert.Empty(t, p.IncludedFilePaths())
}
