package project

import (
	"github.com/beevik/etree"
	"strings"
)

const conditionAttr = "Condition"

// Property returns the first property named name across property groups, or nil
func (p *Project) Property(name string) *etree.Element {
	for _, group := range p.children(p.Root, PropertyGroup) {
		if properties := p.children(group, name); len(properties) > 0 {
			return properties[0]
		}
	}
	return nil
}

// PropertyGroup returns the property group with the given Condition attribute, or nil
func (p *Project) PropertyGroup(condition string) *etree.Element {
	for _, group := range p.children(p.Root, PropertyGroup) {
		if group.SelectAttrValue(conditionAttr, "") == condition {
			return group
		}
	}
	return nil
}

// SetProperty sets the text of property name in group, creating the property when missing
func (p *Project) SetProperty(group *etree.Element, name, text string) {
	if group == nil {
		return
	}
	var property *etree.Element
	if properties := p.children(group, name); len(properties) > 0 {
		property = properties[0]
	} else {
		property = etree.NewElement(name)
		p.adopt(property)
		group.AddChild(property)
	}
	property.SetText(text)
}

// RemoveStrongName disables assembly signing: the SignAssembly and AssemblyOriginatorKeyFile
// properties are removed, together with the key file item whether or not its path was rebased.
func (p *Project) RemoveStrongName() {
	if keyFile := p.Property("AssemblyOriginatorKeyFile"); keyFile != nil {
		if name := strings.TrimSpace(keyFile.Text()); name != "" {
			p.RemoveInclude(name)
			p.RemoveInclude(ResolvePath(p.Dir, name))
		}
		detach(keyFile)
	}
	if sign := p.Property("SignAssembly"); sign != nil && strings.EqualFold(strings.TrimSpace(sign.Text()), "true") {
		detach(sign)
	}
}
