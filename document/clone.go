package document

import (
	"github.com/beevik/etree"
)

// Rehome returns an independent copy of src suitable for attaching to another document.
// Namespace prefixes and xmlns declarations are dropped so the copy inherits the
// destination's default namespace; attribute values and text are copied verbatim.
// When tag is not empty it replaces the local name of the top element.
func Rehome(src *etree.Element, tag string) *etree.Element {
	if src == nil {
		return nil
	}
	if tag == "" {
		tag = src.Tag
	}
	clone := etree.NewElement(tag)
	for _, attr := range src.Attr {
		if isNamespaceDecl(attr) {
			continue
		}
		clone.CreateAttr(attr.Key, attr.Value)
	}
	for _, token := range src.Child {
		switch actual := token.(type) {
		case *etree.Element:
			clone.AddChild(Rehome(actual, ""))
		case *etree.CharData:
			clone.AddChild(etree.NewText(actual.Data))
		}
	}
	return clone
}

func isNamespaceDecl(attr etree.Attr) bool {
	return attr.Space == "xmlns" || (attr.Space == "" && attr.Key == "xmlns")
}
