package gnumeric

import (
	"strings"

	"github.com/beevik/etree"
)

// Namespace prefixes used by Gnumeric documents. Gnumeric always emits
// these canonical prefixes, so lookups match on the prefix.
const (
	gnmNamespace = "http://www.gnumeric.org/v10.dtd"

	spaceGnm    = "gnm"
	spaceOffice = "office"
	spaceDC     = "dc"
)

// findChild returns the first child element with the given namespace
// prefix and tag, or nil.
func findChild(el *etree.Element, space, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, ch := range el.ChildElements() {
		if ch.Space == space && ch.Tag == tag {
			return ch
		}
	}
	return nil
}

// findChildren returns all child elements with the given namespace prefix
// and tag, in document order.
func findChildren(el *etree.Element, space, tag string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, ch := range el.ChildElements() {
		if ch.Space == space && ch.Tag == tag {
			out = append(out, ch)
		}
	}
	return out
}

// attrValue returns an unprefixed attribute's value and whether it is set.
func attrValue(el *etree.Element, key string) (string, bool) {
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Space == "" && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// nsAttrValue returns a namespace-prefixed attribute's value and whether
// it is set.
func nsAttrValue(el *etree.Element, space, key string) (string, bool) {
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Space == space && a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// serializeElement renders a copy of the element as XML, for error
// diagnostics.
func serializeElement(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return el.Tag
	}
	return strings.TrimSpace(s)
}
