package onix

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// Text extraction primitives shared by every sub-structure. Names passed here
// are relative etree paths, so both "PersonName" and "SupplyDate/Date" work.

// Some feeds carry CDATA sections that were escaped twice, leaving the markers
// in the character data.
const literalOpen = "<![CDATA["

var literalClose = regexp.MustCompile(`\]\]>*$`)

// cleanLiteral strips leftover CDATA markers from text.
func cleanLiteral(s string) string {
	s = strings.ReplaceAll(s, literalOpen, "")
	return literalClose.ReplaceAllString(s, "")
}

// textContent returns concatenated character data of the element and all its
// descendants in document order.
func textContent(el *etree.Element) string {
	var buf strings.Builder
	collectText(el, &buf)
	return strings.TrimSpace(buf.String())
}

func collectText(el *etree.Element, buf *strings.Builder) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			buf.WriteString(t.Data)
		case *etree.Element:
			collectText(t, buf)
		}
	}
}

// childText returns text of the first child matching name and whether such
// child exists at all.
func childText(el *etree.Element, name string) (string, bool) {
	if el == nil {
		return "", false
	}
	child := el.FindElement(name)
	if child == nil {
		return "", false
	}
	return textContent(child), true
}

// optText is childText for optional sub-structure fields.
func optText(el *etree.Element, name string) *string {
	if s, ok := childText(el, name); ok {
		return &s
	}
	return nil
}

// optClean is optText followed by literal wrapper cleanup, for fields that may
// carry rich or preformatted text.
func optClean(el *etree.Element, name string) *string {
	if s, ok := childText(el, name); ok {
		s = cleanLiteral(s)
		return &s
	}
	return nil
}

// SingleChildText returns text of the first child element called name.
func SingleChildText(el *etree.Element, name string) (string, error) {
	if s, ok := childText(el, name); ok {
		return s, nil
	}
	tag := "<nil>"
	if el != nil {
		tag = el.Tag
	}
	return "", &NotFoundError{What: "<" + name + "> in <" + tag + ">"}
}

// AllChildTexts returns text of every child element called name in document
// order. Result is never nil.
func AllChildTexts(el *etree.Element, name string) []string {
	out := []string{}
	if el == nil {
		return out
	}
	for _, child := range el.FindElements(name) {
		out = append(out, textContent(child))
	}
	return out
}

// deref returns value of an optional field or empty string.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// present reports whether optional field exists and is not empty.
func present(s *string) bool {
	return s != nil && len(*s) > 0
}
