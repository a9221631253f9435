// Package feed reads complete ONIX messages and turns their <Product>
// records into onix.Product values.
package feed

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"onixp/onix"
)

// ErrNotONIX is returned when document root is not an ONIX message.
var ErrNotONIX = errors.New("not an ONIX message")

// Options controls how messages are interpreted.
type Options struct {
	// DefaultRelease is used when message declares nothing.
	DefaultRelease string
	// ForceRelease overrides anything message declares.
	ForceRelease string
	// RenameShortTags converts short tag messages to reference names, without
	// it such messages are rejected.
	RenameShortTags bool
	// MaxIdentifiers limits <ProductIdentifier> children, 0 - no limit.
	MaxIdentifiers int
}

// Header has the few message level values worth reporting.
type Header struct {
	SenderName string
	SentDate   string
}

// Message is a parsed ONIX message. Products are owned by message, each has
// its subtree detached from the source document.
type Message struct {
	Release onix.Release
	Short   bool
	Header  Header

	products []*onix.Product
	err      error
}

// Products returns successfully constructed products in document order.
func (m *Message) Products() []*onix.Product {
	return m.products
}

// Err returns combined errors of products that were skipped, nil if none.
// Use multierr.Errors to get individual failures.
func (m *Message) Err() error {
	return m.err
}

// Read parses the whole message from r. Only problems with the message itself
// are returned as error, malformed products are skipped and reported through
// Message.Err.
func Read(r io.Reader, opts Options, log *zap.Logger) (*Message, error) {
	if log == nil {
		log = zap.NewNop()
	}

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charsetReader,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to read ONIX message: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element: %w", ErrNotONIX)
	}

	m := &Message{}
	switch root.Tag {
	case "ONIXMessage":
	case "ONIXmessage":
		m.Short = true
	default:
		return nil, fmt.Errorf("unexpected root element <%s>: %w", root.Tag, ErrNotONIX)
	}
	m.Release = onix.Release(detectRelease(doc, root, opts))

	if m.Short {
		if !opts.RenameShortTags {
			return nil, errors.New("short tag message requires renaming which is disabled")
		}
		if unknown := renameShortTags(root); unknown > 0 {
			log.Debug("Short tags without reference names left as is", zap.Int("count", unknown))
		}
	}

	m.Header = readHeader(root.SelectElement("Header"))

	rules := maps.Clone(onix.Cardinality)
	if opts.MaxIdentifiers > 0 {
		rule := rules["ProductIdentifier"]
		rule.Max = opts.MaxIdentifiers
		rules["ProductIdentifier"] = rule
	}

	for i, el := range root.SelectElements("Product") {
		root.RemoveChild(el)

		p, err := onix.NewProductWithRules(el, m.Release.String(), rules, log)
		if err != nil {
			ref, _ := onixText(el, "RecordReference")
			log.Warn("Skipping product", zap.Int("index", i+1), zap.String("ref", ref), zap.Error(err))
			m.err = multierr.Append(m.err, fmt.Errorf("product #%d (%s): %w", i+1, ref, err))
			continue
		}
		m.products = append(m.products, p)
	}

	log.Debug("ONIX message read",
		zap.Stringer("release", m.Release),
		zap.Bool("short", m.Short),
		zap.Int("products", len(m.products)),
		zap.Int("skipped", len(multierr.Errors(m.err))))
	return m, nil
}

// charsetReader leaves wide encodings alone: parser cannot read them
// natively, so such input is transcoded by the caller before declaration is
// seen.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch l := strings.ToLower(strings.TrimSpace(label)); {
	case strings.HasPrefix(l, "utf-16"), strings.HasPrefix(l, "utf-32"),
		l == "ucs-2", l == "ucs-4", l == "unicode":
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

var releaseRef = regexp.MustCompile(`onix/(\d+\.\d+)/`)

// detectRelease picks release in order of precedence: forced, "release"
// attribute, namespace, DTD reference, configured default.
func detectRelease(doc *etree.Document, root *etree.Element, opts Options) string {
	if len(opts.ForceRelease) > 0 {
		return opts.ForceRelease
	}
	if rel := strings.TrimSpace(root.SelectAttrValue("release", "")); len(rel) > 0 {
		return rel
	}
	if m := releaseRef.FindStringSubmatch(root.SelectAttrValue("xmlns", "")); m != nil {
		return m[1]
	}
	for _, tok := range doc.Child {
		if d, ok := tok.(*etree.Directive); ok {
			if m := releaseRef.FindStringSubmatch(d.Data); m != nil {
				return m[1]
			}
		}
	}
	return opts.DefaultRelease
}

func readHeader(el *etree.Element) Header {
	var h Header
	if el == nil {
		return h
	}
	h.SenderName, _ = onixText(el, "Sender/SenderName", "FromCompany")
	h.SentDate, _ = onixText(el, "SentDateTime", "SentDate")
	return h
}

// onixText returns trimmed text of the first path which exists.
func onixText(el *etree.Element, paths ...string) (string, bool) {
	for _, path := range paths {
		if child := el.FindElement(path); child != nil {
			return strings.TrimSpace(child.Text()), true
		}
	}
	return "", false
}
