package onix

import (
	"fmt"
	"sync"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Product is a read-only facade over a single <Product> element. Child
// sub-structures are materialized lazily, once per element name, and kept for
// the life of the product.
type Product struct {
	root    *etree.Element
	release Release
	log     *zap.Logger

	mu    sync.Mutex
	cache map[string][]Item
}

// NewProduct takes ownership of root, which must be a <Product> element with
// reference tag names, and checks default cardinality rules. Caller must
// not modify root afterwards.
func NewProduct(root *etree.Element, release string, log *zap.Logger) (*Product, error) {
	return NewProductWithRules(root, release, Cardinality, log)
}

// NewProductWithRules is NewProduct checking rules instead of Cardinality.
func NewProductWithRules(root *etree.Element, release string, rules map[string]Occurs, log *zap.Logger) (*Product, error) {
	if root == nil {
		return nil, fmt.Errorf("nil product element")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := CheckCardinality(root, rules); err != nil {
		return nil, err
	}
	return &Product{
		root:    root,
		release: Release(release),
		log:     log,
		cache:   make(map[string][]Item),
	}, nil
}

// Release returns the ONIX release the product was declared with.
func (p *Product) Release() Release {
	return p.release
}

// DOM returns a detached deep copy of the product element for data without
// dedicated accessors.
func (p *Product) DOM() *etree.Element {
	return p.root.Copy()
}

// Get returns all children matching path name, materialized with the variant
// registered under the same name.
func (p *Product) Get(name string) []Item {
	return p.GetVariant(name, name)
}

// GetVariant returns all children matching path name materialized as variant.
// This covers 3.0 layouts where a repeatable element moved under another
// parent but keeps its payload. Result is cached by name: later calls return
// the same slice without looking at the tree again.
func (p *Product) GetVariant(name, variant string) []Item {
	p.mu.Lock()
	defer p.mu.Unlock()

	if items, ok := p.cache[name]; ok {
		return items
	}

	build, known := variants[variant]
	elements := p.root.FindElements(name)
	items := make([]Item, 0, len(elements))
	for _, el := range elements {
		if !known {
			items = append(items, RawElement{el.Copy()})
			continue
		}
		it, err := build(el)
		if err != nil {
			p.log.Debug("Skipping malformed element", zap.String("path", name), zap.Error(variantError(variant, err)))
			continue
		}
		items = append(items, it)
	}
	p.cache[name] = items
	return items
}

// Freeze materializes every collection the facade may need for the product's
// release, so no lazy work is left for later readers.
func (p *Product) Freeze() {
	p.Get("ProductIdentifier")
	for _, f := range allFields {
		if loc, ok := p.resolve(f); ok {
			p.GetVariant(loc.path, loc.variant)
		}
	}
}
