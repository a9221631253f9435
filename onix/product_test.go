package onix

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestNewProduct_Cardinality(t *testing.T) {
	log := zaptest.NewLogger(t)

	_, err := NewProduct(mustElement(t, `<Product><ProductForm>BB</ProductForm></Product>`), "2.1", log)
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
	if se.Element != "ProductIdentifier" || se.Min != 1 || se.Count != 0 {
		t.Fatalf("unexpected structural error: %+v", se)
	}

	// nested identifiers do not count, rule is about direct children
	_, err = NewProduct(mustElement(t, `<Product><Other>`+isbnIdentifier+`</Other></Product>`), "3.0", log)
	if !errors.As(err, &se) {
		t.Fatalf("expected StructuralError for nested identifier, got %v", err)
	}

	if _, err := NewProduct(mustElement(t, `<Product>`+isbnIdentifier+`</Product>`), "2.1", log); err != nil {
		t.Fatalf("expected product with identifier to be accepted: %v", err)
	}
	if _, err := NewProduct(nil, "2.1", log); err == nil {
		t.Fatalf("expected error for nil element")
	}
}

func TestCheckCardinality_Max(t *testing.T) {
	root := mustElement(t, `<Product>`+isbnIdentifier+isbnIdentifier+`</Product>`)

	err := CheckCardinality(root, map[string]Occurs{"ProductIdentifier": {Min: 1, Max: 1}})
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("expected StructuralError, got %v", err)
	}
	if se.Count != 2 || se.Max != 1 {
		t.Fatalf("unexpected structural error: %+v", se)
	}
	if se.Error() != "expecting at most 1 <ProductIdentifier> children, but 2 found" {
		t.Fatalf("unexpected message: %s", se.Error())
	}
	if err := CheckCardinality(root, map[string]Occurs{"Anything": {}}); err != nil {
		t.Fatalf("rule without limits must be ignored: %v", err)
	}
}

func TestNewProductWithRules(t *testing.T) {
	log := zaptest.NewLogger(t)
	twice := `<Product>` + isbnIdentifier + isbnIdentifier + `</Product>`

	_, err := NewProductWithRules(mustElement(t, twice), "2.1", map[string]Occurs{"ProductIdentifier": {Min: 1, Max: 1}}, log)
	var se *StructuralError
	if !errors.As(err, &se) || se.Max != 1 || se.Count != 2 {
		t.Fatalf("expected StructuralError for too many identifiers, got %v", err)
	}

	// given rules replace defaults
	if _, err := NewProductWithRules(mustElement(t, `<Product/>`), "2.1", map[string]Occurs{}, log); err != nil {
		t.Fatalf("empty rules must accept anything: %v", err)
	}
	if _, err := NewProductWithRules(mustElement(t, twice), "2.1", Cardinality, log); err != nil {
		t.Fatalf("default rules have no maximum: %v", err)
	}
}

func TestGet_CachesCollection(t *testing.T) {
	root := mustElement(t, legacyProduct)
	p, err := NewProduct(root, "2.1", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}

	first := p.Get("Contributor")
	if len(first) != 2 {
		t.Fatalf("expected 2 well formed contributors, got %d", len(first))
	}

	// changes to the tree after first access must not be visible
	extra := root.CreateElement("Contributor")
	extra.CreateElement("ContributorRole").SetText("A01")

	second := p.Get("Contributor")
	if len(second) != len(first) || &second[0] != &first[0] {
		t.Fatalf("expected the very same cached slice")
	}
	if len(root.SelectElements("Contributor")) != 4 {
		t.Fatalf("tree mutation did not happen")
	}
}

func TestGet_RawFallbackIsDetached(t *testing.T) {
	p := mustProduct(t, "2.1", legacyProduct)

	items := p.Get("Imprint")
	if len(items) != 1 {
		t.Fatalf("expected one imprint, got %d", len(items))
	}
	raw, ok := items[0].(RawElement)
	if !ok {
		t.Fatalf("expected RawElement, got %T", items[0])
	}
	if raw.Parent() != nil {
		t.Fatalf("raw element must be detached from product tree")
	}
	raw.SelectElement("ImprintName").SetText("Changed")
	if name, _ := p.FirstImprintName(); name != "Example Imprint" {
		t.Fatalf("product must not see changes made to raw copies, got %q", name)
	}
}

func TestGetVariant_NestedPath(t *testing.T) {
	p := mustProduct(t, "3.0", currentProduct)

	if items := p.Get("Contributor"); len(items) != 0 {
		t.Fatalf("3.0 contributors are not direct children, got %d", len(items))
	}
	items := p.GetVariant("DescriptiveDetail/Contributor", "Contributor")
	if len(items) != 1 {
		t.Fatalf("expected one nested contributor, got %d", len(items))
	}
	if _, ok := items[0].(*Contributor); !ok {
		t.Fatalf("expected *Contributor, got %T", items[0])
	}
	// without variant the same path is cached under its own name as raw
	if raw := p.Get("DescriptiveDetail/ProductForm"); len(raw) != 1 {
		t.Fatalf("expected raw product form, got %d", len(raw))
	}
}

func TestDOMReturnsCopy(t *testing.T) {
	p := mustProduct(t, "2.1", legacyProduct)

	dom := p.DOM()
	if dom.Tag != "Product" || dom.Parent() != nil {
		t.Fatalf("unexpected DOM copy: %s", dom.Tag)
	}
	dom.SelectElement("ProductForm").SetText("XX")
	if form, _ := p.ProductForm(); form != "BB" {
		t.Fatalf("product must not see changes made to DOM copy, got %q", form)
	}
}

func TestFreeze_CachesIdentifiers(t *testing.T) {
	root := mustElement(t, legacyProduct)
	p, err := NewProduct(root, "2.1", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	p.Freeze()

	want := len(p.Identifiers())
	extra := root.CreateElement("ProductIdentifier")
	extra.CreateElement("ProductIDType").SetText("01")
	extra.CreateElement("IDValue").SetText("late")

	if got := len(p.Identifiers()); got != want {
		t.Fatalf("identifiers must come from frozen cache, got %d, want %d", got, want)
	}
	if _, err := p.Identifier("01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("identifier added after freeze must not be visible, got %v", err)
	}
}

func TestFreezeAndConcurrentReads(t *testing.T) {
	p := mustProduct(t, "2.1", legacyProduct)
	p.Freeze()

	done := make(chan string, 4)
	for range 4 {
		go func() {
			title, _ := p.Title()
			done <- title
		}()
	}
	for range 4 {
		if title := <-done; title != "The Example Book" {
			t.Fatalf("unexpected title %q", title)
		}
	}
}

func TestProductString(t *testing.T) {
	p := mustProduct(t, "2.1", legacyProduct)

	out := p.String()
	for _, want := range []string{
		`Product release="2.1"`,
		`Identifier[1] type="15" value="9780000000002"`,
		`Contributor[0] role="A01" seq="1" name="Jane Doe"`,
		`Unsupported: [ProductFormFeatures Publishers]`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump does not contain %q:\n%s", want, out)
		}
	}

	var nilProduct *Product
	if nilProduct.String() != "<nil Product>" {
		t.Fatalf("unexpected nil dump")
	}
}
