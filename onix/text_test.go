package onix

import (
	"errors"
	"testing"
)

func TestSingleChildText(t *testing.T) {
	el := mustElement(t, `<Contributor>
		<ContributorRole>A01</ContributorRole>
		<PersonName>First</PersonName>
		<PersonName>Second</PersonName>
		<Stock><LocationName>Nested</LocationName></Stock>
	</Contributor>`)

	if got, err := SingleChildText(el, "PersonName"); err != nil || got != "First" {
		t.Fatalf("expected first person name, got %q (%v)", got, err)
	}
	if got, err := SingleChildText(el, "Stock/LocationName"); err != nil || got != "Nested" {
		t.Fatalf("expected nested path to resolve, got %q (%v)", got, err)
	}

	_, err := SingleChildText(el, "KeyNames")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
}

func TestAllChildTexts(t *testing.T) {
	el := mustElement(t, `<AudienceRange>
		<AudienceRangeValue>8</AudienceRangeValue>
		<AudienceRangePrecision>03</AudienceRangePrecision>
		<AudienceRangeValue>12</AudienceRangeValue>
	</AudienceRange>`)

	values := AllChildTexts(el, "AudienceRangeValue")
	if len(values) != 2 || values[0] != "8" || values[1] != "12" {
		t.Fatalf("unexpected values in document order: %v", values)
	}

	missing := AllChildTexts(el, "AudienceRangeQualifier")
	if missing == nil || len(missing) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", missing)
	}
	if got := AllChildTexts(nil, "x"); got == nil {
		t.Fatalf("expected empty non-nil slice for nil element")
	}
}

func TestCleanLiteral(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"<![CDATA[wrapped]]>", "wrapped"},
		{"<![CDATA[no close", "no close"},
		{"trailing]]", "trailing"},
		{"trailing]]>>", "trailing"},
		{"inner ]]> kept", "inner ]]> kept"},
	}
	for _, tt := range tests {
		if got := cleanLiteral(tt.in); got != tt.want {
			t.Errorf("cleanLiteral(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTextContentIncludesDescendants(t *testing.T) {
	el := mustElement(t, `<Text> <p>First <b>bold</b></p><p>second</p> </Text>`)
	if got := textContent(el); got != "First boldsecond" {
		t.Fatalf("unexpected text content %q", got)
	}
}

func TestOptionalFieldsStayNil(t *testing.T) {
	el := mustElement(t, `<Measure><Measurement>10</Measurement></Measure>`)
	m, err := parseMeasure(el)
	if err != nil {
		t.Fatalf("parseMeasure: %v", err)
	}
	if m.Type != nil || m.Unit != nil {
		t.Fatalf("absent fields must be nil: %+v", m)
	}
	if deref(m.Value) != "10" {
		t.Fatalf("unexpected value %q", deref(m.Value))
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"20120315", "2012-03-15", true},
		{"2012-03-15", "2012-03-15", true},
		{"20120315T1030", "2012-03-15", true},
		{"2012-03-15T10:30:00Z", "2012-03-15", true},
		{"yesterday", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := normalizeDate(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("normalizeDate(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
