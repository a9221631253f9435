package onix

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// Type definitions for sub-structures materialized from <Product> children.
// Every variant is a plain value built once from its source element, nothing
// keeps a reference to the tree afterwards. Optional fields are pointers, nil
// means the element was absent in the source.

// Item is a single materialized child of a product: one of the variant types
// below or RawElement when no variant is registered for the element name.
type Item interface {
	item()
}

// RawElement is a detached deep copy of a child element with no dedicated
// variant.
type RawElement struct {
	*etree.Element
}

// Text returns the element's text content.
func (r RawElement) Text() string {
	return textContent(r.Element)
}

// ProductIdentifier corresponds to <ProductIdentifier>.
type ProductIdentifier struct {
	Type     string
	Value    string
	TypeName *string
}

// Title corresponds to <Title> (2.1) and <TitleDetail> (3.0). For 3.0 the
// text fields come from the first <TitleElement>.
type Title struct {
	Type          *string
	Text          *string
	Prefix        *string
	WithoutPrefix *string
	Subtitle      *string
}

// Display returns the title as it should be shown: full text when available,
// else prefix joined with the remainder.
func (t *Title) Display() (string, bool) {
	if present(t.Text) {
		return *t.Text, true
	}
	if present(t.WithoutPrefix) {
		if present(t.Prefix) {
			return *t.Prefix + " " + *t.WithoutPrefix, true
		}
		return *t.WithoutPrefix, true
	}
	return "", false
}

// Language corresponds to <Language>.
type Language struct {
	Role string
	Code string
}

// Audience corresponds to <Audience>.
type Audience struct {
	Type  *string
	Value *string
}

// Precision is a mapped audience range precision code.
type Precision string

const (
	PrecisionExact Precision = "exact"
	PrecisionFrom  Precision = "from"
	PrecisionTo    Precision = "to"
)

var precisions = map[string]Precision{
	PrecisionCodeExact: PrecisionExact,
	PrecisionCodeFrom:  PrecisionFrom,
	PrecisionCodeTo:    PrecisionTo,
}

// AudienceRange corresponds to <AudienceRange>.
type AudienceRange struct {
	Qualifier      *string
	PrecisionCodes []string
	Values         []string
}

// Precisions maps precision codes in document order, unknown codes are dropped.
func (ar *AudienceRange) Precisions() []Precision {
	out := make([]Precision, 0, len(ar.PrecisionCodes))
	for _, code := range ar.PrecisionCodes {
		if p, ok := precisions[code]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Contributor corresponds to <Contributor>.
type Contributor struct {
	Role               string
	SequenceNumber     *string
	PersonName         *string
	PersonNameInverted *string
	NamesBeforeKey     *string
	KeyNames           *string
	CorporateName      *string
	Bio                *string
}

var invertedName = regexp.MustCompile(`^(.+), (.+)$`)

// Name returns the person name, preferring the direct form and turning
// "Last, First" into "First Last" otherwise.
func (c *Contributor) Name() (string, bool) {
	if c.PersonName != nil {
		return *c.PersonName, true
	}
	if c.PersonNameInverted != nil {
		return invertedName.ReplaceAllString(*c.PersonNameInverted, "$2 $1"), true
	}
	return "", false
}

// Measure corresponds to <Measure>.
type Measure struct {
	Type  *string
	Value *string
	Unit  *string
}

// MediaFile corresponds to <MediaFile>.
type MediaFile struct {
	Type     *string
	Format   *string
	LinkType *string
	Link     *string
	Date     *string
}

func (m *MediaFile) isFrontCoverURL() bool {
	return deref(m.Type) == MediaTypeFrontCover &&
		deref(m.Format) == MediaFormatJPEG &&
		deref(m.LinkType) == MediaLinkURL
}

// URL returns the link of a front cover JPEG referenced by URL. Any other
// combination yields nothing.
func (m *MediaFile) URL() (string, bool) {
	if !m.isFrontCoverURL() || m.Link == nil {
		return "", false
	}
	return *m.Link, true
}

// CoverDate returns the media file date as YYYY-MM-DD under the same
// conditions as URL.
func (m *MediaFile) CoverDate() (string, bool) {
	if !m.isFrontCoverURL() || m.Date == nil {
		return "", false
	}
	return normalizeDate(*m.Date)
}

// Series corresponds to <Series>.
type Series struct {
	TitleOfSeries      *string
	NumberWithinSeries *string
}

// Price is one <Price> of a supply detail, missing parts are nil.
type Price struct {
	Type          *string
	Amount        *string
	Currency      *string
	EffectiveFrom *string
}

// SupplyDetail corresponds to <SupplyDetail>.
type SupplyDetail struct {
	SupplierName          *string
	AvailabilityCode      *string
	ProductAvailability   *string
	OnSaleDate            *string
	WarehouseLocationName *string
	Prices                []Price
}

// Availability resolves status text from list 65 when present, else from
// list 54. Unmapped codes give "Unknown".
func (sd *SupplyDetail) Availability() (string, bool) {
	if present(sd.ProductAvailability) {
		if s, ok := productAvailabilities[*sd.ProductAvailability]; ok {
			return s, true
		}
		return unknownCode, true
	}
	if present(sd.AvailabilityCode) {
		if s, ok := availabilityCodes[*sd.AvailabilityCode]; ok {
			return s, true
		}
		return unknownCode, true
	}
	return "", false
}

// SalesRights corresponds to <SalesRights>. Countries and regions are kept in
// document order.
type SalesRights struct {
	Type        *string
	Countries   []string
	Territories []string
}

// IsForSale reports whether rights type allows selling in listed territories.
func (sr *SalesRights) IsForSale() bool {
	switch deref(sr.Type) {
	case SalesRightsForSaleExclusive, SalesRightsForSaleNonExclusive:
		return true
	}
	return false
}

// Value returns all countries and territories separated by spaces.
func (sr *SalesRights) Value() string {
	parts := make([]string, 0, len(sr.Countries)+len(sr.Territories))
	parts = append(parts, sr.Countries...)
	parts = append(parts, sr.Territories...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// OtherText corresponds to <OtherText> (2.1) and <TextContent> (3.0).
type OtherText struct {
	Type        *string
	Format      *string
	Text        *string
	Author      *string
	SourceTitle *string
}

// Subject corresponds to <Subject>.
type Subject struct {
	Scheme      *string
	Code        *string
	HeadingText *string
	Main        bool
}

// Prize corresponds to <Prize>.
type Prize struct {
	Name    *string
	Year    *string
	Country *string
	Code    *string
	Jury    *string
}

// PrizeSummary is the short form of a prize.
type PrizeSummary struct {
	Name string `yaml:"name"`
	Year string `yaml:"year,omitempty"`
}

// PrizeDetails has every prize field flattened.
type PrizeDetails struct {
	Name    string `yaml:"name"`
	Year    string `yaml:"year,omitempty"`
	Country string `yaml:"country,omitempty"`
	Code    string `yaml:"code,omitempty"`
	Jury    string `yaml:"jury,omitempty"`
}

func (p *Prize) MinimalData() PrizeSummary {
	return PrizeSummary{Name: deref(p.Name), Year: deref(p.Year)}
}

func (p *Prize) Data() PrizeDetails {
	return PrizeDetails{
		Name:    deref(p.Name),
		Year:    deref(p.Year),
		Country: deref(p.Country),
		Code:    deref(p.Code),
		Jury:    deref(p.Jury),
	}
}

// Publisher corresponds to <Publisher>.
type Publisher struct {
	Role    *string
	Name    *string
	Website *string
}

// ProductFormFeature corresponds to <ProductFormFeature>.
type ProductFormFeature struct {
	Type        string
	Value       *string
	Description *string
}

func (RawElement) item()          {}
func (*ProductIdentifier) item()  {}
func (*Title) item()              {}
func (*Language) item()           {}
func (*Audience) item()           {}
func (*AudienceRange) item()      {}
func (*Contributor) item()        {}
func (*Measure) item()            {}
func (*MediaFile) item()          {}
func (*Series) item()             {}
func (*SupplyDetail) item()       {}
func (*SalesRights) item()        {}
func (*OtherText) item()          {}
func (*Subject) item()            {}
func (*Prize) item()              {}
func (*Publisher) item()          {}
func (*ProductFormFeature) item() {}
