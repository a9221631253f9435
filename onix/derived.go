package onix

import (
	"slices"
	"strings"
)

// Facts computed from several sub-structures. Nothing here is cached, every
// call recomputes from already materialized collections and absence of data
// is reported as "no result", never as an error.

// ForSaleRights returns territory list the product is for sale in. Single
// rights entry is returned verbatim, otherwise values of all "for sale"
// entries are merged into a sorted space separated list.
func (p *Product) ForSaleRights() string {
	rights := p.SalesRights()
	if len(rights) == 1 {
		return rights[0].Value()
	}
	var tokens []string
	for _, sr := range rights {
		if sr.IsForSale() {
			tokens = append(tokens, strings.Fields(sr.Value())...)
		}
	}
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

// TextValue is text of an annotation together with its list 34 format code.
type TextValue struct {
	Text   string `yaml:"text"`
	Format string `yaml:"format,omitempty"`
}

// ReviewQuote is a review quote annotation.
type ReviewQuote struct {
	TextValue   `yaml:",inline"`
	Author      string `yaml:"author,omitempty"`
	SourceTitle string `yaml:"source_title,omitempty"`
}

func textValue(t *OtherText) TextValue {
	return TextValue{Text: deref(t.Text), Format: deref(t.Format)}
}

// MainDescription returns the main description annotation. When none is
// marked as such the first annotation is used, unless strict is set.
func (p *Product) MainDescription(strict bool) (TextValue, bool) {
	var (
		desc  TextValue
		found bool
	)
	for _, t := range p.Texts() {
		if deref(t.Type) == TextTypeMainDescription {
			desc, found = textValue(t), true
		} else if !found && !strict {
			desc, found = textValue(t), true
		}
	}
	return desc, found
}

func (p *Product) ReviewQuotes() []ReviewQuote {
	quotes := []ReviewQuote{}
	for _, t := range p.Texts() {
		if deref(t.Type) == TextTypeReviewQuote {
			quotes = append(quotes, ReviewQuote{
				TextValue:   textValue(t),
				Author:      deref(t.Author),
				SourceTitle: deref(t.SourceTitle),
			})
		}
	}
	return quotes
}

// textOfType returns the last annotation of textType.
func (p *Product) textOfType(textType string) (TextValue, bool) {
	var (
		tv    TextValue
		found bool
	)
	for _, t := range p.Texts() {
		if deref(t.Type) == textType {
			tv, found = textValue(t), true
		}
	}
	return tv, found
}

func (p *Product) PromotionalHeadline() (TextValue, bool) {
	return p.textOfType(TextTypePromotionalHeadline)
}

func (p *Product) BiographicalNotes() (TextValue, bool) {
	return p.textOfType(TextTypeBiographicalNote)
}

func (p *Product) BackCoverCopy() (TextValue, bool) {
	return p.textOfType(TextTypeBackCoverCopy)
}

func (p *Product) Excerpt() (TextValue, bool) {
	return p.textOfType(TextTypeExcerpt)
}

// MainSubjectBISAC returns the main BISAC subject code: <BASICMainSubject> in
// 2.1, first main BISAC <Subject> in 3.0.
func (p *Product) MainSubjectBISAC() (string, bool) {
	if _, ok := p.resolve(FieldMainSubjectCode); ok {
		return p.fieldText(FieldMainSubjectCode)
	}
	for _, s := range p.Subjects() {
		if deref(s.Scheme) == SchemeBISACSubjectHeading && s.Main && s.Code != nil {
			return *s.Code, true
		}
	}
	return "", false
}

// OtherSubjectBISACs returns BISAC subject codes not flagged as main.
func (p *Product) OtherSubjectBISACs() []string {
	others := []string{}
	for _, s := range p.Subjects() {
		if deref(s.Scheme) == SchemeBISACSubjectHeading && !s.Main && s.Code != nil {
			others = append(others, *s.Code)
		}
	}
	return others
}

// Keywords returns heading text of the first keywords subject.
func (p *Product) Keywords() string {
	for _, s := range p.Subjects() {
		if deref(s.Scheme) == SchemeKeywords {
			return deref(s.HeadingText)
		}
	}
	return ""
}

// CopyrightStatement returns "<year> <owner>", corporate owner preferred over
// person. Owner part is omitted when there is none.
func (p *Product) CopyrightStatement() (string, bool) {
	owner, ok := p.fieldText(FieldCopyrightCorporateOwner)
	if !ok || owner == "" {
		owner, _ = p.fieldText(FieldCopyrightPersonOwner)
	}
	year, _ := p.CopyrightYear()
	statement := strings.TrimSpace(year + " " + owner)
	return statement, statement != ""
}

// Dimension is a single measurement with its unit.
type Dimension struct {
	Value string `yaml:"value"`
	Unit  string `yaml:"unit"`
}

// Measures has one slot per known measure type, nil when absent.
type Measures struct {
	Height    *Dimension `yaml:"height,omitempty"`
	Width     *Dimension `yaml:"width,omitempty"`
	Thickness *Dimension `yaml:"thickness,omitempty"`
	Weight    *Dimension `yaml:"weight,omitempty"`
}

// Measures aggregates physical measurements. Returns nil when the product has
// none or for 3.0.
func (p *Product) Measures() *Measures {
	items := itemsOf[*Measure](p.field(FieldMeasures))
	if len(items) == 0 {
		return nil
	}
	m := &Measures{}
	for _, it := range items {
		d := &Dimension{Value: deref(it.Value), Unit: deref(it.Unit)}
		switch deref(it.Type) {
		case MeasureHeight:
			m.Height = d
		case MeasureWidth:
			m.Width = d
		case MeasureThickness:
			m.Thickness = d
		case MeasureWeight:
			m.Weight = d
		}
	}
	return m
}

// CoverImage is the front cover link found in the first media file.
type CoverImage struct {
	URL  *string `yaml:"url,omitempty"`
	Date *string `yaml:"date,omitempty"`
}

// CoverImage returns nil when there are no media files or for 3.0.
func (p *Product) CoverImage() *CoverImage {
	files := itemsOf[*MediaFile](p.field(FieldMediaFiles))
	if len(files) == 0 {
		return nil
	}
	ci := &CoverImage{}
	if url, ok := files[0].URL(); ok {
		ci.URL = &url
	}
	if date, ok := files[0].CoverDate(); ok {
		ci.Date = &date
	}
	return ci
}

// SeriesInfo is the first series the product belongs to.
type SeriesInfo struct {
	TitleOfSeries      string `yaml:"title"`
	NumberWithinSeries string `yaml:"number,omitempty"`
}

// Series returns nil when product is marked as not part of a series, has no
// series or for 3.0.
func (p *Product) Series() *SeriesInfo {
	if noSeries, known := p.IsNotPartOfSeries(); !known || noSeries {
		return nil
	}
	series := itemsOf[*Series](p.field(FieldSeries))
	if len(series) == 0 {
		return nil
	}
	return &SeriesInfo{
		TitleOfSeries:      deref(series[0].TitleOfSeries),
		NumberWithinSeries: deref(series[0].NumberWithinSeries),
	}
}
