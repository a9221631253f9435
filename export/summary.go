// Package export flattens product facades into summaries suitable for
// serialization and builds output file names for them.
package export

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"onixp/onix"
)

// Options controls what goes into a summary.
type Options struct {
	// StrictMainDescription disables falling back to the first annotation
	// when none is marked as main description.
	StrictMainDescription bool
	// ListUnsupported adds names of fields with no known location for
	// product release.
	ListUnsupported bool
}

type Contributor struct {
	Role     string `yaml:"role"`
	Sequence string `yaml:"sequence,omitempty"`
	Name     string `yaml:"name,omitempty"`
	Company  string `yaml:"company,omitempty"`
	Bio      string `yaml:"bio,omitempty"`
}

type Price struct {
	Type          string `yaml:"type,omitempty"`
	Amount        string `yaml:"amount"`
	Currency      string `yaml:"currency,omitempty"`
	EffectiveFrom string `yaml:"effective_from,omitempty"`
}

type Supply struct {
	Supplier     string  `yaml:"supplier,omitempty"`
	Availability string  `yaml:"availability,omitempty"`
	OnSaleDate   string  `yaml:"on_sale,omitempty"`
	Prices       []Price `yaml:"prices,omitempty"`
}

// Summary is a flat, serializable view of everything the facade extracts.
// Field names are available to output file name templates.
type Summary struct {
	ID             string                   `yaml:"id"`
	Release        string                   `yaml:"release"`
	ISBN13         string                   `yaml:"isbn13,omitempty"`
	Title          string                   `yaml:"title,omitempty"`
	Contributors   []Contributor            `yaml:"contributors,omitempty"`
	Publisher      string                   `yaml:"publisher,omitempty"`
	Imprint        string                   `yaml:"imprint,omitempty"`
	PublishDate    string                   `yaml:"publish_date,omitempty"`
	Status         string                   `yaml:"status"`
	Active         bool                     `yaml:"active"`
	Form           string                   `yaml:"form,omitempty"`
	FormDetail     string                   `yaml:"form_detail,omitempty"`
	Edition        string                   `yaml:"edition,omitempty"`
	Language       string                   `yaml:"language,omitempty"`
	Pages          string                   `yaml:"pages,omitempty"`
	Supply         []Supply                 `yaml:"supply,omitempty"`
	ForSale        string                   `yaml:"for_sale,omitempty"`
	Description    *onix.TextValue          `yaml:"description,omitempty"`
	Headline       *onix.TextValue          `yaml:"headline,omitempty"`
	ReviewQuotes   []onix.ReviewQuote       `yaml:"review_quotes,omitempty"`
	MainBISAC      string                   `yaml:"main_bisac,omitempty"`
	OtherBISAC     []string                 `yaml:"other_bisac,omitempty"`
	Keywords       string                   `yaml:"keywords,omitempty"`
	Copyright      string                   `yaml:"copyright,omitempty"`
	Series         *onix.SeriesInfo         `yaml:"series,omitempty"`
	Measures       *onix.Measures           `yaml:"measures,omitempty"`
	Cover          *onix.CoverImage         `yaml:"cover,omitempty"`
	Audience       []string                 `yaml:"audience,omitempty"`
	AudienceRanges []onix.AudienceRangeInfo `yaml:"audience_ranges,omitempty"`
	Prizes         []onix.PrizeDetails      `yaml:"prizes,omitempty"`
	Unsupported    []string                 `yaml:"unsupported,omitempty"`
}

// Summarize collects summary of p. Products without record reference get
// time ordered random id so summaries stay distinguishable.
func Summarize(p *onix.Product, opts Options) (*Summary, error) {
	if p == nil {
		return nil, errors.New("nil product")
	}

	s := &Summary{
		Release: p.Release().String(),
		Status:  p.PublishingStatusString(),
		Active:  p.IsActive(),
		ForSale: p.ForSaleRights(),
	}

	if ref, ok := p.RecordReference(); ok && ref != "" {
		s.ID = ref
	} else {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("unable to generate product id: %w", err)
		}
		s.ID = id.String()
	}

	isbn, err := p.Identifier(onix.IDTypeISBN13)
	switch {
	case err == nil:
		s.ISBN13 = isbn
	case !errors.Is(err, onix.ErrNotFound):
		return nil, err
	}

	s.Title, _ = p.Title()
	s.Publisher, _ = p.FirstPublisherName()
	s.Imprint, _ = p.FirstImprintName()
	s.PublishDate, _ = p.PublishDate()
	s.Form, _ = p.ProductForm()
	s.FormDetail, _ = p.ProductFormDetail()
	s.Edition, _ = p.Edition()
	s.Pages, _ = p.NumberOfPages()
	if tag := p.LanguageOfTextTag(); tag != language.Und {
		s.Language = tag.String()
	}

	for _, c := range p.Contributors() {
		name, _ := c.Name()
		s.Contributors = append(s.Contributors, Contributor{
			Role:     c.Role,
			Sequence: deref(c.SequenceNumber),
			Name:     name,
			Company:  deref(c.CorporateName),
			Bio:      deref(c.Bio),
		})
	}

	for _, sd := range p.SupplyDetails() {
		availability, _ := sd.Availability()
		supply := Supply{
			Supplier:     deref(sd.SupplierName),
			Availability: availability,
			OnSaleDate:   deref(sd.OnSaleDate),
		}
		for _, pr := range sd.Prices {
			supply.Prices = append(supply.Prices, Price{
				Type:          deref(pr.Type),
				Amount:        deref(pr.Amount),
				Currency:      deref(pr.Currency),
				EffectiveFrom: deref(pr.EffectiveFrom),
			})
		}
		s.Supply = append(s.Supply, supply)
	}

	if desc, ok := p.MainDescription(opts.StrictMainDescription); ok {
		s.Description = &desc
	}
	if headline, ok := p.PromotionalHeadline(); ok {
		s.Headline = &headline
	}
	s.ReviewQuotes = p.ReviewQuotes()
	s.MainBISAC, _ = p.MainSubjectBISAC()
	s.OtherBISAC = p.OtherSubjectBISACs()
	s.Keywords = p.Keywords()
	s.Copyright, _ = p.CopyrightStatement()
	s.Series = p.Series()
	s.Measures = p.Measures()
	s.Cover = p.CoverImage()
	s.Audience = p.AudienceCodes()
	s.AudienceRanges = p.AudienceRanges()
	s.Prizes = p.PrizesData()

	if opts.ListUnsupported {
		for _, f := range onix.Unsupported(p.Release()) {
			s.Unsupported = append(s.Unsupported, f.String())
		}
	}
	return s, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
