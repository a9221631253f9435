package onix

import (
	"github.com/beevik/etree"
)

// constructor builds a variant from its source element.
type constructor func(el *etree.Element) (Item, error)

func variant[T Item](fn func(*etree.Element) (T, error)) constructor {
	return func(el *etree.Element) (Item, error) {
		v, err := fn(el)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// variants is the closed set of element names with dedicated types. Anything
// not listed here is materialized as RawElement.
var variants = map[string]constructor{
	"ProductIdentifier":  variant(parseProductIdentifier),
	"Title":              variant(parseTitle),
	"Language":           variant(parseLanguage),
	"Audience":           variant(parseAudience),
	"AudienceRange":      variant(parseAudienceRange),
	"Contributor":        variant(parseContributor),
	"Measure":            variant(parseMeasure),
	"MediaFile":          variant(parseMediaFile),
	"Series":             variant(parseSeries),
	"SupplyDetail":       variant(parseSupplyDetail),
	"SalesRights":        variant(parseSalesRights),
	"OtherText":          variant(parseOtherText),
	"Subject":            variant(parseSubject),
	"Prize":              variant(parsePrize),
	"Publisher":          variant(parsePublisher),
	"ProductFormFeature": variant(parseProductFormFeature),
}

// itemsOf narrows materialized items to a single variant type, dropping
// anything else. Nil in (field has no location) gives nil out.
func itemsOf[T Item](items []Item) []T {
	if items == nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if v, ok := it.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
