package onix

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// Constructors for every registered variant. Each one copies what it needs
// out of the element, optional children simply stay nil. Absence of a
// mandatory child fails construction of that single item.

func parseProductIdentifier(el *etree.Element) (*ProductIdentifier, error) {
	idType, err := SingleChildText(el, "ProductIDType")
	if err != nil {
		return nil, err
	}
	value, err := SingleChildText(el, "IDValue")
	if err != nil {
		return nil, err
	}
	return &ProductIdentifier{
		Type:     idType,
		Value:    value,
		TypeName: optText(el, "IDTypeName"),
	}, nil
}

func parseTitle(el *etree.Element) (*Title, error) {
	src := el
	// 3.0 <TitleDetail> nests actual text inside <TitleElement>
	if te := el.SelectElement("TitleElement"); te != nil {
		src = te
	}
	return &Title{
		Type:          optText(el, "TitleType"),
		Text:          optClean(src, "TitleText"),
		Prefix:        optClean(src, "TitlePrefix"),
		WithoutPrefix: optClean(src, "TitleWithoutPrefix"),
		Subtitle:      optClean(src, "Subtitle"),
	}, nil
}

func parseLanguage(el *etree.Element) (*Language, error) {
	role, err := SingleChildText(el, "LanguageRole")
	if err != nil {
		return nil, err
	}
	code, err := SingleChildText(el, "LanguageCode")
	if err != nil {
		return nil, err
	}
	return &Language{Role: role, Code: code}, nil
}

func parseAudience(el *etree.Element) (*Audience, error) {
	return &Audience{
		Type:  optText(el, "AudienceCodeType"),
		Value: optText(el, "AudienceCodeValue"),
	}, nil
}

func parseAudienceRange(el *etree.Element) (*AudienceRange, error) {
	return &AudienceRange{
		Qualifier:      optText(el, "AudienceRangeQualifier"),
		PrecisionCodes: AllChildTexts(el, "AudienceRangePrecision"),
		Values:         AllChildTexts(el, "AudienceRangeValue"),
	}, nil
}

func parseContributor(el *etree.Element) (*Contributor, error) {
	role, err := SingleChildText(el, "ContributorRole")
	if err != nil {
		return nil, err
	}
	return &Contributor{
		Role:               role,
		SequenceNumber:     optText(el, "SequenceNumber"),
		PersonName:         optText(el, "PersonName"),
		PersonNameInverted: optText(el, "PersonNameInverted"),
		NamesBeforeKey:     optText(el, "NamesBeforeKey"),
		KeyNames:           optText(el, "KeyNames"),
		CorporateName:      optText(el, "CorporateName"),
		Bio:                optClean(el, "BiographicalNote"),
	}, nil
}

func parseMeasure(el *etree.Element) (*Measure, error) {
	typ := optText(el, "MeasureTypeCode")
	if typ == nil {
		typ = optText(el, "MeasureType")
	}
	return &Measure{
		Type:  typ,
		Value: optText(el, "Measurement"),
		Unit:  optText(el, "MeasureUnitCode"),
	}, nil
}

func parseMediaFile(el *etree.Element) (*MediaFile, error) {
	return &MediaFile{
		Type:     optText(el, "MediaFileTypeCode"),
		Format:   optText(el, "MediaFileFormatCode"),
		LinkType: optText(el, "MediaFileLinkTypeCode"),
		Link:     optText(el, "MediaFileLink"),
		Date:     optText(el, "MediaFileDate"),
	}, nil
}

func parseSeries(el *etree.Element) (*Series, error) {
	return &Series{
		TitleOfSeries:      optClean(el, "TitleOfSeries"),
		NumberWithinSeries: optText(el, "NumberWithinSeries"),
	}, nil
}

func parseSupplyDetail(el *etree.Element) (*SupplyDetail, error) {
	sd := &SupplyDetail{
		SupplierName:          optText(el, "SupplierName"),
		AvailabilityCode:      optText(el, "AvailabilityCode"),
		ProductAvailability:   optText(el, "ProductAvailability"),
		OnSaleDate:            optText(el, "OnSaleDate"),
		WarehouseLocationName: optText(el, "Stock/LocationName"),
	}
	if sd.SupplierName == nil {
		sd.SupplierName = optText(el, "Supplier/SupplierName")
	}
	if !present(sd.OnSaleDate) {
		sd.OnSaleDate = optText(el, "SupplyDate/Date")
	}
	for _, price := range el.SelectElements("Price") {
		pr := Price{
			Type:          optText(price, ".//PriceTypeCode"),
			Amount:        optText(price, ".//PriceAmount"),
			Currency:      optText(price, ".//CurrencyCode"),
			EffectiveFrom: optText(price, ".//PriceEffectiveFrom"),
		}
		if pr.Type == nil {
			pr.Type = optText(price, ".//PriceType")
		}
		sd.Prices = append(sd.Prices, pr)
	}
	return sd, nil
}

func parseSalesRights(el *etree.Element) (*SalesRights, error) {
	sr := &SalesRights{
		Type:        optText(el, "SalesRightsType"),
		Countries:   AllChildTexts(el, "RightsCountry"),
		Territories: AllChildTexts(el, "RightsTerritory"),
	}
	sr.Countries = append(sr.Countries, AllChildTexts(el, "Territory/CountriesIncluded")...)
	sr.Territories = append(sr.Territories, AllChildTexts(el, "Territory/RegionsIncluded")...)
	return sr, nil
}

func parseOtherText(el *etree.Element) (*OtherText, error) {
	ot := &OtherText{
		Type:        optText(el, "TextTypeCode"),
		Format:      optText(el, "TextFormat"),
		Text:        optClean(el, "Text"),
		Author:      optText(el, "TextAuthor"),
		SourceTitle: optText(el, "TextSourceTitle"),
	}
	if ot.Type == nil {
		ot.Type = optText(el, "TextType")
	}
	if ot.SourceTitle == nil {
		ot.SourceTitle = optText(el, "SourceTitle")
	}
	if ot.Format == nil {
		if text := el.SelectElement("Text"); text != nil {
			if attr := text.SelectAttr("textformat"); attr != nil {
				format := attr.Value
				ot.Format = &format
			}
		}
	}
	return ot, nil
}

func parseSubject(el *etree.Element) (*Subject, error) {
	return &Subject{
		Scheme:      optText(el, "SubjectSchemeIdentifier"),
		Code:        optText(el, "SubjectCode"),
		HeadingText: optClean(el, "SubjectHeadingText"),
		Main:        el.SelectElement("MainSubject") != nil,
	}, nil
}

func parsePrize(el *etree.Element) (*Prize, error) {
	return &Prize{
		Name:    optClean(el, "PrizeName"),
		Year:    optText(el, "PrizeYear"),
		Country: optText(el, "PrizeCountry"),
		Code:    optText(el, "PrizeCode"),
		Jury:    optClean(el, "PrizeJury"),
	}, nil
}

func parsePublisher(el *etree.Element) (*Publisher, error) {
	return &Publisher{
		Role:    optText(el, "PublishingRole"),
		Name:    optText(el, "PublisherName"),
		Website: optText(el, "Website/WebsiteLink"),
	}, nil
}

func parseProductFormFeature(el *etree.Element) (*ProductFormFeature, error) {
	typ, err := SingleChildText(el, "ProductFormFeatureType")
	if err != nil {
		return nil, err
	}
	return &ProductFormFeature{
		Type:        typ,
		Value:       optText(el, "ProductFormFeatureValue"),
		Description: optClean(el, "ProductFormFeatureDescription"),
	}, nil
}

// Layouts seen in MediaFileDate and similar fields, most common first.
var dateLayouts = []string{
	"20060102",
	"2006-01-02",
	"20060102T1504",
	"20060102T1504Z0700",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"200601",
	"2006",
}

// normalizeDate reformats a date into YYYY-MM-DD. Unparseable input yields
// nothing rather than a guess.
func normalizeDate(in string) (string, bool) {
	in = strings.TrimSpace(in)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, in); err == nil {
			return t.Format(time.DateOnly), true
		}
	}
	return "", false
}

// variantError annotates construction failures with the variant name.
func variantError(variant string, err error) error {
	return fmt.Errorf("unable to build <%s>: %w", variant, err)
}
