package onix

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"go.uber.org/zap"
)

// Identifier returns the value of the first product identifier of idType.
func (p *Product) Identifier(idType string) (string, error) {
	for _, id := range itemsOf[*ProductIdentifier](p.Get("ProductIdentifier")) {
		if id.Type == idType {
			return id.Value, nil
		}
	}
	return "", &NotFoundError{What: "identifier of type " + idType}
}

// Identifiers returns all well formed product identifiers.
func (p *Product) Identifiers() []*ProductIdentifier {
	return itemsOf[*ProductIdentifier](p.Get("ProductIdentifier"))
}

func (p *Product) RecordReference() (string, bool) {
	return p.fieldText(FieldRecordReference)
}

func (p *Product) NotificationType() (string, bool) {
	return p.fieldText(FieldNotificationType)
}

// PublishingStatus returns list 64 code.
func (p *Product) PublishingStatus() (string, bool) {
	return p.fieldText(FieldPublishingStatus)
}

// PublishingStatusString returns human readable publishing status, "Unknown"
// for absent or unmapped codes.
func (p *Product) PublishingStatusString() string {
	status, _ := p.PublishingStatus()
	if s, ok := publishingStatus[status]; ok {
		return s
	}
	return unknownCode
}

// IsActive is true for active and forthcoming products.
func (p *Product) IsActive() bool {
	status, _ := p.PublishingStatus()
	return status == StatusActive || status == StatusForthcoming
}

// ProductForm returns list 7 (2.1) or list 150 (3.0) code.
func (p *Product) ProductForm() (string, bool) {
	return p.fieldText(FieldProductForm)
}

func (p *Product) ProductFormDetail() (string, bool) {
	return p.fieldText(FieldProductFormDetail)
}

// ProductFormFeatures is only mapped for 3.0.
func (p *Product) ProductFormFeatures() []*ProductFormFeature {
	if _, ok := p.resolve(FieldProductFormFeatures); !ok {
		return nil
	}
	return itemsOf[*ProductFormFeature](p.field(FieldProductFormFeatures))
}

func (p *Product) EpubTechnicalProtection() (string, bool) {
	return p.fieldText(FieldEpubTechnicalProtection)
}

func (p *Product) Languages() []*Language {
	return itemsOf[*Language](p.field(FieldLanguages))
}

// LanguageOfText returns code of the language with "language of text" role.
// Not mapped for 3.0.
func (p *Product) LanguageOfText() (string, bool) {
	for _, l := range itemsOf[*Language](p.field(FieldLanguageOfText)) {
		if l.Role == LanguageRoleText {
			return l.Code, true
		}
	}
	return "", false
}

// LanguageOfTextTag is LanguageOfText parsed into a language tag, language.Und
// when there is none or it cannot be parsed.
func (p *Product) LanguageOfTextTag() language.Tag {
	code, ok := p.LanguageOfText()
	if !ok {
		return language.Und
	}
	return parseLanguageCode(code, p.log)
}

func parseLanguageCode(in string, log *zap.Logger) language.Tag {
	code := strings.TrimSpace(in)
	if code == "" {
		return language.Und
	}
	if tag, err := language.Parse(code); err == nil {
		return tag
	}
	// bibliographic ISO 639-2 codes (fre, ger...) are not understood by the
	// parser, try English names as a last resort
	for _, tag := range display.Supported.Tags() {
		if strings.EqualFold(display.English.Tags().Name(tag), code) {
			return tag
		}
	}
	log.Debug("Unable to parse language code", zap.String("code", code))
	return language.Und
}

// AudienceCodes returns list 28 audience codes, taken from <AudienceCode>
// elements or, when there are none, from ONIX typed <Audience> composites.
// Not mapped for 3.0.
func (p *Product) AudienceCodes() []string {
	if _, ok := p.resolve(FieldAudienceCodes); !ok {
		return nil
	}
	codes := []string{}
	if raws := itemsOf[RawElement](p.field(FieldAudienceCodes)); len(raws) > 0 {
		for _, raw := range raws {
			codes = append(codes, raw.Text())
		}
		return codes
	}
	for _, a := range itemsOf[*Audience](p.field(FieldAudiences)) {
		if deref(a.Type) == AudienceCodeTypeONIX && a.Value != nil {
			codes = append(codes, *a.Value)
		}
	}
	return codes
}

// AudienceRangeInfo is a flattened audience range.
type AudienceRangeInfo struct {
	Qualifier  string      `yaml:"qualifier"`
	Precisions []Precision `yaml:"precisions"`
	Values     []string    `yaml:"values"`
}

// AudienceRanges is not mapped for 3.0.
func (p *Product) AudienceRanges() []AudienceRangeInfo {
	if _, ok := p.resolve(FieldAudienceRanges); !ok {
		return nil
	}
	out := []AudienceRangeInfo{}
	for _, ar := range itemsOf[*AudienceRange](p.field(FieldAudienceRanges)) {
		out = append(out, AudienceRangeInfo{
			Qualifier:  deref(ar.Qualifier),
			Precisions: ar.Precisions(),
			Values:     ar.Values,
		})
	}
	return out
}

func (p *Product) Titles() []*Title {
	return itemsOf[*Title](p.field(FieldTitles))
}

// Title returns display form of the distinctive title, falling back to the
// first title of any type.
func (p *Product) Title() (string, bool) {
	titles := p.Titles()
	for _, t := range titles {
		if deref(t.Type) == TitleTypeDistinctive {
			if s, ok := t.Display(); ok {
				return s, true
			}
		}
	}
	for _, t := range titles {
		if s, ok := t.Display(); ok {
			return s, true
		}
	}
	return "", false
}

// IsNotPartOfSeries reports presence of <NoSeries/>. Second value is false
// when the answer is unknown (3.0).
func (p *Product) IsNotPartOfSeries() (bool, bool) {
	if _, ok := p.resolve(FieldNoSeries); !ok {
		return false, false
	}
	return len(p.field(FieldNoSeries)) > 0, true
}

func (p *Product) Publishers() []*Publisher {
	return itemsOf[*Publisher](p.field(FieldPublishers))
}

func (p *Product) Contributors() []*Contributor {
	return itemsOf[*Contributor](p.field(FieldContributors))
}

func (p *Product) SupplyDetails() []*SupplyDetail {
	return itemsOf[*SupplyDetail](p.field(FieldSupplyDetails))
}

func (p *Product) SalesRights() []*SalesRights {
	return itemsOf[*SalesRights](p.field(FieldSalesRights))
}

func (p *Product) Texts() []*OtherText {
	return itemsOf[*OtherText](p.field(FieldTexts))
}

func (p *Product) Prizes() []*Prize {
	return itemsOf[*Prize](p.field(FieldPrizes))
}

func (p *Product) PrizesMinimalData() []PrizeSummary {
	prizes := p.Prizes()
	out := make([]PrizeSummary, 0, len(prizes))
	for _, pr := range prizes {
		out = append(out, pr.MinimalData())
	}
	return out
}

func (p *Product) PrizesData() []PrizeDetails {
	prizes := p.Prizes()
	out := make([]PrizeDetails, 0, len(prizes))
	for _, pr := range prizes {
		out = append(out, pr.Data())
	}
	return out
}

func (p *Product) Subjects() []*Subject {
	return itemsOf[*Subject](p.field(FieldSubjects))
}

// Edition returns list 21 edition type code.
func (p *Product) Edition() (string, bool) {
	return p.fieldText(FieldEdition)
}

func (p *Product) PublishDate() (string, bool) {
	return p.fieldText(FieldPublishDate)
}

func (p *Product) FirstImprintName() (string, bool) {
	return p.fieldText(FieldImprintName)
}

func (p *Product) FirstPublisherName() (string, bool) {
	return p.fieldText(FieldPublisherName)
}

// CopyrightYear reads <CopyrightYear>, for 2.1 falling back to the one inside
// <CopyrightStatement>.
func (p *Product) CopyrightYear() (string, bool) {
	if year, ok := p.fieldText(FieldCopyrightYear); ok && year != "" {
		return year, true
	}
	return p.fieldText(FieldCopyrightStatementYear)
}

// NumberOfPages is not mapped for 3.0.
func (p *Product) NumberOfPages() (string, bool) {
	return p.fieldText(FieldNumberOfPages)
}
