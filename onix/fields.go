package onix

// Field is a logical product field whose location differs between the 2.1
// (flat) and 3.0 (nested) layouts.
type Field int

const (
	FieldRecordReference Field = iota
	FieldNotificationType
	FieldPublishingStatus
	FieldProductForm
	FieldProductFormDetail
	FieldProductFormFeatures
	FieldEpubTechnicalProtection
	FieldLanguages
	FieldLanguageOfText
	FieldAudienceCodes
	FieldAudiences
	FieldAudienceRanges
	FieldMediaFiles
	FieldMeasures
	FieldTitles
	FieldNoSeries
	FieldSeries
	FieldPublishers
	FieldContributors
	FieldSupplyDetails
	FieldSalesRights
	FieldTexts
	FieldPrizes
	FieldEdition
	FieldPublishDate
	FieldImprintName
	FieldPublisherName
	FieldCopyrightYear
	FieldCopyrightStatementYear
	FieldCopyrightCorporateOwner
	FieldCopyrightPersonOwner
	FieldMainSubjectCode
	FieldSubjects
	FieldNumberOfPages
)

// layout is a pair of locations for one logical field. Empty path means the
// mapping for that layout is not known and the field yields nothing.
type layout struct {
	legacy  string
	current string
	variant string
}

// location is a resolved field: path relative to <Product> and variant used
// to materialize it.
type location struct {
	path    string
	variant string
}

var fieldNames = map[Field]string{
	FieldRecordReference:         "RecordReference",
	FieldNotificationType:        "NotificationType",
	FieldPublishingStatus:        "PublishingStatus",
	FieldProductForm:             "ProductForm",
	FieldProductFormDetail:       "ProductFormDetail",
	FieldProductFormFeatures:     "ProductFormFeatures",
	FieldEpubTechnicalProtection: "EpubTechnicalProtection",
	FieldLanguages:               "Languages",
	FieldLanguageOfText:          "LanguageOfText",
	FieldAudienceCodes:           "AudienceCodes",
	FieldAudiences:               "Audiences",
	FieldAudienceRanges:          "AudienceRanges",
	FieldMediaFiles:              "MediaFiles",
	FieldMeasures:                "Measures",
	FieldTitles:                  "Titles",
	FieldNoSeries:                "NoSeries",
	FieldSeries:                  "Series",
	FieldPublishers:              "Publishers",
	FieldContributors:            "Contributors",
	FieldSupplyDetails:           "SupplyDetails",
	FieldSalesRights:             "SalesRights",
	FieldTexts:                   "Texts",
	FieldPrizes:                  "Prizes",
	FieldEdition:                 "Edition",
	FieldPublishDate:             "PublishDate",
	FieldImprintName:             "ImprintName",
	FieldPublisherName:           "PublisherName",
	FieldCopyrightYear:           "CopyrightYear",
	FieldCopyrightStatementYear:  "CopyrightStatementYear",
	FieldCopyrightCorporateOwner: "CopyrightCorporateOwner",
	FieldCopyrightPersonOwner:    "CopyrightPersonOwner",
	FieldMainSubjectCode:         "MainSubjectCode",
	FieldSubjects:                "Subjects",
	FieldNumberOfPages:           "NumberOfPages",
}

func (f Field) String() string {
	if s, ok := fieldNames[f]; ok {
		return s
	}
	return "Field(?)"
}

// fields is the single place describing where every logical field lives.
var fields = map[Field]layout{
	FieldRecordReference:         {legacy: "RecordReference", current: "RecordReference"},
	FieldNotificationType:        {legacy: "NotificationType", current: "NotificationType"},
	FieldPublishingStatus:        {legacy: "PublishingStatus", current: "PublishingDetail/PublishingStatus"},
	FieldProductForm:             {legacy: "ProductForm", current: "DescriptiveDetail/ProductForm"},
	FieldProductFormDetail:       {legacy: "ProductFormDetail", current: "DescriptiveDetail/ProductFormDetail"},
	FieldProductFormFeatures:     {current: "DescriptiveDetail/ProductFormFeature", variant: "ProductFormFeature"},
	FieldEpubTechnicalProtection: {legacy: "EpubTechnicalProtection", current: "DescriptiveDetail/EpubTechnicalProtection"},
	FieldLanguages:               {legacy: "Language", current: "DescriptiveDetail/Language", variant: "Language"},
	FieldLanguageOfText:          {legacy: "Language", variant: "Language"},
	FieldAudienceCodes:           {legacy: "AudienceCode"},
	FieldAudiences:               {legacy: "Audience", variant: "Audience"},
	FieldAudienceRanges:          {legacy: "AudienceRange", variant: "AudienceRange"},
	FieldMediaFiles:              {legacy: "MediaFile", variant: "MediaFile"},
	FieldMeasures:                {legacy: "Measure", variant: "Measure"},
	FieldTitles:                  {legacy: "Title", current: "DescriptiveDetail/TitleDetail", variant: "Title"},
	FieldNoSeries:                {legacy: "NoSeries"},
	FieldSeries:                  {legacy: "Series", variant: "Series"},
	FieldPublishers:              {current: "PublishingDetail/Publisher", variant: "Publisher"},
	FieldContributors:            {legacy: "Contributor", current: "DescriptiveDetail/Contributor", variant: "Contributor"},
	FieldSupplyDetails:           {legacy: "SupplyDetail", current: "ProductSupply/SupplyDetail", variant: "SupplyDetail"},
	FieldSalesRights:             {legacy: "SalesRights", current: "PublishingDetail/SalesRights", variant: "SalesRights"},
	FieldTexts:                   {legacy: "OtherText", current: "CollateralDetail/TextContent", variant: "OtherText"},
	FieldPrizes:                  {legacy: "Prize", current: "CollateralDetail/Prize", variant: "Prize"},
	FieldEdition:                 {legacy: "EditionTypeCode", current: "DescriptiveDetail/EditionType"},
	FieldPublishDate:             {legacy: "PublicationDate", current: "PublishingDetail/PublishingDate/Date"},
	FieldImprintName:             {legacy: "Imprint/ImprintName", current: "PublishingDetail/Imprint/ImprintName"},
	FieldPublisherName:           {legacy: "Publisher/PublisherName", current: "PublishingDetail/Publisher/PublisherName"},
	FieldCopyrightYear:           {legacy: "CopyrightYear", current: "PublishingDetail/CopyrightStatement/CopyrightYear"},
	FieldCopyrightStatementYear:  {legacy: "CopyrightStatement/CopyrightYear", current: "PublishingDetail/CopyrightStatement/CopyrightYear"},
	FieldCopyrightCorporateOwner: {legacy: "CopyrightStatement/CopyrightOwner/CorporateName", current: "PublishingDetail/CopyrightStatement/CopyrightOwner/CorporateName"},
	FieldCopyrightPersonOwner:    {legacy: "CopyrightStatement/CopyrightOwner/PersonName", current: "PublishingDetail/CopyrightStatement/CopyrightOwner/PersonName"},
	FieldMainSubjectCode:         {legacy: "BASICMainSubject"},
	FieldSubjects:                {legacy: "Subject", current: "DescriptiveDetail/Subject", variant: "Subject"},
	FieldNumberOfPages:           {legacy: "NumberOfPages"},
}

var allFields = func() []Field {
	out := make([]Field, 0, len(fields))
	for f := FieldRecordReference; f <= FieldNumberOfPages; f++ {
		out = append(out, f)
	}
	return out
}()

// resolveField picks the location of f for release r.
func resolveField(f Field, r Release) (location, bool) {
	l, ok := fields[f]
	if !ok {
		return location{}, false
	}
	path := l.legacy
	if r.IsCurrent() {
		path = l.current
	}
	if path == "" {
		return location{}, false
	}
	variant := l.variant
	if variant == "" {
		variant = path
	}
	return location{path: path, variant: variant}, true
}

// Unsupported lists logical fields with no known location for release r.
// Accessors for these fields return nothing.
func Unsupported(r Release) []Field {
	var out []Field
	for _, f := range allFields {
		if _, ok := resolveField(f, r); !ok {
			out = append(out, f)
		}
	}
	return out
}

func (p *Product) resolve(f Field) (location, bool) {
	return resolveField(f, p.release)
}

// field materializes the collection for f, nil when f has no location for
// the product's release.
func (p *Product) field(f Field) []Item {
	loc, ok := p.resolve(f)
	if !ok {
		return nil
	}
	return p.GetVariant(loc.path, loc.variant)
}

// fieldText returns text of the first element found for a scalar field.
func (p *Product) fieldText(f Field) (string, bool) {
	raws := itemsOf[RawElement](p.field(f))
	if len(raws) == 0 {
		return "", false
	}
	return raws[0].Text(), true
}
