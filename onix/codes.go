package onix

// ONIX code list values used by the facade. Only codes the accessors act on
// are listed, everything else passes through as raw strings.

// Product identifier types, list 5.
const (
	IDTypeProprietary = "01"
	IDTypeISBN10      = "02"
	IDTypeGTIN13      = "03"
	IDTypeUPC         = "04"
	IDTypeISMN10      = "05"
	IDTypeDOI         = "06"
	IDTypeLCCN        = "13"
	IDTypeGTIN14      = "14"
	IDTypeISBN13      = "15"
)

// Title types, list 15.
const (
	TitleTypeDistinctive = "01"
)

// Contributor roles, list 17.
const (
	RoleAuthor    = "A01"
	RoleNarrator  = "E03"
	RoleReadBy    = "E07"
	RolePerformer = "E99"
)

// Language roles, list 22.
const (
	LanguageRoleText = "01"
)

// Audience code types, list 29.
const (
	AudienceCodeTypeONIX = "01"
)

// Audience range qualifiers, list 30.
const (
	QualifierUSSchoolGrade     = "11"
	QualifierInterestAgeMonths = "16"
	QualifierInterestAgeYears  = "17"
	QualifierReadingAgeYears   = "18"
)

// Audience range precisions, list 31.
const (
	PrecisionCodeExact = "01"
	PrecisionCodeFrom  = "03"
	PrecisionCodeTo    = "04"
)

// Other text types, list 33.
const (
	TextTypeMainDescription     = "01"
	TextTypeShortDescription    = "02"
	TextTypeLongDescription     = "03"
	TextTypeReviewQuote         = "08"
	TextTypePromotionalHeadline = "09"
	TextTypeBiographicalNote    = "13"
	TextTypeBackCoverCopy       = "18"
	TextTypeExcerpt             = "23"
)

// Media file types, formats and link types, lists 38, 39 and 40.
const (
	MediaTypeFrontCover = "04"
	MediaFormatJPEG     = "03"
	MediaLinkURL        = "01"
)

// Sales rights types, list 46.
const (
	SalesRightsForSaleExclusive    = "01"
	SalesRightsForSaleNonExclusive = "02"
	SalesRightsNotForSale          = "03"
)

// Measure types and units, lists 48 and 50.
const (
	MeasureHeight    = "01"
	MeasureWidth     = "02"
	MeasureThickness = "03"
	MeasureWeight    = "08"

	UnitCentimeters = "cm"
	UnitGrams       = "gr"
	UnitInches      = "in"
	UnitKilograms   = "kg"
	UnitPounds      = "lb"
	UnitMillimeters = "mm"
	UnitOunces      = "oz"
)

// Availability codes, list 54 (deprecated in favour of list 65).
const (
	AvailabilityCancelled              = "AB"
	AvailabilityUncertain              = "CS"
	AvailabilityAvailable              = "IP"
	AvailabilityNotYetPublished        = "NP"
	AvailabilityOutOfStockIndefinitely = "OI"
	AvailabilityOutOfPrint             = "OP"
	AvailabilityReplacedByNewEdition   = "OR"
	AvailabilityPostponedIndefinitely  = "PP"
)

// Price types, list 58.
const (
	PriceTypeRRPExcludingTax = "01"
	PriceTypeRRPIncludingTax = "02"
)

// Subject scheme identifiers, list 27.
const (
	SchemeBISACSubjectHeading = "10"
	SchemeKeywords            = "20"
)

// Publishing status, list 64.
const (
	StatusForthcoming = "02"
	StatusActive      = "04"
)

var publishingStatus = map[string]string{
	"00": "Unspecified",
	"01": "Cancelled",
	"02": "Forthcoming",
	"03": "Postponed indefinitely",
	"04": "Active",
	"05": "No longer our product",
	"06": "Out of stock indefinitely",
	"07": "Out of print",
	"08": "Inactive",
	"09": "Unknown",
	"10": "Remaindered",
	"11": "Withdrawn from sale",
	"12": "Not available in this market",
	"13": "Active, but not sold separately",
	"14": "Active, with market restrictions",
	"15": "Recalled",
	"16": "Temporarily withdrawn from sale",
}

// list 54
var availabilityCodes = map[string]string{
	"IP": "Available",
	"NP": "Not yet available",
	"OP": "Terminated",
	"OR": "Replaced",
	"AB": "Cancelled",
	"CS": "Contact supplier",
}

// list 65
var productAvailabilities = map[string]string{
	"20": "Available",
	"10": "Not yet available",
	"11": "Awaiting stock",
	"21": "In stock",
	"40": "Not available",
	"41": "Replaced",
	"43": "No longer supplied",
	"51": "Terminated",
	"01": "Cancelled",
	"99": "Contact supplier",
}

const unknownCode = "Unknown"
