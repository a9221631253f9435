package feed

import (
	"strings"

	"github.com/beevik/etree"
)

// Composites use lower-cased reference names as short tags.
var composites = []string{
	"Header", "Sender", "Product", "ProductIdentifier", "DescriptiveDetail",
	"CollateralDetail", "PublishingDetail", "ProductSupply", "ProductFormFeature",
	"Title", "TitleDetail", "TitleElement", "Series", "NoSeries", "Contributor",
	"Language", "Subject", "MainSubject", "Audience", "AudienceRange", "OtherText",
	"TextContent", "MediaFile", "Prize", "Imprint", "Publisher", "Website",
	"PublishingDate", "CopyrightStatement", "CopyrightOwner", "SalesRights",
	"Territory", "Measure", "SupplyDetail", "Supplier", "SupplyDate", "Stock",
	"Price",
}

// Data elements with coded short tags.
var dataElements = map[string]string{
	// header
	"m174": "FromCompany",
	"m182": "SentDate",
	"x298": "SenderName",
	"x307": "SentDateTime",
	// record
	"a001": "RecordReference",
	"a002": "NotificationType",
	"b221": "ProductIDType",
	"b233": "IDTypeName",
	"b244": "IDValue",
	"b012": "ProductForm",
	"b333": "ProductFormDetail",
	"b334": "ProductFormFeatureType",
	"b335": "ProductFormFeatureValue",
	"b336": "ProductFormFeatureDescription",
	"x314": "ProductComposition",
	"x317": "EpubTechnicalProtection",
	// titles and series
	"b202": "TitleType",
	"x409": "TitleElementLevel",
	"b203": "TitleText",
	"b030": "TitlePrefix",
	"b031": "TitleWithoutPrefix",
	"b029": "Subtitle",
	"b018": "TitleOfSeries",
	"b019": "NumberWithinSeries",
	// contributors
	"b034": "SequenceNumber",
	"b035": "ContributorRole",
	"b036": "PersonName",
	"b037": "PersonNameInverted",
	"b039": "NamesBeforeKey",
	"b040": "KeyNames",
	"b047": "CorporateName",
	"b044": "BiographicalNote",
	// edition, language, extent
	"b056": "EditionTypeCode",
	"x419": "EditionType",
	"b253": "LanguageRole",
	"b252": "LanguageCode",
	"b061": "NumberOfPages",
	// subjects and audience
	"b064": "BASICMainSubject",
	"b067": "SubjectSchemeIdentifier",
	"b069": "SubjectCode",
	"b070": "SubjectHeadingText",
	"x425": "MainSubject",
	"b073": "AudienceCode",
	"b204": "AudienceCodeType",
	"b206": "AudienceCodeValue",
	"b074": "AudienceRangeQualifier",
	"b075": "AudienceRangePrecision",
	"b076": "AudienceRangeValue",
	// texts and media
	"d102": "TextTypeCode",
	"d103": "TextFormat",
	"d104": "Text",
	"d107": "TextAuthor",
	"d108": "TextSourceTitle",
	"x426": "TextType",
	"x427": "ContentAudience",
	"f114": "MediaFileTypeCode",
	"f115": "MediaFileFormatCode",
	"f116": "MediaFileLinkTypeCode",
	"f117": "MediaFileLink",
	"f373": "MediaFileDate",
	"g126": "PrizeName",
	"g127": "PrizeYear",
	"g128": "PrizeCountry",
	"g129": "PrizeCode",
	"g343": "PrizeJury",
	// publishing
	"b079": "ImprintName",
	"b291": "PublishingRole",
	"b081": "PublisherName",
	"b295": "WebsiteLink",
	"b394": "PublishingStatus",
	"b003": "PublicationDate",
	"x448": "PublishingDateRole",
	"b306": "Date",
	"b087": "CopyrightYear",
	"b089": "SalesRightsType",
	"b090": "RightsCountry",
	"b388": "RightsTerritory",
	"x449": "CountriesIncluded",
	"x450": "RegionsIncluded",
	// measures
	"c093": "MeasureTypeCode",
	"x315": "MeasureType",
	"c094": "Measurement",
	"c095": "MeasureUnitCode",
	// supply
	"j292": "SupplierRole",
	"j137": "SupplierName",
	"j141": "AvailabilityCode",
	"j396": "ProductAvailability",
	"j143": "OnSaleDate",
	"x461": "SupplyDateRole",
	"j349": "LocationName",
	"j148": "PriceTypeCode",
	"x462": "PriceType",
	"j151": "PriceAmount",
	"j152": "CurrencyCode",
	"j161": "PriceEffectiveFrom",
}

var shortTags = func() map[string]string {
	m := make(map[string]string, len(composites)+len(dataElements)+1)
	m["ONIXmessage"] = "ONIXMessage"
	for _, name := range composites {
		m[strings.ToLower(name)] = name
	}
	for short, name := range dataElements {
		m[short] = name
	}
	return m
}()

// ReferenceName returns reference tag for short tag, unknown tags are
// returned as is.
func ReferenceName(short string) (string, bool) {
	if name, ok := shortTags[short]; ok {
		return name, true
	}
	return short, false
}

// renameShortTags rewrites el and all its descendants to reference names,
// returning number of tags left untouched.
func renameShortTags(el *etree.Element) (unknown int) {
	if name, ok := ReferenceName(el.Tag); ok {
		el.Tag = name
	} else {
		unknown++
	}
	for _, child := range el.ChildElements() {
		unknown += renameShortTags(child)
	}
	return unknown
}
