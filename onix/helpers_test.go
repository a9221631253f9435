package onix

import (
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func mustElement(t *testing.T, xml string) *etree.Element {
	t.Helper()

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		t.Fatalf("read xml: %v", err)
	}
	if doc.Root() == nil {
		t.Fatalf("xml has no root element")
	}
	return doc.Root()
}

func mustProduct(t *testing.T, release, xml string) *Product {
	t.Helper()

	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	p, err := NewProduct(mustElement(t, xml), release, log)
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

const isbnIdentifier = `<ProductIdentifier><ProductIDType>15</ProductIDType><IDValue>9780000000002</IDValue></ProductIdentifier>`

const legacyProduct = `<Product>
	<RecordReference>com.example.0001</RecordReference>
	<NotificationType>03</NotificationType>
	<ProductIdentifier><ProductIDType>02</ProductIDType><IDValue>0000000000</IDValue></ProductIdentifier>
	` + isbnIdentifier + `
	<ProductForm>BB</ProductForm>
	<ProductFormDetail>B206</ProductFormDetail>
	<EpubTechnicalProtection>00</EpubTechnicalProtection>
	<Title>
		<TitleType>01</TitleType>
		<TitleText>The Example Book</TitleText>
		<Subtitle>A Subtitle</Subtitle>
	</Title>
	<Series>
		<TitleOfSeries>&lt;![CDATA[Examples]]&gt;</TitleOfSeries>
		<NumberWithinSeries>3</NumberWithinSeries>
	</Series>
	<Contributor>
		<SequenceNumber>1</SequenceNumber>
		<ContributorRole>A01</ContributorRole>
		<PersonNameInverted>Doe, Jane</PersonNameInverted>
		<BiographicalNote>&lt;![CDATA[Jane writes.]]&gt;</BiographicalNote>
	</Contributor>
	<Contributor>
		<PersonName>No Role</PersonName>
	</Contributor>
	<Contributor>
		<SequenceNumber>2</SequenceNumber>
		<ContributorRole>B01</ContributorRole>
		<CorporateName>Editors Inc</CorporateName>
	</Contributor>
	<EditionTypeCode>REV</EditionTypeCode>
	<Language><LanguageRole>01</LanguageRole><LanguageCode>eng</LanguageCode></Language>
	<Language><LanguageRole>02</LanguageRole><LanguageCode>fre</LanguageCode></Language>
	<NumberOfPages>320</NumberOfPages>
	<BASICMainSubject>FIC000000</BASICMainSubject>
	<Subject><SubjectSchemeIdentifier>10</SubjectSchemeIdentifier><SubjectCode>FIC019000</SubjectCode></Subject>
	<Subject><SubjectSchemeIdentifier>20</SubjectSchemeIdentifier><SubjectHeadingText>mystery; detective</SubjectHeadingText></Subject>
	<Subject><SubjectSchemeIdentifier>10</SubjectSchemeIdentifier><SubjectCode>FIC022000</SubjectCode></Subject>
	<AudienceCode>01</AudienceCode>
	<AudienceCode>02</AudienceCode>
	<AudienceRange>
		<AudienceRangeQualifier>17</AudienceRangeQualifier>
		<AudienceRangePrecision>03</AudienceRangePrecision>
		<AudienceRangeValue>8</AudienceRangeValue>
		<AudienceRangePrecision>99</AudienceRangePrecision>
		<AudienceRangePrecision>04</AudienceRangePrecision>
		<AudienceRangeValue>12</AudienceRangeValue>
	</AudienceRange>
	<OtherText><TextTypeCode>08</TextTypeCode><TextFormat>06</TextFormat><Text>Great!</Text><TextAuthor>A Critic</TextAuthor><TextSourceTitle>Daily</TextSourceTitle></OtherText>
	<OtherText><TextTypeCode>13</TextTypeCode><TextFormat>06</TextFormat><Text>Born somewhere.</Text></OtherText>
	<MediaFile>
		<MediaFileTypeCode>04</MediaFileTypeCode>
		<MediaFileFormatCode>03</MediaFileFormatCode>
		<MediaFileLinkTypeCode>01</MediaFileLinkTypeCode>
		<MediaFileLink>http://x/y.jpg</MediaFileLink>
		<MediaFileDate>20120315</MediaFileDate>
	</MediaFile>
	<Prize><PrizeName>Big Prize</PrizeName><PrizeYear>2011</PrizeYear><PrizeCountry>US</PrizeCountry><PrizeCode>01</PrizeCode></Prize>
	<Imprint><ImprintName>Example Imprint</ImprintName></Imprint>
	<Publisher><PublishingRole>01</PublishingRole><PublisherName>Example House</PublisherName></Publisher>
	<PublishingStatus>04</PublishingStatus>
	<PublicationDate>20120401</PublicationDate>
	<CopyrightStatement>
		<CopyrightYear>2011</CopyrightYear>
		<CopyrightOwner><PersonName>Jane Doe</PersonName></CopyrightOwner>
	</CopyrightStatement>
	<SalesRights><SalesRightsType>01</SalesRightsType><RightsCountry>US</RightsCountry></SalesRights>
	<SalesRights><SalesRightsType>03</SalesRightsType><RightsCountry>CA UK</RightsCountry></SalesRights>
	<SalesRights><SalesRightsType>02</SalesRightsType><RightsCountry>AU</RightsCountry></SalesRights>
	<Measure><MeasureTypeCode>01</MeasureTypeCode><Measurement>9.00</Measurement><MeasureUnitCode>in</MeasureUnitCode></Measure>
	<Measure><MeasureTypeCode>08</MeasureTypeCode><Measurement>14.2</Measurement><MeasureUnitCode>oz</MeasureUnitCode></Measure>
	<SupplyDetail>
		<SupplierName>Distributor</SupplierName>
		<AvailabilityCode>IP</AvailabilityCode>
		<ProductAvailability>21</ProductAvailability>
		<OnSaleDate>20120401</OnSaleDate>
		<Stock><LocationName>Main warehouse</LocationName></Stock>
		<Price>
			<PriceTypeCode>01</PriceTypeCode>
			<PriceAmount>24.95</PriceAmount>
			<CurrencyCode>USD</CurrencyCode>
		</Price>
		<Price>
			<PriceAmount>19.99</PriceAmount>
		</Price>
	</SupplyDetail>
</Product>`

const currentProduct = `<Product>
	<RecordReference>com.example.0002</RecordReference>
	<NotificationType>03</NotificationType>
	` + isbnIdentifier + `
	<DescriptiveDetail>
		<ProductComposition>00</ProductComposition>
		<ProductForm>EA</ProductForm>
		<ProductFormDetail>E101</ProductFormDetail>
		<ProductFormFeature>
			<ProductFormFeatureType>09</ProductFormFeatureType>
			<ProductFormFeatureValue>09</ProductFormFeatureValue>
		</ProductFormFeature>
		<EpubTechnicalProtection>01</EpubTechnicalProtection>
		<TitleDetail>
			<TitleType>01</TitleType>
			<TitleElement>
				<TitleElementLevel>01</TitleElementLevel>
				<TitlePrefix>The</TitlePrefix>
				<TitleWithoutPrefix>Nested Book</TitleWithoutPrefix>
			</TitleElement>
		</TitleDetail>
		<Contributor>
			<SequenceNumber>1</SequenceNumber>
			<ContributorRole>A01</ContributorRole>
			<PersonName>John Smith</PersonName>
		</Contributor>
		<EditionType>ABR</EditionType>
		<Language><LanguageRole>01</LanguageRole><LanguageCode>eng</LanguageCode></Language>
		<Subject><MainSubject/><SubjectSchemeIdentifier>10</SubjectSchemeIdentifier><SubjectCode>FIC000000</SubjectCode></Subject>
		<Subject><SubjectSchemeIdentifier>10</SubjectSchemeIdentifier><SubjectCode>FIC019000</SubjectCode></Subject>
		<Subject><SubjectSchemeIdentifier>20</SubjectSchemeIdentifier><SubjectHeadingText>nested</SubjectHeadingText></Subject>
		<Measure><MeasureType>01</MeasureType><Measurement>20</Measurement><MeasureUnitCode>cm</MeasureUnitCode></Measure>
		<NumberOfPages>100</NumberOfPages>
	</DescriptiveDetail>
	<CollateralDetail>
		<TextContent>
			<TextType>03</TextType>
			<ContentAudience>00</ContentAudience>
			<Text textformat="02">A nested description.</Text>
		</TextContent>
		<Prize><PrizeName>Nested Prize</PrizeName><PrizeYear>2020</PrizeYear></Prize>
	</CollateralDetail>
	<PublishingDetail>
		<Imprint><ImprintName>Nested Imprint</ImprintName></Imprint>
		<Publisher>
			<PublishingRole>01</PublishingRole>
			<PublisherName>Nested House</PublisherName>
			<Website><WebsiteLink>http://nested.example</WebsiteLink></Website>
		</Publisher>
		<PublishingStatus>02</PublishingStatus>
		<PublishingDate><PublishingDateRole>01</PublishingDateRole><Date>20200101</Date></PublishingDate>
		<CopyrightStatement>
			<CopyrightYear>2019</CopyrightYear>
			<CopyrightOwner><CorporateName>Nested Corp</CorporateName></CopyrightOwner>
			<CopyrightOwner><PersonName>Someone</PersonName></CopyrightOwner>
		</CopyrightStatement>
		<SalesRights>
			<SalesRightsType>01</SalesRightsType>
			<Territory><RegionsIncluded>WORLD</RegionsIncluded></Territory>
		</SalesRights>
	</PublishingDetail>
	<ProductSupply>
		<SupplyDetail>
			<Supplier><SupplierRole>01</SupplierRole><SupplierName>Nested Supplier</SupplierName></Supplier>
			<ProductAvailability>20</ProductAvailability>
			<SupplyDate><SupplyDateRole>08</SupplyDateRole><Date>20200102</Date></SupplyDate>
			<Price><PriceType>01</PriceType><PriceAmount>9.99</PriceAmount><CurrencyCode>EUR</CurrencyCode></Price>
		</SupplyDetail>
	</ProductSupply>
</Product>`
