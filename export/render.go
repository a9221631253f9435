package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"onixp/config"
	"onixp/onix"
	"onixp/utils/debug"
)

// YAML returns summary as a YAML document.
func (s *Summary) YAML() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("unable to encode summary %s: %w", s.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("unable to encode summary %s: %w", s.ID, err)
	}
	return buf.Bytes(), nil
}

// Text returns summary as indented human readable text.
func (s *Summary) Text() string {
	tw := debug.NewTreeWriter()

	tw.Line(0, "Product %s (release %s)", s.ID, s.Release)
	optional(tw, 1, "ISBN-13", s.ISBN13)
	if s.Title != "" {
		tw.TextBlock(1, "Title", s.Title)
	}
	for _, c := range s.Contributors {
		who := c.Name
		if who == "" {
			who = c.Company
		}
		tw.Line(1, "Contributor %s: %s", c.Role, who)
		if c.Bio != "" {
			tw.TextBlock(2, "Bio", c.Bio)
		}
	}
	optional(tw, 1, "Publisher", s.Publisher)
	optional(tw, 1, "Imprint", s.Imprint)
	optional(tw, 1, "PublishDate", s.PublishDate)
	tw.Line(1, "Status: %s", s.Status)
	optional(tw, 1, "Form", strings.TrimSpace(s.Form+" "+s.FormDetail))
	optional(tw, 1, "Edition", s.Edition)
	optional(tw, 1, "Language", s.Language)
	optional(tw, 1, "Pages", s.Pages)
	for _, sup := range s.Supply {
		tw.Line(1, "Supply %q: %s", sup.Supplier, sup.Availability)
		optional(tw, 2, "OnSale", sup.OnSaleDate)
		for _, pr := range sup.Prices {
			tw.Line(2, "Price %s %s (type %s)", pr.Amount, pr.Currency, pr.Type)
		}
	}
	optional(tw, 1, "ForSale", s.ForSale)
	if s.Headline != nil {
		tw.TextBlock(1, "Headline", s.Headline.Text)
	}
	if s.Description != nil {
		tw.TextBlock(1, "Description", s.Description.Text)
	}
	for _, q := range s.ReviewQuotes {
		tw.TextBlock(1, "Review", q.Text)
		optional(tw, 2, "Author", q.Author)
		optional(tw, 2, "Source", q.SourceTitle)
	}
	optional(tw, 1, "MainBISAC", s.MainBISAC)
	if len(s.OtherBISAC) > 0 {
		tw.Line(1, "OtherBISAC: %s", strings.Join(s.OtherBISAC, " "))
	}
	optional(tw, 1, "Keywords", s.Keywords)
	optional(tw, 1, "Copyright", s.Copyright)
	if s.Series != nil {
		tw.Line(1, "Series: %s #%s", s.Series.TitleOfSeries, s.Series.NumberWithinSeries)
	}
	if m := s.Measures; m != nil {
		dimension(tw, "Height", m.Height)
		dimension(tw, "Width", m.Width)
		dimension(tw, "Thickness", m.Thickness)
		dimension(tw, "Weight", m.Weight)
	}
	if s.Cover != nil && s.Cover.URL != nil {
		tw.Line(1, "Cover: %s", *s.Cover.URL)
	}
	if len(s.Audience) > 0 {
		tw.Line(1, "Audience: %s", strings.Join(s.Audience, " "))
	}
	for _, ar := range s.AudienceRanges {
		tw.Line(1, "AudienceRange %s: %v %v", ar.Qualifier, ar.Precisions, ar.Values)
	}
	for _, pr := range s.Prizes {
		tw.Line(1, "Prize: %s %s", pr.Name, pr.Year)
	}
	if len(s.Unsupported) > 0 {
		tw.Line(1, "Unsupported: %s", strings.Join(s.Unsupported, ", "))
	}
	return tw.String()
}

// Write renders summary to w in requested format.
func (s *Summary) Write(w io.Writer, format config.OutputFmt) error {
	var data []byte
	switch format {
	case config.OutputFmtYAML:
		var err error
		if data, err = s.YAML(); err != nil {
			return err
		}
	case config.OutputFmtText:
		data = []byte(s.Text())
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	_, err := w.Write(data)
	return err
}

func dimension(tw *debug.TreeWriter, label string, d *onix.Dimension) {
	if d == nil {
		return
	}
	tw.Line(1, "%s: %s %s", label, d.Value, d.Unit)
}

func optional(tw *debug.TreeWriter, depth int, label, value string) {
	if value == "" {
		return
	}
	tw.Line(depth, "%s: %s", label, value)
}
