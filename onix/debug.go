package onix

import (
	"onixp/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of everything the facade extracts from the
// product. It exists solely for manual inspection during debugging and
// materializes all collections as a side effect.
func (p *Product) String() string {
	if p == nil {
		return "<nil Product>"
	}
	return treeWriter{debug.NewTreeWriter()}.product(p).String()
}

func (tw treeWriter) product(p *Product) treeWriter {
	tw.Line(0, "Product release=%q", p.release)
	tw.Optional(1, "RecordReference", p.RecordReference)
	for i, id := range p.Identifiers() {
		tw.Line(1, "Identifier[%d] type=%q value=%q", i, id.Type, id.Value)
	}
	tw.Optional(1, "PublishingStatus", p.PublishingStatus)
	tw.Optional(1, "ProductForm", p.ProductForm)
	tw.Optional(1, "ProductFormDetail", p.ProductFormDetail)
	for i, t := range p.Titles() {
		tw.Line(1, "Title[%d] type=%q", i, deref(t.Type))
		tw.TextBlock(2, "Text", deref(t.Text))
		if t.Subtitle != nil {
			tw.TextBlock(2, "Subtitle", *t.Subtitle)
		}
	}
	for i, c := range p.Contributors() {
		name, _ := c.Name()
		tw.Line(1, "Contributor[%d] role=%q seq=%q name=%q corporate=%q", i, c.Role, deref(c.SequenceNumber), name, deref(c.CorporateName))
	}
	for i, l := range p.Languages() {
		tw.Line(1, "Language[%d] role=%q code=%q", i, l.Role, l.Code)
	}
	if s := p.Series(); s != nil {
		tw.Line(1, "Series title=%q number=%q", s.TitleOfSeries, s.NumberWithinSeries)
	}
	for i, s := range p.Subjects() {
		tw.Line(1, "Subject[%d] scheme=%q code=%q main=%t", i, deref(s.Scheme), deref(s.Code), s.Main)
	}
	for i, t := range p.Texts() {
		tw.Line(1, "Text[%d] type=%q format=%q", i, deref(t.Type), deref(t.Format))
		tw.TextBlock(2, "Value", deref(t.Text))
	}
	for i, sr := range p.SalesRights() {
		tw.Line(1, "SalesRights[%d] type=%q forSale=%t value=%q", i, deref(sr.Type), sr.IsForSale(), sr.Value())
	}
	for i, sd := range p.SupplyDetails() {
		availability, _ := sd.Availability()
		tw.Line(1, "SupplyDetail[%d] availability=%q onSale=%q", i, availability, deref(sd.OnSaleDate))
		for j, pr := range sd.Prices {
			tw.Line(2, "Price[%d] type=%q amount=%q currency=%q", j, deref(pr.Type), deref(pr.Amount), deref(pr.Currency))
		}
	}
	for i, pr := range p.Prizes() {
		tw.Line(1, "Prize[%d] name=%q year=%q", i, deref(pr.Name), deref(pr.Year))
	}
	if m := p.Measures(); m != nil {
		tw.dimension(1, "Height", m.Height)
		tw.dimension(1, "Width", m.Width)
		tw.dimension(1, "Thickness", m.Thickness)
		tw.dimension(1, "Weight", m.Weight)
	}
	tw.Optional(1, "PublishDate", p.PublishDate)
	tw.Optional(1, "CopyrightStatement", p.CopyrightStatement)
	if gaps := Unsupported(p.release); len(gaps) > 0 {
		tw.Line(1, "Unsupported: %v", gaps)
	}
	return tw
}

func (tw treeWriter) dimension(depth int, label string, d *Dimension) {
	if d == nil {
		return
	}
	tw.Line(depth, "%s=%q %s", label, d.Value, d.Unit)
}
