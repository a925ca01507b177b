// Package pdf renders bid quotes as A4 PDF documents.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/sashbid/internal/bid"
	"github.com/frahmantamala/sashbid/internal/core/pricing"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

type QuoteRenderer struct {
	CompanyName string
}

func NewQuoteRenderer(companyName string) *QuoteRenderer {
	if companyName == "" {
		companyName = "SashBid"
	}
	return &QuoteRenderer{CompanyName: companyName}
}

var _ bid.QuoteRenderer = (*QuoteRenderer)(nil)

func (q *QuoteRenderer) Render(_ context.Context, b *bid.Bid) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Quote "+b.ID, true).
		WithAuthor(q.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(q.headerRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(b))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemHeaderRow())
	m.AddRows(itemRows(b.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(b))

	if b.Notes != "" {
		m.AddRows(row.New(14).Add(col.New(12).Add(
			text.New("Notes", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
			text.New(b.Notes, props.Text{Size: 8, Top: 7, Color: colorGray}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate quote: %w", err)
	}
	return doc.GetBytes(), nil
}

func (q *QuoteRenderer) headerRow(b *bid.Bid) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(q.CompanyName, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
			text.New("Windows & Doors", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("QUOTE", props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New("Status: "+b.Status, props.Text{Size: 8, Align: align.Right, Top: 8}),
			text.New("Due: "+b.DueDate.Format("Jan 2, 2006"), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

func partiesRow(b *bid.Bid) core.Row {
	clientName, contact := "-", ""
	if b.Client != nil {
		clientName = nonEmpty(b.Client.Name, b.Client.ID)
		contact = fmt.Sprintf("Email: %s   |   Phone: %s", nonEmpty(b.Client.Email, "-"), nonEmpty(b.Client.Phone, "-"))
	}
	projectName := "-"
	if b.Project != nil {
		projectName = nonEmpty(b.Project.Name, b.Project.ID)
	}

	return row.New(16).Add(
		col.New(7).Add(
			text.New("PREPARED FOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(clientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(contact, props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("PROJECT", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(projectName, props.Text{Size: 10, Align: align.Right, Top: 6}),
		),
	)
}

func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Description", 6, align.Left),
		h("Unit price", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func itemRows(items []bid.LineItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(decimal.NewFromFloat(it.Quantity).String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.Description, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(money(it.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(b *bid.Bid) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	taxLabel := fmt.Sprintf("Tax (%s%%):", decimal.NewFromFloat(b.Tax).String())
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label(taxLabel, 7),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 13, Color: colorPrimary}),
		),
		col.New(3).Add(
			value(money(b.Subtotal), 1),
			value(money(pricing.TaxAmount(b.Subtotal, b.Tax)), 7),
			text.New(money(b.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 13, Color: colorPrimary}),
		),
	)
}

// money formats an amount as $1,234.50.
func money(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	neg := s[0] == '-'
	if neg {
		s = s[1:]
	}
	whole, frac := s[:len(s)-3], s[len(s)-3:]

	n := len(whole)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, whole[i])
	}

	out := "$" + string(buf) + frac
	if neg {
		out = "-" + out
	}
	return out
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
