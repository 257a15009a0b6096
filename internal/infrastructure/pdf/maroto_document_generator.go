// Package pdf implémente le rendu A4 des documents de facturation de
// l'agence (devis et factures).
//
// Mise en page :
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER : marque agence  │  DEVIS/FACTURE + numéro + date   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENT : nom + email + meta (échéance pour une facture)    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLEAU : Description | Qté | P.U. HT | Total HT           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAUX : Sous-total HT / TVA / TOTAL TTC                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER : mentions de validité / règlement                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jannahweb/jannah-os-api/internal/application/billing"
	"github.com/shopspring/decimal"
)

// ── Palette ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 41, Blue: 59}
	colorAccent  = &props.Color{Red: 99, Green: 102, Blue: 241}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoDocumentGenerator implémente billing.DocumentPDFGenerator avec Maroto v2.
type MarotoDocumentGenerator struct {
	brandName string
}

// NewMarotoDocumentGenerator construit le générateur.
func NewMarotoDocumentGenerator(brandName string) *MarotoDocumentGenerator {
	return &MarotoDocumentGenerator{brandName: brandName}
}

// GenerateDocumentPDF rend le document et retourne ses octets.
func (g *MarotoDocumentGenerator) GenerateDocumentPDF(_ context.Context, doc billing.DocumentData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(docLabel(doc.Kind)+" "+doc.Number, true).
		WithAuthor(g.brandName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.5}))
	m.AddRows(clientRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(doc.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorAccent, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: générer document: %w", err)
	}
	return generated.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow : marque (gauche), type de document + numéro + date (droite).
func (g *MarotoDocumentGenerator) headerRow(doc billing.DocumentData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.brandName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Agence digitale", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(docLabel(doc.Kind)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorAccent, Top: 1,
			}),
			text.New("N° "+doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
			text.New("Date : "+doc.IssuedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow : bloc destinataire + échéance pour une facture.
func clientRow(doc billing.DocumentData) core.Row {
	meta := "Email : " + nonEmpty(doc.Client.Email, "—")
	if doc.Kind == billing.DocumentKindInvoice && !doc.DueDate.IsZero() {
		meta += "   |   Échéance : " + doc.DueDate.Format("02/01/2006")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAccent, Top: 1,
			}),
			text.New(doc.Client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(meta, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow : en-tête du tableau des prestations.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description de la prestation", 6, align.Left),
		h("Qté", 1, align.Center),
		h("P.U. HT", 2, align.Right),
		h("Total HT", 3, align.Right),
	)
}

// tableLineRows : une ligne par prestation.
func tableLineRows(lines []billing.DocumentLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				l.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.Quantity.StringFixed(0),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatEuro(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatEuro(l.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow : bloc de totaux aligné à droite.
func totalsRow(doc billing.DocumentData) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorAccent, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorAccent, Right: 1,
		})
	}

	tax := doc.Total.Sub(doc.Subtotal)
	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Sous-total HT :"),
			label(fmt.Sprintf("TVA (%s %%) :", doc.TaxRate.StringFixed(1))),
			grandLabel("TOTAL TTC :"),
		),
		col.New(3).Add(
			value(formatEuro(doc.Subtotal)),
			value(formatEuro(tax)),
			grandValue(formatEuro(doc.Total)),
		),
		col.New(3),
	)
}

// footerRow : mentions selon le type de document.
func footerRow(doc billing.DocumentData) core.Row {
	mention := "Devis valable 30 jours à compter de sa date d'émission. " +
		"La signature vaut acceptation des prestations décrites ci-dessus."
	if doc.Kind == billing.DocumentKindInvoice {
		mention = "Règlement à réception, au plus tard à la date d'échéance. " +
			"Pénalités de retard au taux légal en vigueur ; indemnité forfaitaire de recouvrement : 40 €."
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(mention, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func docLabel(kind string) string {
	if kind == billing.DocumentKindInvoice {
		return "Facture"
	}
	return "Devis"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatEuro rend un montant au format français : "1 500,00 €".
func formatEuro(d decimal.Decimal) string {
	s := d.StringFixed(2) // ex. "1500.00"
	intPart, decPart, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	n := len(intPart)
	var b strings.Builder
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c)
	}
	out := b.String() + "," + decPart + " €"
	if neg {
		out = "-" + out
	}
	return out
}
