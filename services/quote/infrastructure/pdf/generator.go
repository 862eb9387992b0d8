// Package pdf renders budgets as printable A4 documents.
package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/ghuser/voltdesk/services/quote/domain/models"
	domainsvc "github.com/ghuser/voltdesk/services/quote/domain/services"
)

const (
	font      = "Helvetica"
	dateShort = "02/01/2006"
)

var statusLabels = map[models.Status]string{
	models.StatusPending:  "Pendente",
	models.StatusApproved: "Aprovado",
	models.StatusRejected: "Rejeitado",
	models.StatusExpired:  "Expirado",
}

// Generator lays out a budget with the core Helvetica font. Text goes through
// a cp1252 translator so Portuguese accents print without embedded fonts.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a Generator that dates documents with the current time.
func NewGenerator() *Generator { return &Generator{now: time.Now} }

// RenderBudget writes budget as a PDF to w. budget.Items must be loaded.
func (g *Generator) RenderBudget(w io.Writer, budget *models.Quote, clientName, publicURL string) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("cp1252")
	doc.SetTitle(tr("Orçamento "+budget.Name), false)
	doc.SetCreator("voltdesk", false)
	doc.AddPage()

	doc.SetFont(font, "B", 16)
	doc.Cell(0, 10, tr("Orçamento"))
	doc.Ln(9)

	doc.SetFont(font, "", 11)
	doc.Cell(0, 6, tr(trim(budget.Name, 90)))
	doc.Ln(6)
	doc.Cell(0, 6, tr(fmt.Sprintf("Cliente: %s", clientName)))
	doc.Ln(6)
	doc.Cell(0, 6, tr(fmt.Sprintf("Emitido em %s - Situação: %s", budget.CreatedAt.Format(dateShort), statusLabels[budget.Status])))
	doc.Ln(6)
	if budget.ValidUntil != nil {
		doc.Cell(0, 6, tr("Válido até "+budget.ValidUntil.Format(dateShort)))
		doc.Ln(6)
	}

	doc.Ln(4)
	doc.SetFont(font, "B", 10)
	doc.SetFillColor(235, 235, 235)
	doc.CellFormat(95, 7, tr("Descrição"), "B", 0, "L", true, 0, "")
	doc.CellFormat(20, 7, "Qtd.", "B", 0, "R", true, 0, "")
	doc.CellFormat(15, 7, "Un.", "B", 0, "C", true, 0, "")
	doc.CellFormat(30, 7, tr("Preço unit."), "B", 0, "R", true, 0, "")
	doc.CellFormat(30, 7, "Total", "B", 1, "R", true, 0, "")

	doc.SetFont(font, "", 10)
	for _, it := range budget.Items {
		doc.CellFormat(95, 6, tr(trim(it.Name, 55)), "", 0, "L", false, 0, "")
		doc.CellFormat(20, 6, it.Quantity.String(), "", 0, "R", false, 0, "")
		doc.CellFormat(15, 6, tr(it.Unit), "", 0, "C", false, 0, "")
		doc.CellFormat(30, 6, tr(brl(it.UnitPrice)), "", 0, "R", false, 0, "")
		doc.CellFormat(30, 6, tr(brl(it.TotalPrice)), "", 1, "R", false, 0, "")
	}

	doc.Ln(3)
	summary := func(label string, v decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		doc.SetFont(font, style, 11)
		doc.CellFormat(160, 7, tr(label), "", 0, "R", false, 0, "")
		doc.CellFormat(30, 7, tr(brl(v)), "", 1, "R", false, 0, "")
	}
	summary("Subtotal", budget.Subtotal, false)
	if budget.Discount != nil {
		label := "Desconto"
		if budget.Discount.Type == models.DiscountPercentage {
			label = fmt.Sprintf("Desconto (%s%%)", budget.Discount.Value.String())
		}
		summary(label, domainsvc.DiscountAmount(budget.Subtotal, budget.Discount).Neg(), false)
	}
	summary("Total", budget.TotalValue, true)

	if budget.Notes != nil {
		doc.Ln(4)
		doc.SetFont(font, "B", 10)
		doc.Cell(0, 6, tr("Observações"))
		doc.Ln(6)
		doc.SetFont(font, "", 10)
		doc.MultiCell(0, 5, tr(*budget.Notes), "", "L", false)
	}

	if publicURL != "" {
		doc.Ln(4)
		doc.SetFont(font, "", 9)
		doc.Cell(0, 5, tr("Aprove ou recuse este orçamento em:"))
		doc.Ln(5)
		doc.SetTextColor(20, 60, 160)
		doc.CellFormat(0, 5, publicURL, "", 1, "L", false, 0, publicURL)
		doc.SetTextColor(0, 0, 0)
	}

	doc.Ln(4)
	doc.SetFont(font, "", 8)
	doc.Cell(0, 4, "Gerado em "+g.now().Format(time.RFC3339))

	if err := doc.Error(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return doc.Output(w)
}

// brl formats an amount as Brazilian currency, e.g. R$ 1.234,50.
func brl(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign, v = "-", v.Neg()
	}
	s := v.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	var grouped []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, c)
	}
	return sign + "R$ " + string(grouped) + "," + frac
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
