package infra

// pdf.go — Payment receipt generation using go-pdf/fpdf.
// An A5 receipt with the platform header, payment reference, payer, concept,
// amount, and gateway verdict. The output file is saved to
// storagePath/recibo_{referencia}.pdf and attached to the receipt email.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GenturixHub/Genturix-sub003/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReciboPDF writes the receipt for an approved Pago and returns the
// absolute path of the generated file.
func GenerateReciboPDF(pago *model.Pago, payerName, condominioName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", pago.Referencia)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "GENTURIX", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Recibo de Pago", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(4)

	// ── Detail rows ──────────────────────────────────────────────────────────
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW*0.35, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW*0.65, 6, value, "", 1, "L", false, 0, "")
	}

	row("Referencia", pago.Referencia)
	row("Fecha", pago.UpdatedAt.Format("02/01/2006 15:04"))
	row("Condominio", condominioName)
	row("Pagador", payerName)
	row("Concepto", pago.Concepto)
	pdf.Ln(4)

	// ── Amount ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 8, fmt.Sprintf("TOTAL  $ %s", pago.Monto.StringFixed(2)), "T", 1, "R", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Documento generado automaticamente. No requiere firma.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write receipt: %w", err)
	}
	return filePath, nil
}
