package reports

import (
	"bytes"
	"fmt"
	"time"

	"obrabot/lib/models"

	"github.com/jung-kurt/gofpdf"
)

// tablePDF renders a landscape tabular report with a title header, a
// generation timestamp, striped rows and page numbers in the footer.
func tablePDF(title string, headers []string, widths []float64, rows [][]string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetAuthor("Bot de Gestión de Obra", true)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		generated := time.Now().Format("02/01/2006 15:04:05")
		pdf.CellFormat(0, 10, fmt.Sprintf("Generado el: %s", generated), "", 1, "R", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Página %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 220, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	fill := false
	for _, row := range rows {
		pdf.SetFillColor(240, 240, 240)
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// AvancesPDF builds the avance report as a landscape PDF table.
func AvancesPDF(avances []models.Avance) ([]byte, error) {
	headers := []string{"ID", "Fecha", "Ubicación", "Trabajo", "Estado", "Encargado"}
	widths := []float64{15, 25, 90, 80, 30, 37}

	var rows [][]string
	for _, a := range avances {
		rows = append(rows, []string{
			fmt.Sprintf("%d", a.ID),
			a.FechaTrabajo.Format("02/01/2006"),
			a.UbicacionCompleta,
			a.Trabajo,
			a.Estado,
			a.EncargadoName,
		})
	}
	return tablePDF("Informe de Avances", headers, widths, rows)
}

// PersonalPDF builds the daily headcount report as a landscape PDF table.
func PersonalPDF(registros []models.RegistroPersonal) ([]byte, error) {
	headers := []string{"Fecha", "En Obra", "Faltas", "Bajas", "Registrado Por"}
	widths := []float64{50, 40, 40, 40, 107}

	var rows [][]string
	for _, r := range registros {
		rows = append(rows, []string{
			r.Fecha.Format("02/01/2006"),
			fmt.Sprintf("%d", r.EnObra),
			fmt.Sprintf("%d", r.Faltas),
			fmt.Sprintf("%d", r.Bajas),
			r.RegistradoPor,
		})
	}
	return tablePDF("Informe de Personal", headers, widths, rows)
}

// PDFFileName builds the attachment name for a report kind.
func PDFFileName(kind string, at time.Time) string {
	return fmt.Sprintf("informe_%s_%s.pdf", kind, at.Format("20060102_1504"))
}
