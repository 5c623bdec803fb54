package reports

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"obrabot/lib/models"
)

// writeCSV renders rows with the export conventions every report shares:
// semicolon delimiter, CRLF line endings, UTF-8, and every field quoted
// regardless of content. Consumers of the existing exports depend on the
// always-quoted shape, so minimal quoting is not an option here.
func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writeRow := func(fields []string) {
		for i, field := range fields {
			if i > 0 {
				buf.WriteByte(';')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
			buf.WriteByte('"')
		}
		buf.WriteString("\r\n")
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	return buf.Bytes(), nil
}

// AvancesCSV builds the avance report: one row per avance-incidencia pair,
// with N/A placeholders for avances without incidents.
func AvancesCSV(avances []models.Avance, incidencias map[int64][]models.Incidencia) ([]byte, error) {
	headers := []string{
		"ID Avance", "Fecha Trabajo", "Ubicacion", "Trabajo", "Estado", "Encargado",
		"ID Incidencia", "Fecha Incidencia", "Estado Incidencia", "Descripcion Incidencia",
	}

	var rows [][]string
	for _, a := range avances {
		base := []string{
			fmt.Sprintf("%d", a.ID),
			a.FechaTrabajo.Format("2006-01-02"),
			a.UbicacionCompleta,
			a.Trabajo,
			a.Estado,
			a.EncargadoName,
		}
		incs := incidencias[a.ID]
		if len(incs) == 0 {
			rows = append(rows, append(base, "N/A", "N/A", "N/A", "N/A"))
			continue
		}
		for _, inc := range incs {
			rows = append(rows, append(base,
				fmt.Sprintf("%d", inc.ID),
				inc.FechaReporte.Format("2006-01-02 15:04"),
				inc.Estado,
				inc.Descripcion,
			))
		}
	}
	return writeCSV(headers, rows)
}

// PersonalCSV builds the daily headcount report.
func PersonalCSV(registros []models.RegistroPersonal) ([]byte, error) {
	headers := []string{"Fecha", "En Obra", "Faltas", "Bajas", "Registrado Por"}

	var rows [][]string
	for _, r := range registros {
		rows = append(rows, []string{
			r.Fecha.Format("2006-01-02"),
			fmt.Sprintf("%d", r.EnObra),
			fmt.Sprintf("%d", r.Faltas),
			fmt.Sprintf("%d", r.Bajas),
			r.RegistradoPor,
		})
	}
	return writeCSV(headers, rows)
}

// CSVFileName builds the attachment name for a report kind.
func CSVFileName(kind string, at time.Time) string {
	return fmt.Sprintf("informe_%s_%s.csv", kind, at.Format("20060102_1504"))
}
