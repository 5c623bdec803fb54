package reports

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obrabot/lib/models"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func Test_AvancesCSV_PairsIncidencias(t *testing.T) {
	//Arrange
	fecha := time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)
	avances := []models.Avance{
		{ID: 1, FechaTrabajo: fecha, UbicacionCompleta: "Torre A / Planta 2", Trabajo: "Alicatado", Estado: "Finalizado", EncargadoName: "Luis"},
		{ID: 2, FechaTrabajo: fecha, UbicacionCompleta: "Torre B / Planta 1", Trabajo: "Tabiques", Estado: "En Curso", EncargadoName: "Marta"},
	}
	incidencias := map[int64][]models.Incidencia{
		2: {
			{ID: 10, FechaReporte: fecha, Estado: "Pendiente", Descripcion: "Falta material"},
			{ID: 11, FechaReporte: fecha, Estado: "Resuelta", Descripcion: "Humedad en muro"},
		},
	}

	//Act
	data, err := AvancesCSV(avances, incidencias)

	//Assert: header + one N/A row + one row per incidencia.
	require.NoError(t, err)
	rows := parseCSV(t, data)
	require.Len(t, rows, 4)
	assert.Equal(t, "ID Avance", rows[0][0])
	assert.Equal(t, []string{"1", "2026-02-03", "Torre A / Planta 2", "Alicatado", "Finalizado", "Luis", "N/A", "N/A", "N/A", "N/A"}, rows[1])
	assert.Equal(t, "10", rows[2][6])
	assert.Equal(t, "Falta material", rows[2][9])
	assert.Equal(t, "11", rows[3][6])
}

func Test_PersonalCSV(t *testing.T) {
	//Arrange
	registros := []models.RegistroPersonal{
		{Fecha: time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), EnObra: 42, Faltas: 3, Bajas: 1, RegistradoPor: "Luis"},
	}

	//Act
	data, err := PersonalCSV(registros)

	//Assert
	require.NoError(t, err)
	rows := parseCSV(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Fecha", "En Obra", "Faltas", "Bajas", "Registrado Por"}, rows[0])
	assert.Equal(t, []string{"2026-02-03", "42", "3", "1", "Luis"}, rows[1])
}

func Test_PersonalCSV_QuotesEveryField(t *testing.T) {
	//Arrange
	registros := []models.RegistroPersonal{
		{Fecha: time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC), EnObra: 42, Faltas: 3, Bajas: 1, RegistradoPor: "Luis"},
	}

	//Act
	data, err := PersonalCSV(registros)

	//Assert: every field quoted even when quoting is not strictly needed,
	// with CRLF line endings.
	require.NoError(t, err)
	lines := strings.Split(string(data), "\r\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, `"Fecha";"En Obra";"Faltas";"Bajas";"Registrado Por"`, lines[0])
	assert.Equal(t, `"2026-02-03";"42";"3";"1";"Luis"`, lines[1])
}

func Test_AvancesCSV_DoublesEmbeddedQuotes(t *testing.T) {
	//Arrange
	fecha := time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)
	avances := []models.Avance{
		{ID: 1, FechaTrabajo: fecha, UbicacionCompleta: "Torre A", Trabajo: `Sellado "fino"`, Estado: "Finalizado", EncargadoName: "Luis"},
	}

	//Act
	data, err := AvancesCSV(avances, nil)

	//Assert
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Sellado ""fino"""`)

	rows := parseCSV(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, `Sellado "fino"`, rows[1][3])
}

func Test_CSVFileName(t *testing.T) {
	//Act
	name := CSVFileName("avances", time.Date(2026, time.February, 3, 9, 30, 0, 0, time.UTC))

	//Assert
	assert.Equal(t, "informe_avances_20260203_0930.csv", name)
}
