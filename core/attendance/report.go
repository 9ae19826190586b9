package attendance

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
)

// utf8BOM makes Excel pick up accented characters in the export.
const utf8BOM = "\ufeff"

var reporteHeader = []string{
	"Fecha", "Clase", "Grupo", "Profesor", "Salon",
	"Estudiante", "Documento", "Estado", "Horario", "Dia",
}

// WriteReporteCSV renders the flattened attendance report as CSV, dates in
// dd/mm/yyyy as the institution expects.
func WriteReporteCSV(w io.Writer, filas []academia.ReporteFila) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return errors.Wrap(err, "writing BOM")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(reporteHeader); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, fila := range filas {
		record := []string{
			formatFecha(fila.Fecha),
			fila.Clase,
			fila.Grupo,
			fila.Profesor,
			fila.Salon,
			fila.Estudiante,
			fila.Documento,
			fila.Estado,
			fila.HoraClase,
			fila.DiaSemana,
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "writing row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing report")
}

// formatFecha renders a backend date (RFC3339 or plain yyyy-mm-dd) as
// dd/mm/yyyy, falling back to the raw value.
func formatFecha(fecha string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, fecha); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return fecha
}

// ReporteFilename names a per-class export: reporte_<clase>_<fecha>.csv with
// whitespace collapsed to underscores.
func ReporteFilename(clase string, fecha time.Time) string {
	return "reporte_" + strings.Join(strings.Fields(clase), "_") + "_" + fecha.Format("2006-01-02") + ".csv"
}

// ReporteGeneralFilename names the all-classes export.
func ReporteGeneralFilename(fecha time.Time) string {
	return "reporte_asistencias_general_" + fecha.Format("2006-01-02") + ".csv"
}
