package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/classlog/console/core/academia"
)

// VerificarAsistencia asks whether attendance already exists for the class on
// the given day ("2006-01-02"). When it does, the answer carries the recorded
// per-student states so the console can show them read-only.
func (c *Client) VerificarAsistencia(ctx context.Context, token string, claseID int, fecha string) (academia.VerificacionAsistencia, error) {
	q := make(url.Values)
	q.Set("clase_id", strconv.Itoa(claseID))
	q.Set("fecha", fecha)
	var out academia.VerificacionAsistencia
	err := c.get(ctx, "/api/asistencias/verificar", q, token, &out)
	return out, err
}

// CrearAsistencia records one student's attendance. The backend upserts on
// (clase, estudiante, fecha), so resubmitting an edited day is the same call.
func (c *Client) CrearAsistencia(ctx context.Context, token string, alta academia.NuevaAsistencia) error {
	return c.post(ctx, "/api/asistencias", token, alta, nil)
}

// AsistenciasPorClase lists the recorded attendance history of one class.
func (c *Client) AsistenciasPorClase(ctx context.Context, token string, claseID int) ([]academia.Asistencia, error) {
	var out []academia.Asistencia
	err := c.get(ctx, fmt.Sprintf("/api/asistencias/clase/%d", claseID), nil, token, &out)
	return out, err
}

func (c *Client) AsistenciaDetalle(ctx context.Context, token string, id int) (academia.Asistencia, error) {
	var out academia.Asistencia
	err := c.get(ctx, fmt.Sprintf("/api/asistencias/%d", id), nil, token, &out)
	return out, err
}

// ReporteAsistencias fetches the flattened report rows, optionally narrowed
// by class or group.
func (c *Client) ReporteAsistencias(ctx context.Context, token string, filtros academia.FiltrosReporte) ([]academia.ReporteFila, error) {
	q := make(url.Values)
	if filtros.ClaseID > 0 {
		q.Set("clase_id", strconv.Itoa(filtros.ClaseID))
	}
	if filtros.GrupoID > 0 {
		q.Set("grupo_id", strconv.Itoa(filtros.GrupoID))
	}
	var out []academia.ReporteFila
	err := c.get(ctx, "/api/asistencias/reporte", q, token, &out)
	return out, err
}
