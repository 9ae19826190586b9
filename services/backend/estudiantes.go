package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
)

type NuevoEstudiante struct {
	Documento  string `json:"documento"`
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	ProgramaID int    `json:"programa_id"`
}

// Estudiantes lists one page of students; wrapped as
// { estudiantes: [...], totalPaginas } or bare.
func (c *Client) Estudiantes(ctx context.Context, pagina, limite int) ([]academia.Estudiante, int, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/estudiantes", pageQuery(pagina, limite), "", &raw); err != nil {
		return nil, 0, err
	}
	return decodeEstudiantes(raw)
}

func (c *Client) BuscarEstudiantes(ctx context.Context, nombre string, pagina, limite int) ([]academia.Estudiante, int, error) {
	q := pageQuery(pagina, limite)
	q.Set("nombre", nombre)
	var raw json.RawMessage
	if err := c.get(ctx, "/api/estudiantes/buscar", q, "", &raw); err != nil {
		return nil, 0, err
	}
	return decodeEstudiantes(raw)
}

func decodeEstudiantes(raw json.RawMessage) ([]academia.Estudiante, int, error) {
	var wrap struct {
		Estudiantes  []academia.Estudiante `json:"estudiantes"`
		TotalPaginas int                   `json:"totalPaginas"`
	}
	if err := json.Unmarshal(raw, &wrap); err == nil && wrap.Estudiantes != nil {
		return wrap.Estudiantes, wrap.TotalPaginas, nil
	}
	var out []academia.Estudiante
	err := json.Unmarshal(raw, &out)
	return out, 0, errors.Wrap(err, "decoding estudiantes")
}

func (c *Client) CrearEstudiante(ctx context.Context, alta NuevoEstudiante) error {
	return c.post(ctx, "/api/estudiantes", "", alta, nil)
}

func (c *Client) EditarEstudiante(ctx context.Context, documento string, cambio NuevoEstudiante) error {
	return c.put(ctx, fmt.Sprintf("/api/estudiantes/%s", documento), "", cambio, nil)
}

func (c *Client) EliminarEstudiante(ctx context.Context, documento string) error {
	return c.delete(ctx, fmt.Sprintf("/api/estudiantes/%s", documento), nil, "")
}
