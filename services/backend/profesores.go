package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
)

type NuevoProfesor struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
}

// Profesores lists one page of teachers; wrapped as
// { profesores: [...], totalPaginas } or bare.
func (c *Client) Profesores(ctx context.Context, pagina, limite int) ([]academia.Profesor, int, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/profesores", pageQuery(pagina, limite), "", &raw); err != nil {
		return nil, 0, err
	}
	return decodeProfesores(raw)
}

func (c *Client) BuscarProfesores(ctx context.Context, nombre string, pagina, limite int) ([]academia.Profesor, int, error) {
	q := pageQuery(pagina, limite)
	q.Set("nombre", nombre)
	var raw json.RawMessage
	if err := c.get(ctx, "/api/profesores/buscar", q, "", &raw); err != nil {
		return nil, 0, err
	}
	return decodeProfesores(raw)
}

func decodeProfesores(raw json.RawMessage) ([]academia.Profesor, int, error) {
	var wrap struct {
		Profesores   []academia.Profesor `json:"profesores"`
		TotalPaginas int                 `json:"totalPaginas"`
	}
	if err := json.Unmarshal(raw, &wrap); err == nil && wrap.Profesores != nil {
		return wrap.Profesores, wrap.TotalPaginas, nil
	}
	var out []academia.Profesor
	err := json.Unmarshal(raw, &out)
	return out, 0, errors.Wrap(err, "decoding profesores")
}

func (c *Client) CrearProfesor(ctx context.Context, alta NuevoProfesor) error {
	return c.post(ctx, "/api/profesores", "", alta, nil)
}

func (c *Client) EditarProfesor(ctx context.Context, id int, cambio NuevoProfesor) error {
	return c.put(ctx, fmt.Sprintf("/api/profesores/%d", id), "", cambio, nil)
}

func (c *Client) EliminarProfesor(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/profesores/%d", id), nil, "")
}
