package backend

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
)

type NuevaAsignacion struct {
	EstudianteID string `json:"estudiante_id"`
	GrupoID      int    `json:"grupo_id"`
}

// Asignaciones lists student-to-group assignments; wrapped as
// { asignaciones: [...] } or bare.
func (c *Client) Asignaciones(ctx context.Context, pagina, limite int) ([]academia.Asignacion, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/asignaciones", pageQuery(pagina, limite), "", &raw); err != nil {
		return nil, err
	}
	var wrap struct {
		Asignaciones []academia.Asignacion `json:"asignaciones"`
	}
	if err := json.Unmarshal(raw, &wrap); err == nil && wrap.Asignaciones != nil {
		return wrap.Asignaciones, nil
	}
	var out []academia.Asignacion
	err := json.Unmarshal(raw, &out)
	return out, errors.Wrap(err, "decoding asignaciones")
}

func (c *Client) AsignarEstudiante(ctx context.Context, alta NuevaAsignacion) error {
	return c.post(ctx, "/api/asignaciones", "", alta, nil)
}

// RetirarEstudiante removes a student from a group. The backend identifies
// the assignment by the pair, not by an id of its own.
func (c *Client) RetirarEstudiante(ctx context.Context, estudianteID string, grupoID int) error {
	q := make(url.Values)
	q.Set("estudiante_id", estudianteID)
	q.Set("grupo_id", strconv.Itoa(grupoID))
	return c.delete(ctx, "/api/asignaciones", q, "")
}
