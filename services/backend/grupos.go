package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
)

type NuevoGrupo struct {
	Nombre     string `json:"nombre"`
	ProgramaID int    `json:"programa_id"`
}

// Grupos lists one page of groups; wrapped as { grupos: [...], totalPaginas }
// or bare.
func (c *Client) Grupos(ctx context.Context, pagina, limite int) ([]academia.Grupo, int, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/grupos", pageQuery(pagina, limite), "", &raw); err != nil {
		return nil, 0, err
	}
	return decodeGrupos(raw)
}

func (c *Client) BuscarGrupos(ctx context.Context, nombre string, pagina, limite int) ([]academia.Grupo, int, error) {
	q := pageQuery(pagina, limite)
	q.Set("nombre", nombre)
	var raw json.RawMessage
	if err := c.get(ctx, "/api/grupos/buscar", q, "", &raw); err != nil {
		return nil, 0, err
	}
	return decodeGrupos(raw)
}

func decodeGrupos(raw json.RawMessage) ([]academia.Grupo, int, error) {
	var wrap struct {
		Grupos       []academia.Grupo `json:"grupos"`
		TotalPaginas int              `json:"totalPaginas"`
	}
	if err := json.Unmarshal(raw, &wrap); err == nil && wrap.Grupos != nil {
		return wrap.Grupos, wrap.TotalPaginas, nil
	}
	var out []academia.Grupo
	err := json.Unmarshal(raw, &out)
	return out, 0, errors.Wrap(err, "decoding grupos")
}

func (c *Client) CrearGrupo(ctx context.Context, alta NuevoGrupo) error {
	return c.post(ctx, "/api/grupos", "", alta, nil)
}

func (c *Client) EditarGrupo(ctx context.Context, id int, cambio NuevoGrupo) error {
	return c.put(ctx, fmt.Sprintf("/api/grupos/%d", id), "", cambio, nil)
}

func (c *Client) EliminarGrupo(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/grupos/%d", id), nil, "")
}

// EstudiantesDeGrupo lists the roster of one group, in the order attendance
// must be recorded. The backend wraps it as { estudiantes: [...] } but some
// deployments return the list bare.
func (c *Client) EstudiantesDeGrupo(ctx context.Context, token string, grupoID int) ([]academia.Estudiante, error) {
	var raw json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("/api/grupos/%d/estudiantes", grupoID), nil, token, &raw); err != nil {
		return nil, err
	}
	var wrap struct {
		Estudiantes []academia.Estudiante `json:"estudiantes"`
	}
	if err := json.Unmarshal(raw, &wrap); err == nil && wrap.Estudiantes != nil {
		return wrap.Estudiantes, nil
	}
	var out []academia.Estudiante
	err := json.Unmarshal(raw, &out)
	return out, errors.Wrapf(err, "decoding estudiantes of grupo %d", grupoID)
}
