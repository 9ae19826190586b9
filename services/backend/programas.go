package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
)

type NuevoPrograma struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

// Programas lists one page of the catalog; wrapped as
// { programas: [...], totalPaginas } or bare.
func (c *Client) Programas(ctx context.Context, pagina, limite int) ([]academia.Programa, int, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/programas", pageQuery(pagina, limite), "", &raw); err != nil {
		return nil, 0, err
	}
	return decodeProgramas(raw)
}

func (c *Client) BuscarProgramas(ctx context.Context, nombre string, pagina, limite int) ([]academia.Programa, int, error) {
	q := pageQuery(pagina, limite)
	q.Set("nombre", nombre)
	var raw json.RawMessage
	if err := c.get(ctx, "/api/programas/buscar", q, "", &raw); err != nil {
		return nil, 0, err
	}
	return decodeProgramas(raw)
}

func decodeProgramas(raw json.RawMessage) ([]academia.Programa, int, error) {
	var wrap struct {
		Programas    []academia.Programa `json:"programas"`
		TotalPaginas int                 `json:"totalPaginas"`
	}
	if err := json.Unmarshal(raw, &wrap); err == nil && wrap.Programas != nil {
		return wrap.Programas, wrap.TotalPaginas, nil
	}
	var out []academia.Programa
	err := json.Unmarshal(raw, &out)
	return out, 0, errors.Wrap(err, "decoding programas")
}

func (c *Client) CrearPrograma(ctx context.Context, alta NuevoPrograma) error {
	return c.post(ctx, "/api/programas", "", alta, nil)
}

func (c *Client) EditarPrograma(ctx context.Context, id int, cambio NuevoPrograma) error {
	return c.put(ctx, fmt.Sprintf("/api/programas/%d", id), "", cambio, nil)
}

func (c *Client) EliminarPrograma(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/programas/%d", id), nil, "")
}
