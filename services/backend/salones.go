package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
)

type NuevoSalon struct {
	Nombre    string `json:"nombre"`
	Capacidad int    `json:"capacidad"`
	Ubicacion string `json:"ubicacion,omitempty"`
}

// Salones lists one page of rooms; wrapped as { salones: [...], totalPaginas }
// or bare.
func (c *Client) Salones(ctx context.Context, pagina, limite int) ([]academia.Salon, int, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/salones", pageQuery(pagina, limite), "", &raw); err != nil {
		return nil, 0, err
	}
	var wrap struct {
		Salones      []academia.Salon `json:"salones"`
		TotalPaginas int              `json:"totalPaginas"`
	}
	if err := json.Unmarshal(raw, &wrap); err == nil && wrap.Salones != nil {
		return wrap.Salones, wrap.TotalPaginas, nil
	}
	var out []academia.Salon
	err := json.Unmarshal(raw, &out)
	return out, 0, errors.Wrap(err, "decoding salones")
}

func (c *Client) CrearSalon(ctx context.Context, alta NuevoSalon) error {
	return c.post(ctx, "/api/salones", "", alta, nil)
}

func (c *Client) EditarSalon(ctx context.Context, id int, cambio NuevoSalon) error {
	return c.put(ctx, fmt.Sprintf("/api/salones/%d", id), "", cambio, nil)
}

func (c *Client) EliminarSalon(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/salones/%d", id), nil, "")
}

func (c *Client) CambiarEstadoSalon(ctx context.Context, id int, estado bool) error {
	body := map[string]bool{"estado": estado}
	return c.put(ctx, fmt.Sprintf("/api/salones/%d/estado", id), "", body, nil)
}
