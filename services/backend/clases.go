package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
)

type NuevaClase struct {
	Nombre        string `json:"nombre"`
	GrupoID       int    `json:"grupo_id"`
	ProfesorID    int    `json:"profesor_id"`
	SalonID       int    `json:"salon_id"`
	DiaSemana     string `json:"dia_semana"`
	HoraInicio    string `json:"hora_inicio"`
	HoraFin       string `json:"hora_fin"`
	VentanaInicio string `json:"ventana_inicio,omitempty"`
	VentanaFin    string `json:"ventana_fin,omitempty"`
}

// Clases lists one page of class definitions; wrapped as
// { clases: [...], totalPaginas } or bare.
func (c *Client) Clases(ctx context.Context, pagina, limite int) ([]academia.Clase, int, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/clases", pageQuery(pagina, limite), "", &raw); err != nil {
		return nil, 0, err
	}
	var wrap struct {
		Clases       []academia.Clase `json:"clases"`
		TotalPaginas int              `json:"totalPaginas"`
	}
	if err := json.Unmarshal(raw, &wrap); err == nil && wrap.Clases != nil {
		return wrap.Clases, wrap.TotalPaginas, nil
	}
	var out []academia.Clase
	err := json.Unmarshal(raw, &out)
	return out, 0, errors.Wrap(err, "decoding clases")
}

func (c *Client) CrearClase(ctx context.Context, alta NuevaClase) error {
	return c.post(ctx, "/api/clases", "", alta, nil)
}

func (c *Client) EditarClase(ctx context.Context, id int, cambio NuevaClase) error {
	return c.put(ctx, fmt.Sprintf("/api/clases/%d", id), "", cambio, nil)
}

func (c *Client) EliminarClase(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/clases/%d", id), nil, "")
}

// ClasesParaAsistencia lists the classes the caller may take attendance for
// today. The backend scopes the list to the token's user and flags each class
// with puede_tomar_asistencia for the current time window.
func (c *Client) ClasesParaAsistencia(ctx context.Context, token string) ([]academia.Clase, error) {
	var out []academia.Clase
	err := c.get(ctx, "/api/clases/para-asistencia", nil, token, &out)
	return out, err
}
