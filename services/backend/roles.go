package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
)

type (
	NuevoRol struct {
		Nombre     string `json:"nombre"`
		PermisoIDs []int  `json:"permisos_ids"`
	}

	CambioRol struct {
		Nombre   string `json:"nombre"`
		Permisos []int  `json:"permisos"`
	}
)

// Roles lists one page of roles; wrapped as { roles: [...], totalPaginas }
// or bare.
func (c *Client) Roles(ctx context.Context, pagina, limite int) ([]academia.Rol, int, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/rol", pageQuery(pagina, limite), "", &raw); err != nil {
		return nil, 0, err
	}
	return decodeRoles(raw)
}

func (c *Client) BuscarRoles(ctx context.Context, nombre string, pagina, limite int) ([]academia.Rol, int, error) {
	q := pageQuery(pagina, limite)
	q.Set("nombre", nombre)
	var raw json.RawMessage
	if err := c.get(ctx, "/api/rol/buscar", q, "", &raw); err != nil {
		return nil, 0, err
	}
	return decodeRoles(raw)
}

func decodeRoles(raw json.RawMessage) ([]academia.Rol, int, error) {
	var wrap struct {
		Roles        []academia.Rol `json:"roles"`
		TotalPaginas int            `json:"totalPaginas"`
	}
	if err := json.Unmarshal(raw, &wrap); err == nil && wrap.Roles != nil {
		return wrap.Roles, wrap.TotalPaginas, nil
	}
	var out []academia.Rol
	err := json.Unmarshal(raw, &out)
	return out, 0, errors.Wrap(err, "decoding roles")
}

func (c *Client) RolDetalle(ctx context.Context, id int) (academia.Rol, error) {
	var out academia.Rol
	err := c.get(ctx, fmt.Sprintf("/api/rol/%d", id), nil, "", &out)
	return out, err
}

func (c *Client) CrearRol(ctx context.Context, alta NuevoRol) error {
	return c.post(ctx, "/api/rol", "", alta, nil)
}

func (c *Client) EditarRol(ctx context.Context, id int, cambio CambioRol) error {
	return c.put(ctx, fmt.Sprintf("/api/rol/%d", id), "", cambio, nil)
}

func (c *Client) EliminarRol(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/rol/%d", id), nil, "")
}

func (c *Client) CambiarEstadoRol(ctx context.Context, id int, estado bool) error {
	body := map[string]bool{"estado": estado}
	return c.put(ctx, fmt.Sprintf("/api/rol/%d/estado", id), "", body, nil)
}

// Permisos lists the capability catalog. The backend wraps the list as
// { permisos: [...] } but older versions returned it bare.
func (c *Client) Permisos(ctx context.Context) ([]academia.Permiso, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/permisos", nil, "", &raw); err != nil {
		return nil, err
	}
	var wrap struct {
		Permisos []academia.Permiso `json:"permisos"`
	}
	if err := json.Unmarshal(raw, &wrap); err == nil && wrap.Permisos != nil {
		return wrap.Permisos, nil
	}
	var out []academia.Permiso
	err := json.Unmarshal(raw, &out)
	return out, errors.Wrap(err, "decoding permisos")
}
