package backend

import (
	"context"
	"fmt"

	"github.com/classlog/console/core/academia"
)

// NuevoUsuario creates or updates a user account.
type NuevoUsuario struct {
	Nombre     string `json:"nombre"`
	Apellido   string `json:"apellido"`
	Email      string `json:"email"`
	Contrasena string `json:"contraseña,omitempty"`
	RolID      int    `json:"rol_id"`
}

func (c *Client) Usuarios(ctx context.Context) ([]academia.Usuario, error) {
	var out []academia.Usuario
	err := c.get(ctx, "/api/usuarios", nil, "", &out)
	return out, err
}

func (c *Client) CrearUsuario(ctx context.Context, alta NuevoUsuario) error {
	return c.post(ctx, "/api/usuarios", "", alta, nil)
}

func (c *Client) EditarUsuario(ctx context.Context, id int, cambio NuevoUsuario) error {
	return c.put(ctx, fmt.Sprintf("/api/usuarios/%d", id), "", cambio, nil)
}

func (c *Client) EliminarUsuario(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/api/usuarios/%d", id), nil, "")
}
