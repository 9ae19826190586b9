package backend

import (
	"context"
	"fmt"

	"github.com/classlog/console/core/academia"
)

type (
	LoginRequest struct {
		Email      string `json:"email"`
		Contrasena string `json:"contraseña"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, contrasena string) (LoginResponse, error) {
	var out LoginResponse
	err := c.post(ctx, "/api/usuarios/login", "", LoginRequest{Email: email, Contrasena: contrasena}, &out)
	return out, err
}

// UsuarioDetalle loads the authenticated user's detail, role and permissions
// included.
func (c *Client) UsuarioDetalle(ctx context.Context, id int, token string) (academia.Usuario, error) {
	var out academia.Usuario
	err := c.get(ctx, fmt.Sprintf("/api/usuarios/%d", id), nil, token, &out)
	return out, err
}
