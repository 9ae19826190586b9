package echoconsole

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/services/backend"
)

type usuariosWeb struct {
	deps ServerDeps
}

func registerUsuariosWeb(g *echo.Group, deps ServerDeps) {
	web := usuariosWeb{deps: deps}

	ug := g.Group("/usuarios", requirePermission("acceso_usuarios"))
	ug.GET("", web.list)
	ug.POST("", web.create)
	ug.POST("/:id/editar", web.update)
	ug.POST("/:id/eliminar", web.destroy)
}

type usuarioForm struct {
	Nombre     string `form:"nombre" validate:"required"`
	Apellido   string `form:"apellido" validate:"required"`
	Email      string `form:"email" validate:"required,email"`
	Contrasena string `form:"contraseña"`
	RolID      int    `form:"rol_id" validate:"required"`
}

func (f *usuarioForm) sanitize() {
	f.Nombre = core.CleanString(f.Nombre)
	f.Apellido = core.CleanString(f.Apellido)
	f.Email = core.CleanString(f.Email, true)
}

func (f *usuarioForm) body() backend.NuevoUsuario {
	return backend.NuevoUsuario{
		Nombre:     f.Nombre,
		Apellido:   f.Apellido,
		Email:      f.Email,
		Contrasena: f.Contrasena,
		RolID:      f.RolID,
	}
}

type usuariosPage struct {
	Usuarios []academia.Usuario
	Roles    []academia.Rol
	Editar   *academia.Usuario
}

func (web *usuariosWeb) list(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	usuarios, err := web.deps.Backend.Usuarios(reqCtx)
	if err != nil {
		return err
	}
	// the role picker in the form needs the catalog
	roles, _, err := web.deps.Backend.Roles(reqCtx, 1, catalogoLimite)
	if err != nil {
		return err
	}

	data := usuariosPage{Usuarios: usuarios, Roles: roles}
	if id := queryInt(ctx, "editar"); id > 0 {
		for i := range usuarios {
			if usuarios[i].ID == id {
				data.Editar = &usuarios[i]
				break
			}
		}
	}
	return ctx.Render(http.StatusOK, "usuarios", page(ctx, "Usuarios", "/usuarios", data))
}

func (web *usuariosWeb) create(ctx echo.Context) error {
	form := new(usuarioForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/usuarios", err, web.deps.Translator)
	}

	if err := web.deps.Backend.CrearUsuario(ctx.Request().Context(), form.body()); err != nil {
		return redirectError(ctx, "/usuarios", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/usuarios", "Usuario creado")
}

func (web *usuariosWeb) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	form := new(usuarioForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/usuarios", err, web.deps.Translator)
	}

	if err := web.deps.Backend.EditarUsuario(ctx.Request().Context(), id, form.body()); err != nil {
		return redirectError(ctx, "/usuarios", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/usuarios", "Usuario actualizado")
}

func (web *usuariosWeb) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := web.deps.Backend.EliminarUsuario(ctx.Request().Context(), id); err != nil {
		return redirectError(ctx, "/usuarios", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/usuarios", "Usuario eliminado")
}
