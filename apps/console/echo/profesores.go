package echoconsole

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/services/backend"
)

type profesoresWeb struct {
	deps ServerDeps
}

func registerProfesoresWeb(g *echo.Group, deps ServerDeps) {
	web := profesoresWeb{deps: deps}

	pg := g.Group("/profesores", requirePermission("acceso_profesores"))
	pg.GET("", web.list)
	pg.POST("", web.create)
	pg.POST("/:id/editar", web.update)
	pg.POST("/:id/eliminar", web.destroy)
}

type profesorForm struct {
	Nombre   string `form:"nombre" validate:"required"`
	Apellido string `form:"apellido" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
}

func (f *profesorForm) sanitize() {
	f.Nombre = core.CleanString(f.Nombre)
	f.Apellido = core.CleanString(f.Apellido)
	f.Email = core.CleanString(f.Email, true)
}

func (f *profesorForm) body() backend.NuevoProfesor {
	return backend.NuevoProfesor{Nombre: f.Nombre, Apellido: f.Apellido, Email: f.Email}
}

type profesoresPage struct {
	Profesores []academia.Profesor
	Editar     *academia.Profesor
	Busqueda   string
	Pagina     paginacion
}

func (web *profesoresWeb) list(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	busqueda := ctx.QueryParam("buscar")
	pagina := paginaActual(ctx)
	var profesores []academia.Profesor
	var totalPaginas int
	var err error
	if busqueda != "" {
		profesores, totalPaginas, err = web.deps.Backend.BuscarProfesores(reqCtx, busqueda, pagina, listaPorPagina)
	} else {
		profesores, totalPaginas, err = web.deps.Backend.Profesores(reqCtx, pagina, listaPorPagina)
	}
	if err != nil {
		return err
	}

	data := profesoresPage{
		Profesores: profesores,
		Busqueda:   busqueda,
		Pagina:     newPaginacion(pagina, totalPaginas, "/profesores", busqueda),
	}
	if id := queryInt(ctx, "editar"); id > 0 {
		for i := range profesores {
			if profesores[i].ID == id {
				data.Editar = &profesores[i]
				break
			}
		}
	}
	return ctx.Render(http.StatusOK, "profesores", page(ctx, "Profesores", "/profesores", data))
}

func (web *profesoresWeb) create(ctx echo.Context) error {
	form := new(profesorForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/profesores", err, web.deps.Translator)
	}

	if err := web.deps.Backend.CrearProfesor(ctx.Request().Context(), form.body()); err != nil {
		return redirectError(ctx, "/profesores", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/profesores", "Profesor creado")
}

func (web *profesoresWeb) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	form := new(profesorForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/profesores", err, web.deps.Translator)
	}

	if err := web.deps.Backend.EditarProfesor(ctx.Request().Context(), id, form.body()); err != nil {
		return redirectError(ctx, "/profesores", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/profesores", "Profesor actualizado")
}

func (web *profesoresWeb) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := web.deps.Backend.EliminarProfesor(ctx.Request().Context(), id); err != nil {
		return redirectError(ctx, "/profesores", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/profesores", "Profesor eliminado")
}
