package echoconsole

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/services/backend"
)

type programasWeb struct {
	deps ServerDeps
}

func registerProgramasWeb(g *echo.Group, deps ServerDeps) {
	web := programasWeb{deps: deps}

	pg := g.Group("/programas", requirePermission("acceso_programas"))
	pg.GET("", web.list)
	pg.POST("", web.create)
	pg.POST("/:id/editar", web.update)
	pg.POST("/:id/eliminar", web.destroy)
}

type programaForm struct {
	Nombre      string `form:"nombre" validate:"required"`
	Descripcion string `form:"descripcion"`
}

func (f *programaForm) sanitize() {
	f.Nombre = core.CleanString(f.Nombre)
	f.Descripcion = core.CleanString(f.Descripcion)
}

type programasPage struct {
	Programas []academia.Programa
	Editar    *academia.Programa
	Busqueda  string
	Pagina    paginacion
}

func (web *programasWeb) list(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	busqueda := ctx.QueryParam("buscar")
	pagina := paginaActual(ctx)
	var programas []academia.Programa
	var totalPaginas int
	var err error
	if busqueda != "" {
		programas, totalPaginas, err = web.deps.Backend.BuscarProgramas(reqCtx, busqueda, pagina, listaPorPagina)
	} else {
		programas, totalPaginas, err = web.deps.Backend.Programas(reqCtx, pagina, listaPorPagina)
	}
	if err != nil {
		return err
	}

	data := programasPage{
		Programas: programas,
		Busqueda:  busqueda,
		Pagina:    newPaginacion(pagina, totalPaginas, "/programas", busqueda),
	}
	if id := queryInt(ctx, "editar"); id > 0 {
		for i := range programas {
			if programas[i].ID == id {
				data.Editar = &programas[i]
				break
			}
		}
	}
	return ctx.Render(http.StatusOK, "programas", page(ctx, "Programas", "/programas", data))
}

func (web *programasWeb) create(ctx echo.Context) error {
	form := new(programaForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/programas", err, web.deps.Translator)
	}

	alta := backend.NuevoPrograma{Nombre: form.Nombre, Descripcion: form.Descripcion}
	if err := web.deps.Backend.CrearPrograma(ctx.Request().Context(), alta); err != nil {
		return redirectError(ctx, "/programas", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/programas", "Programa creado")
}

func (web *programasWeb) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	form := new(programaForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/programas", err, web.deps.Translator)
	}

	cambio := backend.NuevoPrograma{Nombre: form.Nombre, Descripcion: form.Descripcion}
	if err := web.deps.Backend.EditarPrograma(ctx.Request().Context(), id, cambio); err != nil {
		return redirectError(ctx, "/programas", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/programas", "Programa actualizado")
}

func (web *programasWeb) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := web.deps.Backend.EliminarPrograma(ctx.Request().Context(), id); err != nil {
		return redirectError(ctx, "/programas", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/programas", "Programa eliminado")
}
