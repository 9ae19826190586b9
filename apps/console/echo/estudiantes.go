package echoconsole

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/services/backend"
)

type estudiantesWeb struct {
	deps ServerDeps
}

func registerEstudiantesWeb(g *echo.Group, deps ServerDeps) {
	web := estudiantesWeb{deps: deps}

	eg := g.Group("/estudiantes", requirePermission("acceso_estudiantes"))
	eg.GET("", web.list)
	eg.POST("", web.create)
	eg.POST("/:documento/editar", web.update)
	eg.POST("/:documento/eliminar", web.destroy)
}

type estudianteForm struct {
	Documento  string `form:"documento" validate:"required,alphanum_"`
	Nombre     string `form:"nombre" validate:"required"`
	Apellido   string `form:"apellido" validate:"required"`
	ProgramaID int    `form:"programa_id" validate:"required"`
}

func (f *estudianteForm) sanitize() {
	f.Documento = core.CleanString(f.Documento)
	f.Nombre = core.CleanString(f.Nombre)
	f.Apellido = core.CleanString(f.Apellido)
}

func (f *estudianteForm) body() backend.NuevoEstudiante {
	return backend.NuevoEstudiante{
		Documento:  f.Documento,
		Nombre:     f.Nombre,
		Apellido:   f.Apellido,
		ProgramaID: f.ProgramaID,
	}
}

type estudiantesPage struct {
	Estudiantes []academia.Estudiante
	Programas   []academia.Programa
	Editar      *academia.Estudiante
	Busqueda    string
	Pagina      paginacion
}

func (web *estudiantesWeb) list(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	busqueda := ctx.QueryParam("buscar")
	pagina := paginaActual(ctx)
	var estudiantes []academia.Estudiante
	var totalPaginas int
	var err error
	if busqueda != "" {
		estudiantes, totalPaginas, err = web.deps.Backend.BuscarEstudiantes(reqCtx, busqueda, pagina, listaPorPagina)
	} else {
		estudiantes, totalPaginas, err = web.deps.Backend.Estudiantes(reqCtx, pagina, listaPorPagina)
	}
	if err != nil {
		return err
	}
	programas, _, err := web.deps.Backend.Programas(reqCtx, 1, catalogoLimite)
	if err != nil {
		return err
	}

	data := estudiantesPage{
		Estudiantes: estudiantes,
		Programas:   programas,
		Busqueda:    busqueda,
		Pagina:      newPaginacion(pagina, totalPaginas, "/estudiantes", busqueda),
	}
	if doc := ctx.QueryParam("editar"); doc != "" {
		for i := range estudiantes {
			if estudiantes[i].Documento == doc {
				data.Editar = &estudiantes[i]
				break
			}
		}
	}
	return ctx.Render(http.StatusOK, "estudiantes", page(ctx, "Estudiantes", "/estudiantes", data))
}

func (web *estudiantesWeb) create(ctx echo.Context) error {
	form := new(estudianteForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/estudiantes", err, web.deps.Translator)
	}

	if err := web.deps.Backend.CrearEstudiante(ctx.Request().Context(), form.body()); err != nil {
		return redirectError(ctx, "/estudiantes", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/estudiantes", "Estudiante creado")
}

func (web *estudiantesWeb) update(ctx echo.Context) error {
	documento := ctx.Param("documento")
	form := new(estudianteForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/estudiantes", err, web.deps.Translator)
	}

	if err := web.deps.Backend.EditarEstudiante(ctx.Request().Context(), documento, form.body()); err != nil {
		return redirectError(ctx, "/estudiantes", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/estudiantes", "Estudiante actualizado")
}

func (web *estudiantesWeb) destroy(ctx echo.Context) error {
	documento := ctx.Param("documento")
	if err := web.deps.Backend.EliminarEstudiante(ctx.Request().Context(), documento); err != nil {
		return redirectError(ctx, "/estudiantes", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/estudiantes", "Estudiante eliminado")
}
