package echoconsole

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/services/backend"
)

type gruposWeb struct {
	deps ServerDeps
}

func registerGruposWeb(g *echo.Group, deps ServerDeps) {
	web := gruposWeb{deps: deps}

	gg := g.Group("/grupos", requirePermission("acceso_grupos"))
	gg.GET("", web.list)
	gg.POST("", web.create)
	gg.POST("/:id/editar", web.update)
	gg.POST("/:id/eliminar", web.destroy)
}

type grupoForm struct {
	Nombre     string `form:"nombre" validate:"required"`
	ProgramaID int    `form:"programa_id" validate:"required"`
}

func (f *grupoForm) sanitize() {
	f.Nombre = core.CleanString(f.Nombre)
}

type gruposPage struct {
	Grupos    []academia.Grupo
	Programas []academia.Programa
	Editar    *academia.Grupo
	Busqueda  string
	Pagina    paginacion
}

func (web *gruposWeb) list(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	busqueda := ctx.QueryParam("buscar")
	pagina := paginaActual(ctx)
	var grupos []academia.Grupo
	var totalPaginas int
	var err error
	if busqueda != "" {
		grupos, totalPaginas, err = web.deps.Backend.BuscarGrupos(reqCtx, busqueda, pagina, listaPorPagina)
	} else {
		grupos, totalPaginas, err = web.deps.Backend.Grupos(reqCtx, pagina, listaPorPagina)
	}
	if err != nil {
		return err
	}
	programas, _, err := web.deps.Backend.Programas(reqCtx, 1, catalogoLimite)
	if err != nil {
		return err
	}

	data := gruposPage{
		Grupos:    grupos,
		Programas: programas,
		Busqueda:  busqueda,
		Pagina:    newPaginacion(pagina, totalPaginas, "/grupos", busqueda),
	}
	if id := queryInt(ctx, "editar"); id > 0 {
		for i := range grupos {
			if grupos[i].ID == id {
				data.Editar = &grupos[i]
				break
			}
		}
	}
	return ctx.Render(http.StatusOK, "grupos", page(ctx, "Grupos", "/grupos", data))
}

func (web *gruposWeb) create(ctx echo.Context) error {
	form := new(grupoForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/grupos", err, web.deps.Translator)
	}

	alta := backend.NuevoGrupo{Nombre: form.Nombre, ProgramaID: form.ProgramaID}
	if err := web.deps.Backend.CrearGrupo(ctx.Request().Context(), alta); err != nil {
		return redirectError(ctx, "/grupos", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/grupos", "Grupo creado")
}

func (web *gruposWeb) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	form := new(grupoForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/grupos", err, web.deps.Translator)
	}

	cambio := backend.NuevoGrupo{Nombre: form.Nombre, ProgramaID: form.ProgramaID}
	if err := web.deps.Backend.EditarGrupo(ctx.Request().Context(), id, cambio); err != nil {
		return redirectError(ctx, "/grupos", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/grupos", "Grupo actualizado")
}

func (web *gruposWeb) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := web.deps.Backend.EliminarGrupo(ctx.Request().Context(), id); err != nil {
		return redirectError(ctx, "/grupos", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/grupos", "Grupo eliminado")
}
