package echoconsole

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/services/backend"
)

type clasesWeb struct {
	deps ServerDeps
}

func registerClasesWeb(g *echo.Group, deps ServerDeps) {
	web := clasesWeb{deps: deps}

	cg := g.Group("/clases", requirePermission("acceso_clases"))
	cg.GET("", web.list)
	cg.POST("", web.create)
	cg.POST("/:id/editar", web.update)
	cg.POST("/:id/eliminar", web.destroy)
}

type claseForm struct {
	Nombre        string `form:"nombre" validate:"required"`
	GrupoID       int    `form:"grupo_id" validate:"required"`
	ProfesorID    int    `form:"profesor_id" validate:"required"`
	SalonID       int    `form:"salon_id" validate:"required"`
	DiaSemana     string `form:"dia_semana" validate:"required"`
	HoraInicio    string `form:"hora_inicio" validate:"required"`
	HoraFin       string `form:"hora_fin" validate:"required"`
	VentanaInicio string `form:"ventana_inicio"`
	VentanaFin    string `form:"ventana_fin"`
}

func (f *claseForm) sanitize() {
	f.Nombre = core.CleanString(f.Nombre)
}

func (f *claseForm) body() backend.NuevaClase {
	return backend.NuevaClase{
		Nombre:        f.Nombre,
		GrupoID:       f.GrupoID,
		ProfesorID:    f.ProfesorID,
		SalonID:       f.SalonID,
		DiaSemana:     f.DiaSemana,
		HoraInicio:    f.HoraInicio,
		HoraFin:       f.HoraFin,
		VentanaInicio: f.VentanaInicio,
		VentanaFin:    f.VentanaFin,
	}
}

type clasesPage struct {
	Clases     []academia.Clase
	Grupos     []academia.Grupo
	Profesores []academia.Profesor
	Salones    []academia.Salon
	Editar     *academia.Clase
	Pagina     paginacion
}

func (web *clasesWeb) list(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	pagina := paginaActual(ctx)
	clases, totalPaginas, err := web.deps.Backend.Clases(reqCtx, pagina, listaPorPagina)
	if err != nil {
		return err
	}
	grupos, _, err := web.deps.Backend.Grupos(reqCtx, 1, catalogoLimite)
	if err != nil {
		return err
	}
	profesores, _, err := web.deps.Backend.Profesores(reqCtx, 1, catalogoLimite)
	if err != nil {
		return err
	}
	salones, _, err := web.deps.Backend.Salones(reqCtx, 1, catalogoLimite)
	if err != nil {
		return err
	}

	data := clasesPage{
		Clases:     clases,
		Grupos:     grupos,
		Profesores: profesores,
		Salones:    salones,
		Pagina:     newPaginacion(pagina, totalPaginas, "/clases", ""),
	}
	if id := queryInt(ctx, "editar"); id > 0 {
		for i := range clases {
			if clases[i].ID == id {
				data.Editar = &clases[i]
				break
			}
		}
	}
	return ctx.Render(http.StatusOK, "clases", page(ctx, "Clases", "/clases", data))
}

func (web *clasesWeb) create(ctx echo.Context) error {
	form := new(claseForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/clases", err, web.deps.Translator)
	}

	if err := web.deps.Backend.CrearClase(ctx.Request().Context(), form.body()); err != nil {
		return redirectError(ctx, "/clases", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/clases", "Clase creada")
}

func (web *clasesWeb) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	form := new(claseForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/clases", err, web.deps.Translator)
	}

	if err := web.deps.Backend.EditarClase(ctx.Request().Context(), id, form.body()); err != nil {
		return redirectError(ctx, "/clases", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/clases", "Clase actualizada")
}

func (web *clasesWeb) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := web.deps.Backend.EliminarClase(ctx.Request().Context(), id); err != nil {
		return redirectError(ctx, "/clases", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/clases", "Clase eliminada")
}
