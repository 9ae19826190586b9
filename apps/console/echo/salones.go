package echoconsole

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/services/backend"
)

type salonesWeb struct {
	deps ServerDeps
}

func registerSalonesWeb(g *echo.Group, deps ServerDeps) {
	web := salonesWeb{deps: deps}

	sg := g.Group("/salones", requirePermission("acceso_salones"))
	sg.GET("", web.list)
	sg.POST("", web.create)
	sg.POST("/:id/editar", web.update)
	sg.POST("/:id/eliminar", web.destroy)
	sg.POST("/:id/estado", web.toggleEstado)
}

type salonForm struct {
	Nombre    string `form:"nombre" validate:"required"`
	Capacidad int    `form:"capacidad" validate:"min=0"`
	Ubicacion string `form:"ubicacion"`
}

func (f *salonForm) sanitize() {
	f.Nombre = core.CleanString(f.Nombre)
	f.Ubicacion = core.CleanString(f.Ubicacion)
}

type salonesPage struct {
	Salones []academia.Salon
	Editar  *academia.Salon
	Pagina  paginacion
}

func (web *salonesWeb) list(ctx echo.Context) error {
	pagina := paginaActual(ctx)
	salones, totalPaginas, err := web.deps.Backend.Salones(ctx.Request().Context(), pagina, listaPorPagina)
	if err != nil {
		return err
	}

	data := salonesPage{Salones: salones, Pagina: newPaginacion(pagina, totalPaginas, "/salones", "")}
	if id := queryInt(ctx, "editar"); id > 0 {
		for i := range salones {
			if salones[i].ID == id {
				data.Editar = &salones[i]
				break
			}
		}
	}
	return ctx.Render(http.StatusOK, "salones", page(ctx, "Salones", "/salones", data))
}

func (web *salonesWeb) create(ctx echo.Context) error {
	form := new(salonForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/salones", err, web.deps.Translator)
	}

	alta := backend.NuevoSalon{Nombre: form.Nombre, Capacidad: form.Capacidad, Ubicacion: form.Ubicacion}
	if err := web.deps.Backend.CrearSalon(ctx.Request().Context(), alta); err != nil {
		return redirectError(ctx, "/salones", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/salones", "Salón creado")
}

func (web *salonesWeb) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	form := new(salonForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/salones", err, web.deps.Translator)
	}

	cambio := backend.NuevoSalon{Nombre: form.Nombre, Capacidad: form.Capacidad, Ubicacion: form.Ubicacion}
	if err := web.deps.Backend.EditarSalon(ctx.Request().Context(), id, cambio); err != nil {
		return redirectError(ctx, "/salones", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/salones", "Salón actualizado")
}

func (web *salonesWeb) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := web.deps.Backend.EliminarSalon(ctx.Request().Context(), id); err != nil {
		return redirectError(ctx, "/salones", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/salones", "Salón eliminado")
}

func (web *salonesWeb) toggleEstado(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	estado := ctx.FormValue("estado") == "true"
	if err := web.deps.Backend.CambiarEstadoSalon(ctx.Request().Context(), id, estado); err != nil {
		return redirectError(ctx, "/salones", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/salones", "Estado actualizado")
}
