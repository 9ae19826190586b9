package echoconsole

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/services/backend"
)

type asignacionesWeb struct {
	deps ServerDeps
}

func registerAsignacionesWeb(g *echo.Group, deps ServerDeps) {
	web := asignacionesWeb{deps: deps}

	ag := g.Group("/asignaciones", requirePermission("acceso_asignaciones"))
	ag.GET("", web.list)
	ag.POST("", web.assign)
	ag.POST("/retirar", web.withdraw)
}

type asignacionForm struct {
	EstudianteID string `form:"estudiante_id" validate:"required"`
	GrupoID      int    `form:"grupo_id" validate:"required"`
}

type asignacionesPage struct {
	Asignaciones []academia.Asignacion
	Estudiantes  []academia.Estudiante
	Grupos       []academia.Grupo
}

func (web *asignacionesWeb) list(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	asignaciones, err := web.deps.Backend.Asignaciones(reqCtx, 0, 0)
	if err != nil {
		return err
	}
	estudiantes, _, err := web.deps.Backend.Estudiantes(reqCtx, 1, catalogoLimite)
	if err != nil {
		return err
	}
	grupos, _, err := web.deps.Backend.Grupos(reqCtx, 1, catalogoLimite)
	if err != nil {
		return err
	}

	data := asignacionesPage{Asignaciones: asignaciones, Estudiantes: estudiantes, Grupos: grupos}
	return ctx.Render(http.StatusOK, "asignaciones", page(ctx, "Asignación Estudiantes", "/asignaciones", data))
}

func (web *asignacionesWeb) assign(ctx echo.Context) error {
	form := new(asignacionForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/asignaciones", err, web.deps.Translator)
	}

	alta := backend.NuevaAsignacion{EstudianteID: form.EstudianteID, GrupoID: form.GrupoID}
	if err := web.deps.Backend.AsignarEstudiante(ctx.Request().Context(), alta); err != nil {
		return redirectError(ctx, "/asignaciones", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/asignaciones", "Estudiante asignado")
}

func (web *asignacionesWeb) withdraw(ctx echo.Context) error {
	form := new(asignacionForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/asignaciones", err, web.deps.Translator)
	}

	if err := web.deps.Backend.RetirarEstudiante(ctx.Request().Context(), form.EstudianteID, form.GrupoID); err != nil {
		return redirectError(ctx, "/asignaciones", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/asignaciones", "Estudiante retirado")
}
