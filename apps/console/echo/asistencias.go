package echoconsole

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/core/attendance"
)

type asistenciasWeb struct {
	deps ServerDeps
}

func registerAsistenciasWeb(g *echo.Group, deps ServerDeps) {
	web := asistenciasWeb{deps: deps}

	ag := g.Group("/asistencias", requirePermission("acceso_asistencias"))
	ag.GET("", web.list)
	ag.GET("/tomar/:id", web.tomar)
	ag.POST("/tomar/:id", web.guardar)
	ag.GET("/historial/:id", web.historial)
	ag.GET("/detalle/:id", web.detalle)
	ag.GET("/reporte", web.reporte)
}

// redirect sends any attendance failure back to the listing. Workflow
// errors already carry a user-facing message; everything else goes through
// the shared translation.
func (web *asistenciasWeb) redirect(ctx echo.Context, err error) error {
	switch errors.Cause(err) {
	case attendance.ErrFueraDeVentana, attendance.ErrSoloLectura, attendance.ErrSoloAdministrador,
		attendance.ErrSinClase, attendance.ErrSinEstudiantes, attendance.ErrEstudianteDesconocido:
		q := make(url.Values)
		q.Set("error", err.Error())
		return ctx.Redirect(http.StatusSeeOther, "/asistencias?"+q.Encode())
	}
	return redirectError(ctx, "/asistencias", err, web.deps.Translator)
}

type asistenciasPage struct {
	Pagina         attendance.Pagina
	FiltroGrupo    string
	FiltroProfesor string
	EsAdmin        bool
}

// list shows today's classes with client-side filtering and a fixed page
// size. The teacher-name filter only appears for administrators; everyone
// else already sees only their own classes.
func (web *asistenciasWeb) list(ctx echo.Context) error {
	actx := getAuthContext(ctx)
	admin := actx.HasRole(academia.RolAdministrador)

	clases, err := web.deps.Backend.ClasesParaAsistencia(ctx.Request().Context(), actx.Token())
	if err != nil {
		return err
	}

	filtroGrupo := ctx.QueryParam("filtro_grupo")
	filtroProfesor := ctx.QueryParam("filtro_profesor")
	filtered := attendance.FilterClases(clases, filtroGrupo, filtroProfesor, admin)

	data := asistenciasPage{
		Pagina:         attendance.Paginar(filtered, queryInt(ctx, "pagina")),
		FiltroGrupo:    filtroGrupo,
		FiltroProfesor: filtroProfesor,
		EsAdmin:        admin,
	}
	return ctx.Render(http.StatusOK, "asistencias", page(ctx, "Asistencias", "/asistencias", data))
}

type tomarPage struct {
	Clase       academia.Clase
	Fecha       string
	Roster      []academia.Estudiante
	Presentes   map[string]bool
	SoloLectura bool
	Resumen     string
	EsAdmin     bool
	Editando    bool
}

// startWorkflow rebuilds the attendance workflow for the class in the route.
// The class must come from the caller's own eligible list; a class id
// outside it is a 404, not a backend call.
func (web *asistenciasWeb) startWorkflow(ctx echo.Context) (*attendance.Workflow, error) {
	actx := getAuthContext(ctx)
	id, err := paramID(ctx)
	if err != nil {
		return nil, err
	}

	clases, err := web.deps.Backend.ClasesParaAsistencia(ctx.Request().Context(), actx.Token())
	if err != nil {
		return nil, err
	}
	var clase *academia.Clase
	for i := range clases {
		if clases[i].ID == id {
			clase = &clases[i]
			break
		}
	}
	if clase == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "clase no encontrada")
	}

	wf := attendance.New(web.deps.Backend, actx.Token(), attendance.WithLogger(web.deps.Logger))
	if err := wf.Start(ctx.Request().Context(), *clase); err != nil {
		return nil, err
	}
	return wf, nil
}

func (web *asistenciasWeb) tomar(ctx echo.Context) error {
	actx := getAuthContext(ctx)

	wf, err := web.startWorkflow(ctx)
	if err != nil {
		return web.redirect(ctx, err)
	}

	editando := ctx.QueryParam("editar") == "1"
	if editando {
		if err := wf.EnableEdit(actx.RoleName()); err != nil {
			return web.redirect(ctx, err)
		}
	}

	return web.renderTomar(ctx, wf, editando)
}

func (web *asistenciasWeb) renderTomar(ctx echo.Context, wf *attendance.Workflow, editando bool) error {
	actx := getAuthContext(ctx)
	clase, _ := wf.Clase()

	presentes := make(map[string]bool, len(wf.Roster()))
	for _, est := range wf.Roster() {
		presentes[est.Documento] = wf.Presente(est.Documento)
	}

	data := tomarPage{
		Clase:       clase,
		Fecha:       wf.Today(),
		Roster:      wf.Roster(),
		Presentes:   presentes,
		SoloLectura: wf.Mode() == attendance.ModeView,
		EsAdmin:     actx.HasRole(academia.RolAdministrador),
		Editando:    editando,
	}
	if p, a, ok := wf.Resumen(); ok {
		data.Resumen = resumenBadge(p, a)
	}
	return ctx.Render(http.StatusOK, "asistencia_tomar", page(ctx, "Tomar asistencia", "/asistencias", data))
}

// guardar applies the submitted toggles and writes the records. Unchecked
// checkboxes are absent from the form, so every roster student is set
// explicitly: present when the field came through, absent otherwise.
func (web *asistenciasWeb) guardar(ctx echo.Context) error {
	actx := getAuthContext(ctx)

	wf, err := web.startWorkflow(ctx)
	if err != nil {
		return web.redirect(ctx, err)
	}

	if ctx.FormValue("editar") == "1" {
		if err := wf.EnableEdit(actx.RoleName()); err != nil {
			return web.redirect(ctx, err)
		}
	}

	form, err := ctx.FormParams()
	if err != nil {
		return err
	}
	for _, est := range wf.Roster() {
		_, marcado := form["presente_"+est.Documento]
		if err := wf.SetPresente(est.Documento, marcado); err != nil {
			return web.redirect(ctx, err)
		}
	}

	if err := wf.Submit(ctx.Request().Context()); err != nil {
		return web.redirect(ctx, err)
	}
	return redirectMensaje(ctx, "/asistencias", "Asistencia guardada")
}

type historialPage struct {
	ClaseID     int
	Asistencias []academia.Asistencia
}

func (web *asistenciasWeb) historial(ctx echo.Context) error {
	actx := getAuthContext(ctx)
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	asistencias, err := web.deps.Backend.AsistenciasPorClase(ctx.Request().Context(), actx.Token(), id)
	if err != nil {
		return err
	}
	data := historialPage{ClaseID: id, Asistencias: asistencias}
	return ctx.Render(http.StatusOK, "asistencia_historial", page(ctx, "Historial de asistencias", "/asistencias", data))
}

func (web *asistenciasWeb) detalle(ctx echo.Context) error {
	actx := getAuthContext(ctx)
	id, err := paramID(ctx)
	if err != nil {
		return err
	}

	asistencia, err := web.deps.Backend.AsistenciaDetalle(ctx.Request().Context(), actx.Token(), id)
	if err != nil {
		return err
	}
	return ctx.Render(http.StatusOK, "asistencia_detalle", page(ctx, "Detalle de asistencia", "/asistencias", asistencia))
}

// reporte streams the CSV export, narrowed by class or group when the query
// says so.
func (web *asistenciasWeb) reporte(ctx echo.Context) error {
	actx := getAuthContext(ctx)

	filtros := academia.FiltrosReporte{
		ClaseID: queryInt(ctx, "clase_id"),
		GrupoID: queryInt(ctx, "grupo_id"),
	}
	filas, err := web.deps.Backend.ReporteAsistencias(ctx.Request().Context(), actx.Token(), filtros)
	if err != nil {
		return web.redirect(ctx, err)
	}

	hoy := time.Now()
	filename := attendance.ReporteGeneralFilename(hoy)
	if filtros.ClaseID > 0 && len(filas) > 0 {
		filename = attendance.ReporteFilename(filas[0].Clase, hoy)
	}

	ctx.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	ctx.Response().WriteHeader(http.StatusOK)
	return attendance.WriteReporteCSV(ctx.Response(), filas)
}

func resumenBadge(presentes, ausentes int) string {
	return fmt.Sprintf("%d presentes, %d ausentes", presentes, ausentes)
}
