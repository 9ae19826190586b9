package echoconsole

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/services/backend"
)

type rolesWeb struct {
	deps ServerDeps
}

func registerRolesWeb(g *echo.Group, deps ServerDeps) {
	web := rolesWeb{deps: deps}

	rg := g.Group("/roles", requirePermission("acceso_roles"))
	rg.GET("", web.list)
	rg.POST("", web.create)
	rg.POST("/:id/editar", web.update)
	rg.POST("/:id/eliminar", web.destroy)
	rg.POST("/:id/estado", web.toggleEstado)
}

type rolForm struct {
	Nombre   string   `form:"nombre" validate:"required"`
	Permisos []string `form:"permisos"`
}

func (f *rolForm) sanitize() {
	f.Nombre = core.CleanString(f.Nombre)
}

// permisoIDs parses the checked permission checkboxes; unparseable values
// are dropped rather than failing the whole form.
func (f *rolForm) permisoIDs() []int {
	ids := make([]int, 0, len(f.Permisos))
	for _, p := range f.Permisos {
		if id, err := strconv.Atoi(p); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

type rolesPage struct {
	Roles    []academia.Rol
	Permisos []academia.Permiso
	Editar   *academia.Rol
	Busqueda string
	Pagina   paginacion
}

func (web *rolesWeb) list(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	busqueda := ctx.QueryParam("buscar")
	pagina := paginaActual(ctx)
	var roles []academia.Rol
	var totalPaginas int
	var err error
	if busqueda != "" {
		roles, totalPaginas, err = web.deps.Backend.BuscarRoles(reqCtx, busqueda, pagina, listaPorPagina)
	} else {
		roles, totalPaginas, err = web.deps.Backend.Roles(reqCtx, pagina, listaPorPagina)
	}
	if err != nil {
		return err
	}
	permisos, err := web.deps.Backend.Permisos(reqCtx)
	if err != nil {
		return err
	}

	data := rolesPage{
		Roles:    roles,
		Permisos: permisos,
		Busqueda: busqueda,
		Pagina:   newPaginacion(pagina, totalPaginas, "/roles", busqueda),
	}
	if id := queryInt(ctx, "editar"); id > 0 {
		// the list omits the permission detail; fetch the full record
		rol, err := web.deps.Backend.RolDetalle(reqCtx, id)
		if err != nil {
			return err
		}
		data.Editar = &rol
	}
	return ctx.Render(http.StatusOK, "roles", page(ctx, "Roles", "/roles", data))
}

func (web *rolesWeb) create(ctx echo.Context) error {
	form := new(rolForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/roles", err, web.deps.Translator)
	}

	alta := backend.NuevoRol{Nombre: form.Nombre, PermisoIDs: form.permisoIDs()}
	if err := web.deps.Backend.CrearRol(ctx.Request().Context(), alta); err != nil {
		return redirectError(ctx, "/roles", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/roles", "Rol creado")
}

func (web *rolesWeb) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	form := new(rolForm)
	if err := ctx.Bind(form); err != nil {
		return err
	}
	form.sanitize()
	if err := web.deps.Validate.Struct(form); err != nil {
		return redirectError(ctx, "/roles", err, web.deps.Translator)
	}

	cambio := backend.CambioRol{Nombre: form.Nombre, Permisos: form.permisoIDs()}
	if err := web.deps.Backend.EditarRol(ctx.Request().Context(), id, cambio); err != nil {
		return redirectError(ctx, "/roles", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/roles", "Rol actualizado")
}

func (web *rolesWeb) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := web.deps.Backend.EliminarRol(ctx.Request().Context(), id); err != nil {
		return redirectError(ctx, "/roles", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/roles", "Rol eliminado")
}

func (web *rolesWeb) toggleEstado(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	estado := ctx.FormValue("estado") == "true"
	if err := web.deps.Backend.CambiarEstadoRol(ctx.Request().Context(), id, estado); err != nil {
		return redirectError(ctx, "/roles", err, web.deps.Translator)
	}
	return redirectMensaje(ctx, "/roles", "Estado actualizado")
}
