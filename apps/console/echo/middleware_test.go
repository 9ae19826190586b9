package echoconsole

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/core/auth"
	"github.com/classlog/console/core/session"
)

func newGuardContext(t *testing.T, actx *auth.Context) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	r, err := newRenderer()
	assert.NoError(t, err)
	e.Renderer = r

	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/protegido", nil), rec)
	if actx != nil {
		ctx.Set(authContextKey, actx)
	}
	return ctx, rec
}

func loggedInContext(t *testing.T, usr academia.Usuario) *auth.Context {
	t.Helper()
	actx := auth.NewContext(session.NewMemoryStore(), nil)
	assert.NoError(t, actx.Login("tok", usr))
	return actx
}

func okHandler(ctx echo.Context) error { return ctx.String(http.StatusOK, "ok") }

func TestGuards(t *testing.T) {
	profesor := academia.Usuario{
		ID: 2, Nombre: "Luis", Apellido: "Mora",
		Rol: &academia.Rol{
			ID: 2, Nombre: "Profesor", Estado: true,
			Permisos: []academia.Permiso{{ID: 1, Nombre: "acceso_asistencias"}},
		},
	}

	t.Run("requireAuth rejects anonymous", func(t *testing.T) {
		actx := auth.NewContext(session.NewMemoryStore(), nil)
		actx.Init(context.Background())
		ctx, rec := newGuardContext(t, actx)

		assert.NoError(t, requireAuth(okHandler)(ctx))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("requireAuth passes authenticated", func(t *testing.T) {
		ctx, rec := newGuardContext(t, loggedInContext(t, profesor))

		assert.NoError(t, requireAuth(okHandler)(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("requirePermission", func(t *testing.T) {
		ctx, rec := newGuardContext(t, loggedInContext(t, profesor))
		assert.NoError(t, requirePermission("acceso_asistencias")(okHandler)(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)

		ctx, rec = newGuardContext(t, loggedInContext(t, profesor))
		assert.NoError(t, requirePermission("acceso_usuarios")(okHandler)(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Acceso denegado")
	})

	t.Run("requireRole", func(t *testing.T) {
		ctx, rec := newGuardContext(t, loggedInContext(t, profesor))
		assert.NoError(t, requireRole("Profesor")(okHandler)(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)

		ctx, rec = newGuardContext(t, loggedInContext(t, profesor))
		assert.NoError(t, requireRole("Administrador")(okHandler)(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("requireAnyRole", func(t *testing.T) {
		ctx, rec := newGuardContext(t, loggedInContext(t, profesor))
		assert.NoError(t, requireAnyRole("Administrador", "Profesor")(okHandler)(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)

		ctx, rec = newGuardContext(t, loggedInContext(t, profesor))
		assert.NoError(t, requireAnyRole("Administrador", "Coordinador")(okHandler)(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing context is treated as anonymous", func(t *testing.T) {
		ctx, rec := newGuardContext(t, nil)
		assert.NoError(t, requireAuth(okHandler)(ctx))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})
}
