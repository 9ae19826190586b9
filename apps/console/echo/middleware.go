package echoconsole

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classlog/console/core/auth"
	"github.com/classlog/console/core/session"
)

const authContextKey = "authContext"

// authContextMiddleware builds the request's auth.Context from the session
// cookie and the backend's user detail endpoint. It runs on every route so
// login state is resolved before any guard or handler looks at it.
func (s *server) authContextMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			bound := session.Bind(s.deps.Sessions, ctx.Response(), ctx.Request())
			actx := auth.NewContext(bound, s.deps.Backend)
			actx.Init(ctx.Request().Context())
			ctx.Set(authContextKey, actx)
			return next(ctx)
		}
	}
}

func getAuthContext(ctx echo.Context) *auth.Context {
	actx, _ := ctx.Get(authContextKey).(*auth.Context)
	return actx
}

// requireAuth sends anonymous visitors to the login page. The redirect keeps
// no return-to state; after logging in the user lands on the dashboard.
func requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		actx := getAuthContext(ctx)
		if actx == nil || !actx.IsAuthenticated() {
			return ctx.Redirect(http.StatusSeeOther, "/")
		}
		return next(ctx)
	}
}

// requirePermission renders the denied page in place; the user keeps their
// navigation and can go elsewhere.
func requirePermission(permiso string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actx := getAuthContext(ctx)
			if actx == nil || !actx.HasPermission(permiso) {
				return renderDenied(ctx)
			}
			return next(ctx)
		}
	}
}

// requireRole and requireAnyRole gate pages on the role name instead of a
// permission. Evaluation short-circuits with requireAuth when nested.
func requireRole(name string) echo.MiddlewareFunc {
	return requireAnyRole(name)
}

func requireAnyRole(names ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actx := getAuthContext(ctx)
			if actx == nil || !actx.HasAnyRole(names...) {
				return renderDenied(ctx)
			}
			return next(ctx)
		}
	}
}

func renderDenied(ctx echo.Context) error {
	return ctx.Render(http.StatusForbidden, "denied", page(ctx, "Acceso denegado", "", nil))
}
