package echoconsole

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/session"
)

const credencialesInvalidas = "Credenciales inválidas"

type loginForm struct {
	Email      string `form:"email" validate:"required,email"`
	Contrasena string `form:"contraseña" validate:"required"`
}

func (f *loginForm) sanitize() {
	f.Email = core.CleanString(f.Email, true)
}

// loginPage renders the login form; an authenticated visitor is sent to the
// dashboard instead.
func (s *server) loginPage(ctx echo.Context) error {
	if actx := getAuthContext(ctx); actx != nil && actx.IsAuthenticated() {
		return ctx.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return ctx.Render(http.StatusOK, "login", page(ctx, "Iniciar sesión", "", nil))
}

// login exchanges the credentials for a token, decodes the user id out of
// it and loads the detail record. Any failure along the way shows the same
// message; the form never says which part was wrong.
func (s *server) login(ctx echo.Context) error {
	form := new(loginForm)
	if err := ctx.Bind(form); err != nil {
		return s.loginFailed(ctx)
	}
	form.sanitize()
	if err := s.deps.Validate.Struct(form); err != nil {
		return s.loginFailed(ctx)
	}

	reqCtx := ctx.Request().Context()

	resp, err := s.deps.Backend.Login(reqCtx, form.Email, form.Contrasena)
	if err != nil {
		return s.loginFailed(ctx)
	}
	claims, err := session.DecodeClaims(resp.Token)
	if err != nil {
		return s.loginFailed(ctx)
	}
	usr, err := s.deps.Backend.UsuarioDetalle(reqCtx, claims.UsuarioID(), resp.Token)
	if err != nil {
		return s.loginFailed(ctx)
	}

	actx := getAuthContext(ctx)
	if err := actx.Login(resp.Token, usr); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *server) loginFailed(ctx echo.Context) error {
	pd := page(ctx, "Iniciar sesión", "", nil)
	pd.Error = credencialesInvalidas
	return ctx.Render(http.StatusUnauthorized, "login", pd)
}

func (s *server) logout(ctx echo.Context) error {
	if err := getAuthContext(ctx).Logout(); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/")
}
