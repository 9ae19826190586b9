// Package echoconsole is the web console: server-rendered pages over the
// institution's REST backend. It owns routing, session-backed authentication
// and the per-page rendering; every data operation is delegated to the
// backend client.
package echoconsole

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/core/session"
	"github.com/classlog/console/services/backend"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Backend    *backend.Client
		Sessions   session.Store
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errChan  chan error
		shutChan chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errChan:  make(chan error, 1),
		shutChan: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutChan, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	r, err := newRenderer()
	if err != nil {
		s.deps.Logger.Fatal("parsing templates", err)
	}
	s.app.Renderer = r
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.HideBanner = true

	s.app.Use(s.authContextMiddleware())

	s.routes()
}

func (s *server) routes() {
	s.app.GET("/", s.loginPage)
	s.app.POST("/login", s.login)
	s.app.POST("/logout", s.logout, requireAuth)

	g := s.app.Group("", requireAuth)

	g.GET("/dashboard", s.dashboard)

	registerUsuariosWeb(g, s.deps)
	registerRolesWeb(g, s.deps)
	registerEstudiantesWeb(g, s.deps)
	registerProfesoresWeb(g, s.deps)
	registerGruposWeb(g, s.deps)
	registerClasesWeb(g, s.deps)
	registerSalonesWeb(g, s.deps)
	registerProgramasWeb(g, s.deps)
	registerAsignacionesWeb(g, s.deps)
	registerAsistenciasWeb(g, s.deps)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errChan <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error { return s.app.Shutdown(ctx) }
func (s *server) Close() error                       { return s.app.Close() }
func (s *server) Errors() <-chan error               { return s.errChan }
func (s *server) ShutdownSignal() <-chan os.Signal   { return s.shutChan }

func (s *server) signalShutdown() { s.shutChan <- syscall.SIGTERM }

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) dashboard(ctx echo.Context) error {
	actx := getAuthContext(ctx)
	resumen, err := s.deps.Backend.Resumen(ctx.Request().Context(), actx.Token())
	if err != nil {
		// the dashboard still renders with empty counts
		resumen = academia.ResumenDashboard{}
	}
	return ctx.Render(http.StatusOK, "dashboard", page(ctx, "Dashboard", "/dashboard", resumen))
}
