package echoconsole

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classlog/console/core/academia"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData is what every template receives. Data carries the page-specific
// payload.
type pageData struct {
	Title   string
	Active  string
	Nav     []navSection
	User    *academia.Usuario
	Role    string
	Mensaje string
	Error   string
	Data    interface{}
}

// renderer holds one parsed template per page, each page paired with the
// shared layout.
type renderer struct {
	pages map[string]*template.Template
}

var pageNames = []string{
	"login", "denied", "error",
	"dashboard",
	"usuarios", "roles", "estudiantes", "profesores",
	"grupos", "clases", "salones", "programas", "asignaciones",
	"asistencias", "asistencia_tomar", "asistencia_historial", "asistencia_detalle",
}

func newRenderer() (*renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "parsing template %q", name)
		}
		pages[name] = tpl
	}
	return &renderer{pages: pages}, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("unknown template %q", name)
	}
	return tpl.ExecuteTemplate(w, "layout", data)
}

// page builds the common template payload from the request's auth context.
func page(ctx echo.Context, title, active string, data interface{}) pageData {
	pd := pageData{
		Title:   title,
		Active:  active,
		Data:    data,
		Mensaje: ctx.QueryParam("mensaje"),
		Error:   ctx.QueryParam("error"),
	}
	if actx := getAuthContext(ctx); actx != nil && actx.IsAuthenticated() {
		if usr, ok := actx.User(); ok {
			pd.User = &usr
		}
		pd.Role = actx.RoleName()
		pd.Nav = visibleSections(actx)
	}
	return pd
}
