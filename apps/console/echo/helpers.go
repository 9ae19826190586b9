package echoconsole

import (
	"net/http"
	"net/url"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classlog/console/core"
	"github.com/classlog/console/services/backend"
)

// redirectMensaje sends the browser back to path with a success banner.
func redirectMensaje(ctx echo.Context, path, mensaje string) error {
	q := make(url.Values)
	q.Set("mensaje", mensaje)
	return ctx.Redirect(http.StatusSeeOther, path+"?"+q.Encode())
}

// redirectError sends the browser back to path with the failure explained.
// Errors without a user-facing message propagate to the error handler
// instead.
func redirectError(ctx echo.Context, path string, err error, translator ut.Translator) error {
	var msg string
	switch origErr := errors.Cause(err).(type) {
	case *backend.APIError:
		msg = origErr.Message
	case validator.ValidationErrors:
		fields := make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			fields[vErr.Field()] = vErr.Translate(translator)
		}
		msg = summarize(fields)
	case *core.ValidationError:
		if origErr.Fields != nil {
			fields := make(map[string]string, len(origErr.Fields))
			for _, fErr := range origErr.Fields {
				fields[fErr.Field] = fErr.Error
			}
			msg = summarize(fields)
		} else {
			msg = origErr.Error()
		}
	default:
		return err
	}

	q := make(url.Values)
	q.Set("error", msg)
	return ctx.Redirect(http.StatusSeeOther, path+"?"+q.Encode())
}

// page sizes the listing screens use.
const (
	listaPorPagina = 5
	// catalogoLimite fetches a whole catalog in one page, for form pickers.
	catalogoLimite = 1000
)

// paginacion drives the page controls under a resource table. Ruta carries
// the search filter when one is active and ends with "pagina=" so templates
// only append the number.
type paginacion struct {
	Actual int
	Total  int
	Ruta   string
}

func newPaginacion(actual, total int, path, busqueda string) paginacion {
	if actual < 1 {
		actual = 1
	}
	if total < 1 {
		total = 1
	}
	ruta := path + "?"
	if busqueda != "" {
		ruta += "buscar=" + url.QueryEscape(busqueda) + "&"
	}
	return paginacion{Actual: actual, Total: total, Ruta: ruta + "pagina="}
}

func (p paginacion) HasPrev() bool { return p.Actual > 1 }
func (p paginacion) HasNext() bool { return p.Actual < p.Total }
func (p paginacion) Prev() int     { return p.Actual - 1 }
func (p paginacion) Next() int     { return p.Actual + 1 }

func (p paginacion) Paginas() []int {
	nums := make([]int, p.Total)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// paginaActual reads the 1-based page number from the query.
func paginaActual(ctx echo.Context) int {
	if p := queryInt(ctx, "pagina"); p > 1 {
		return p
	}
	return 1
}

// paramID parses the :id route parameter.
func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "no encontrado")
	}
	return id, nil
}

// queryInt parses an optional numeric query parameter, 0 when absent.
func queryInt(ctx echo.Context, name string) int {
	n, _ := strconv.Atoi(ctx.QueryParam(name))
	return n
}
