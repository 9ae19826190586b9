package echoconsole

import (
	"fmt"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classlog/console/core"
	"github.com/classlog/console/core/academia"
	"github.com/classlog/console/services/backend"
)

// errorPayload is what the error template renders.
type errorPayload struct {
	Code    int
	Message string
	Fields  map[string]string
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler rendering
// errors as HTML pages. signalShutdown is called whenever a core.shutdown
// error is caught so the server can stop gracefully.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		payload := errorPayload{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			payload.Code = origErr.Code
			payload.Message = fmt.Sprintf("%v", origErr.Message)
		case validator.ValidationErrors:
			payload.Code = http.StatusBadRequest
			payload.Fields = make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				payload.Fields[vErr.Field()] = vErr.Translate(translator)
			}
		case *core.ValidationError:
			payload.Code = http.StatusBadRequest
			if origErr.Fields != nil {
				payload.Fields = make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					payload.Fields[fErr.Field] = fErr.Error
				}
			} else {
				payload.Message = origErr.Error()
			}
		case *backend.APIError:
			// the backend already speaks the user's language
			payload.Code = origErr.StatusCode
			payload.Message = origErr.Message
		default:
			payload.Code = http.StatusInternalServerError
			payload.Message = http.StatusText(http.StatusInternalServerError)

			var usr academia.Usuario
			if actx := getAuthContext(ctx); actx != nil {
				usr, _ = actx.User()
			}
			logger.Error(payload.Message, errors.Wrap(err, payload.Message), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			payload.Message = err.Error()
		}

		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(payload.Code)
			} else {
				err = ctx.Render(payload.Code, "error", page(ctx, "Error", "", payload))
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// summarize flattens field errors into one line for redirect messages.
func summarize(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for f, msg := range fields {
		parts = append(parts, f+": "+msg)
	}
	return strings.Join(parts, "; ")
}
