package rest

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"real-estate-system/storefront/internal/contextkeys"
	"real-estate-system/storefront/internal/core/port"
)

// Recoverer перехватывает панику обработчика, пишет ее в контекстный логгер
// и отвечает 500 в общем JSON-формате ошибок.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			contextkeys.LoggerFromContext(r.Context()).Error("Panic recovered", fmt.Errorf("%v", rec), port.Fields{
				"stack": string(debug.Stack()),
			})
			WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}
