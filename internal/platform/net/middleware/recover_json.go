package middleware

import (
	"fmt"
	stdhttp "net/http"

	perr "contactguard/internal/platform/errors"
	"contactguard/internal/platform/logger"
	phttp "contactguard/internal/platform/net/http"

	"github.com/pkg/errors"
)

// RecoverJSON turns a handler panic into the 500 envelope and logs it with its stack.
// http.ErrAbortHandler passes through so net/http can drop the connection.
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			switch v {
			case nil:
				return
			case stdhttp.ErrAbortHandler:
				panic(v)
			}
			logger.C(r.Context()).Error().
				Stack().
				Err(errors.WithStack(fmt.Errorf("panic: %v", v))).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("panic recovered")
			phttp.RespondError(w, r, perr.PanicErrf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
