package middleware

import (
	"net/http"
	"runtime/debug"

	"shipvoid-backend/internal/logging"
	"shipvoid-backend/internal/metrics"
	"shipvoid-backend/pkg/utils"

	"github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a 500 and keeps the server up.
// If the handler already started its response (an export stream, say) the
// status cannot change, so the connection is left to close short.
func PanicRecovery(next http.Handler) http.Handler {
	log := logging.Component("Recovery")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}

			route := routeTemplate(r)
			metrics.HTTPPanicsTotal.WithLabelValues(route).Inc()
			log.WithFields(logrus.Fields{
				"method": r.Method,
				"route":  route,
				"ip":     getClientIP(r),
			}).Errorf("panic recovered: %v\n%s", err, debug.Stack())

			if !wrapped.started() {
				utils.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(wrapped, r)
	})
}
