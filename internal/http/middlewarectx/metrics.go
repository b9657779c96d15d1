package middlewarectx

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "examprep_http_requests_total",
	Help: "HTTP requests by method and status code.",
}, []string{"method", "code"})

// MetricsMiddleware считает обработанные HTTP-запросы по методу и коду ответа.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		requestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}
