package mid

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/stecheiguess/crypto/business/sys/metrics"
	"github.com/stecheiguess/crypto/foundation/web"
)

// Metrics updates program counters.
func Metrics() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			start := time.Now()

			err := handler(ctx, w, r)

			// Errors are rendered further out so the status isn't known yet.
			status := "error"
			if v, verr := web.GetValues(ctx); verr == nil && v.StatusCode != 0 {
				status = strconv.Itoa(v.StatusCode)
			}

			metrics.Requests.WithLabelValues(r.Method, status).Inc()
			metrics.Latency.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())

			if err != nil {
				metrics.Errors.Inc()
			}

			return err
		}

		return h
	}

	return m
}
