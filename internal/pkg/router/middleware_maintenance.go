package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/pkg/config"
)

// middlewareMaintenance answers 503 for routes listed in app.maintenance.endpoints.
//
// An entry is either a route path ("/sendOtp") or "METHOD path" ("POST /sendOtp").
func middlewareMaintenance(cfg config.Config) Middleware {
	blocked := make(map[string]struct{})
	if cfg != nil {
		for _, endpoint := range cfg.GetArray("app.maintenance.endpoints") {
			method, path, found := strings.Cut(endpoint, " ")
			if !found {
				blocked[endpoint] = struct{}{}
				continue
			}
			blocked[strings.ToUpper(method)+" "+strings.TrimSpace(path)] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(blocked) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			_, byPath := blocked[route]
			_, byMethod := blocked[r.Method+" "+route]
			if byPath || byMethod {
				writeJSON(w, errorResponse{Error: "Service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
