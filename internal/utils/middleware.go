package utils

import "net/http"

// PreflightStatus rewrites the status of CORS preflight responses.
// The CORS middleware answers preflight with 200 and offers no knob
// for it; the site's clients expect 204.
func PreflightStatus(status int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w = &preflightWriter{ResponseWriter: w, status: status}
			}
			next.ServeHTTP(w, r)
		})
	}
}

type preflightWriter struct {
	http.ResponseWriter
	status int
}

func (w *preflightWriter) WriteHeader(code int) {
	if code == http.StatusOK {
		code = w.status
	}
	w.ResponseWriter.WriteHeader(code)
}
