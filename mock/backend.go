package mock

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HandlerFunc answers one backend route. It receives the decoded JSON request
// body and returns the status code and the response body. A nil body writes
// no content; a Raw body is written verbatim; anything else is encoded as JSON.
type HandlerFunc func(req map[string]any) (status int, body any)

// Raw is a response body written without JSON encoding.
type Raw string

// Backend is a fake of the external HTTP backend. Routes whose handler is nil
// answer 501. Handlers run on server goroutines, so shared state they touch
// must be synchronized by the test.
type Backend struct {
	CheckSessionFn  HandlerFunc
	CreateSessionFn HandlerFunc
	ValidateURLFn   HandlerFunc
	GatherFilesFn   HandlerFunc
	ChatFn          HandlerFunc
}

// Handler returns the backend's routes. Serve it with httptest.NewServer.
func (b *Backend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/check-session", b.route(func() HandlerFunc { return b.CheckSessionFn }))
	r.Post("/create-session", b.route(func() HandlerFunc { return b.CreateSessionFn }))
	r.Post("/validate-github-url", b.route(func() HandlerFunc { return b.ValidateURLFn }))
	r.Post("/gather-files", b.route(func() HandlerFunc { return b.GatherFilesFn }))
	r.Post("/chat", b.route(func() HandlerFunc { return b.ChatFn }))
	return r
}

func (b *Backend) route(handler func() HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn := handler()
		if fn == nil {
			http.Error(w, "not implemented", http.StatusNotImplemented)
			return
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBody(w, http.StatusBadRequest, map[string]string{"error": "Missing request body"})
			return
		}
		status, body := fn(req)
		writeBody(w, status, body)
	}
}

func writeBody(w http.ResponseWriter, status int, body any) {
	switch b := body.(type) {
	case nil:
		w.WriteHeader(status)
	case Raw:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(b))
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(b)
	}
}
