package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/gorilla/mux"
)

const (
	// ListenPort is the loopback port the capture server binds. Don't change
	// it: Spotify only redirects to URIs on the OAuth app's registered
	// allowlist, and http://127.0.0.1:43019/redirect is the entry this
	// client was registered with.
	ListenPort = 43019

	listenHost = "127.0.0.1"
)

// RedirectURI returns the redirect URI embedded in the authorization URL.
// It must match the registered allowlist entry byte for byte.
func RedirectURI() string {
	return fmt.Sprintf("http://%s:%d/redirect", listenHost, ListenPort)
}

// relayPage converts the URL fragment into a query string on /token. The
// fragment never reaches the server, so the browser has to do the move.
const relayPage = `<script>location.replace("token?" + location.hash.slice(1));</script>`

// confirmPage is shown once the token has been captured.
const confirmPage = `<script>close()</script>Thanks! You may now close this window.`

// CaptureResult contains the outcome of a token capture flow.
type CaptureResult struct {
	Token string
	err   error
}

func (r *CaptureResult) Error() error {
	return r.err
}

// CaptureHandler serves the two-step fragment relay and resolves the capture
// once the token lands on /token.
//
// The original flow used a raised exception to tear the listener down on
// success; here the terminal state is a typed result sent exactly once on a
// channel the dispatch loop selects on.
type CaptureHandler struct {
	logger     *log.Logger
	router     *mux.Router
	resultChan chan CaptureResult
	once       sync.Once
}

// NewCaptureHandler creates a capture handler with its routes configured.
func NewCaptureHandler(logger *log.Logger) *CaptureHandler {
	h := &CaptureHandler{
		logger:     logger,
		resultChan: make(chan CaptureResult, 1),
	}

	router := mux.NewRouter()
	router.Use(h.recovery)
	router.HandleFunc("/token", h.handleToken).Methods(http.MethodGet)
	router.PathPrefix("/redirect").HandlerFunc(h.handleRedirect).Methods(http.MethodGet)
	router.NotFoundHandler = h.recovery(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.NotFound(w, req)
	}))

	h.router = router
	return h
}

// ServeHTTP implements [http.Handler].
func (h *CaptureHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.router.ServeHTTP(w, req)
}

// Result returns the channel the capture outcome is delivered on.
//
// The channel receives exactly one result and is then closed.
func (h *CaptureHandler) Result() <-chan CaptureResult {
	return h.resultChan
}

// Send resolves the capture (only once).
func (h *CaptureHandler) Send(result CaptureResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// recovery turns a handler fault into a fatal capture error instead of
// swallowing it. The listener exists for one token; any fault while waiting
// for it should abort the whole operation loudly.
func (h *CaptureHandler) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.Send(CaptureResult{err: fmt.Errorf("capture handler fault on %s: %v", req.URL.Path, rec)})
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

// handleRedirect serves the relay page. Spotify lands the browser here with
// the access token hidden in the URL fragment.
func (h *CaptureHandler) handleRedirect(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, relayPage)
}

// handleToken extracts the token from the relayed query string and resolves
// the capture.
func (h *CaptureHandler) handleToken(w http.ResponseWriter, req *http.Request) {
	token := req.URL.Query().Get("access_token")
	if token == "" {
		h.Send(CaptureResult{err: fmt.Errorf("%w: no access_token in %s", shared.ErrAuthFailed, req.URL.RequestURI())})
		http.Error(w, "Missing access_token", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, confirmPage)

	h.logger.Info("received access token from Spotify")
	h.Send(CaptureResult{Token: token})
}

// Capture hosts the loopback listener and blocks until a token arrives or
// the listener fails.
//
// There is no timeout: the flow waits on the user to finish in the browser,
// and an abandoned login blocks until the process is interrupted.
func Capture(ctx context.Context, logger *log.Logger) (string, error) {
	handler := NewCaptureHandler(logger)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", listenHost, ListenPort),
		Handler: handler,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Infof("listening for the authorization redirect on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	var result CaptureResult
	select {
	case result = <-handler.Result():
	case err := <-serverErrors:
		return "", fmt.Errorf("capture server error: %w", err)
	case <-ctx.Done():
		httpServer.Close()
		return "", ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("error shutting down capture server", "error", err)
	}

	if result.Error() != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}

	return result.Token, nil
}
