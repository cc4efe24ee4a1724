package web

// server.go — servidor local opcional que replica el launcher original:
// sirve dashboard.html, los datasets de origen (con Content-Type text/csv)
// y un endpoint JSON con el resumen calculado. Solo bytes estáticos y un
// JSON ya computado — el render ocurre una vez por carga, no por request.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/alejandrodnm/tradedash/internal/dashboard"
	"golang.org/x/time/rate"
)

// Server sirve el dashboard generado en una dirección local.
type Server struct {
	addr    string
	outDir  string
	dataDir string
	result  *dashboard.Result // nil cuando el sistema está idle
	limiter *rate.Limiter
}

// New crea un Server. result puede ser nil (estado idle): el servidor
// sigue arrancando y /api/summary lo refleja.
func New(addr, outDir, dataDir string, rps float64, burst int, result *dashboard.Result) *Server {
	return &Server{
		addr:    addr,
		outDir:  outDir,
		dataDir: dataDir,
		result:  result,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Handler construye el mux completo con el throttle aplicado.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/data/", s.handleData)
	return s.throttle(mux)
}

// Serve atiende requests hasta que el contexto se cancele.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("serving dashboard", "addr", s.addr, "url", fmt.Sprintf("http://localhost%s/", s.addr))

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web.Serve: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

// throttle aplica el rate limit global a todos los handlers.
func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleIndex sirve el artefacto generado.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/dashboard.html" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.outDir, "dashboard.html"))
}

// handleData sirve los datasets de origen con el Content-Type correcto.
// Solo archivos directos del directorio de datos, sin subdirectorios.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/data/")
	if name == "" || name != filepath.Base(name) {
		http.NotFound(w, r)
		return
	}
	if strings.HasSuffix(name, ".csv") {
		w.Header().Set("Content-Type", "text/csv")
	}
	http.ServeFile(w, r, filepath.Join(s.dataDir, name))
}

// handleSummary devuelve el resumen como JSON, o el estado idle/no-data.
func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if s.result == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{"idle": true})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"idle":    false,
		"run_id":  s.result.Session.ID,
		"summary": s.result.Summary,
	})
}
