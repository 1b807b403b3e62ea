// Package api exposes a task service over REST and provides the matching
// HTTP client.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "taskpanel/internal/errors"
	"taskpanel/internal/export"
	"taskpanel/internal/logger"
	"taskpanel/internal/query"
	"taskpanel/internal/service"
	"taskpanel/internal/task"
)

const (
	BasePath = "/api/v1/tasks"

	MsgTaskDeleted = "Task deleted successfully"
)

type Server struct {
	svc      service.Service
	exporter *export.Exporter
	router   chi.Router
}

func NewServer(svc service.Service, batchLimit int) *Server {
	s := &Server{svc: svc, exporter: export.NewExporter(svc, batchLimit)}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route(BasePath, func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/export", s.handleExport)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	logger.L().WithField("addr", addr).Info("task api listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	skip, err := intParam(r, "skip", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := intParam(r, "limit", service.DefaultLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	page, err := s.svc.ListTasks(r.Context(), skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if page.Data == nil {
		page.Data = []task.Task{}
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.GetTask(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in task.CreateInput
	if err := decodeBody(r, &in, "create task"); err != nil {
		writeError(w, err)
		return
	}
	t, err := s.svc.CreateTask(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in task.UpdateInput
	if err := decodeBody(r, &in, "update task"); err != nil {
		writeError(w, err)
		return
	}
	t, err := s.svc.UpdateTask(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": MsgTaskDeleted})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	b, err := s.exporter.Export(r.Context(), format, query.DecodeValues(r.URL.Query()))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.L().WithError(err).Error("task api request failed")
	}
	writeJSON(w, code, errorBody{Detail: apperrors.Detail(err)})
}

func statusFor(err error) int {
	switch apperrors.CategoryOf(err) {
	case apperrors.CategoryValidation:
		return http.StatusBadRequest
	case apperrors.CategoryNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func decodeBody(r *http.Request, v any, op string) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationError("Invalid request body", op).WithOriginalError(err)
	}
	return nil
}

func intParam(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, apperrors.NewValidationError("Invalid "+name, "list tasks").WithContext(name, v)
	}
	return n, nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.L().WithFields(map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("http request")
	})
}
