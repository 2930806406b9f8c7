package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"

	"github.com/google/uuid"
	"go-mod.ewintr.nl/vid2blog/process"
	"golang.org/x/exp/slog"
)

const RequestIDHeader = "X-Request-Id"

type Server struct {
	apis   map[string]http.Handler
	logger *slog.Logger
}

func NewServer(transcriber process.Transcriber, generator BlogGenerator, pipeline Runner, logger *slog.Logger) *Server {
	return &Server{
		apis: map[string]http.Handler{
			"transcribe":    NewTranscribeAPI(transcriber, logger),
			"generate-blog": NewGenerateAPI(generator, logger),
			"process":       NewProcessAPI(pipeline, logger),
			"publish":       NewPublishAPI(logger),
			"export":        NewExportAPI(logger),
		},
		logger: logger,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	originalPath := r.URL.Path
	requestID := uuid.New().String()
	rec := httptest.NewRecorder() // records the response to be able to mix writing headers and content

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(RequestIDHeader, requestID)

	// route to api
	head, tail := ShiftPath(r.URL.Path)
	switch {
	case head == "":
		Index(rec)
	case head != "api":
		Error(rec, http.StatusNotFound, fmt.Sprintf("%s is not a valid path", originalPath))
	default:
		head, tail = ShiftPath(tail)
		api, ok := s.apis[head]
		if !ok {
			Error(rec, http.StatusNotFound, fmt.Sprintf("%s is not a valid path", originalPath))
			break
		}
		r.URL.Path = tail
		api.ServeHTTP(rec, r)
	}

	returnResponse(w, rec)
	s.logger.Info("request served", slog.String("path", originalPath), slog.String("method", r.Method), slog.Int("status", rec.Code), slog.String("request", requestID))
}

func returnResponse(w http.ResponseWriter, rec *httptest.ResponseRecorder) {
	for k, v := range rec.Header() {
		w.Header()[k] = v
	}
	w.WriteHeader(rec.Code)
	w.Write(rec.Body.Bytes())
}

// ShiftPath splits off the first component of p, which will be cleaned of
// relative components before processing. head will never contain a slash and
// tail will always be a rooted path without trailing slash.
// See https://blog.merovius.de/posts/2017-06-18-how-not-to-use-an-http-router/
func ShiftPath(p string) (string, string) {
	p = path.Clean("/" + p)

	i := strings.Index(p[1:], "/") + 1
	if i <= 0 {
		return p[1:], "/"
	}
	return p[1:i], p[i:]
}
