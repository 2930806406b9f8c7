package handler

import (
	"fmt"
	"net/http"
	"time"

	"go-mod.ewintr.nl/vid2blog/model"
	"go-mod.ewintr.nl/vid2blog/process"
	"golang.org/x/exp/slog"
)

// PublishAPI pretends to publish a post. Nothing leaves the service.
type PublishAPI struct {
	now    func() time.Time
	logger *slog.Logger
}

func NewPublishAPI(logger *slog.Logger) *PublishAPI {
	return &PublishAPI{
		now:    time.Now,
		logger: logger,
	}
}

func (p *PublishAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && sub == "":
		p.Publish(w, r)
	default:
		Error(w, http.StatusNotFound, fmt.Sprintf("method %s with subpath %q was not registered in the publish api", r.Method, sub))
	}
}

func (p *PublishAPI) Publish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BlogPost string            `json:"blogPost"`
		Platform string            `json:"platform"`
		Metadata model.SEOMetadata `json:"metadata"`
	}
	if err := decodeBody(r, &req); err != nil {
		returnErr(p.logger, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.BlogPost == "" || req.Platform == "" {
		Error(w, http.StatusBadRequest, "Blog post and platform are required")
		return
	}

	p.logger.Info("publishing blog post", slog.String("platform", req.Platform), slog.String("title", req.Metadata.Title))
	JSON(w, http.StatusOK, struct {
		Success     bool   `json:"success"`
		Platform    string `json:"platform"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	}{
		Success:     true,
		Platform:    req.Platform,
		URL:         process.PublishURL(req.Metadata.Title),
		PublishedAt: p.now().UTC().Format(time.RFC3339),
	})
}

type ExportAPI struct {
	logger *slog.Logger
}

func NewExportAPI(logger *slog.Logger) *ExportAPI {
	return &ExportAPI{logger: logger}
}

func (e *ExportAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && sub == "":
		e.Export(w, r)
	default:
		Error(w, http.StatusNotFound, fmt.Sprintf("method %s with subpath %q was not registered in the export api", r.Method, sub))
	}
}

func (e *ExportAPI) Export(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BlogPost string         `json:"blogPost"`
		Title    string         `json:"title"`
		Format   process.Format `json:"format"`
	}
	if err := decodeBody(r, &req); err != nil {
		returnErr(e.logger, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.BlogPost == "" {
		Error(w, http.StatusBadRequest, "Blog post is required")
		return
	}

	body, contentType, filename, err := process.Export(req.Title, req.BlogPost, req.Format)
	if err != nil {
		returnErr(e.logger, w, http.StatusBadRequest, fmt.Sprintf("Unsupported format %q", req.Format), err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
