package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-mod.ewintr.nl/vid2blog/model"
	"go-mod.ewintr.nl/vid2blog/process"
	"golang.org/x/exp/slog"
)

type BlogGenerator interface {
	GenerateBlogPost(ctx context.Context, transcript string, md model.Metadata, opts model.GenerationOptions) (string, error)
	GenerateSEOMetadata(ctx context.Context, post, title string) model.SEOMetadata
}

type GenerateAPI struct {
	generator BlogGenerator
	logger    *slog.Logger
}

func NewGenerateAPI(generator BlogGenerator, logger *slog.Logger) *GenerateAPI {
	return &GenerateAPI{
		generator: generator,
		logger:    logger,
	}
}

func (g *GenerateAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && sub == "":
		g.Generate(w, r)
	default:
		Error(w, http.StatusNotFound, fmt.Sprintf("method %s with subpath %q was not registered in the generate api", r.Method, sub))
	}
}

func (g *GenerateAPI) Generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcript string                  `json:"transcript"`
		Metadata   model.Metadata          `json:"metadata"`
		Options    model.GenerationOptions `json:"options"`
	}
	if err := decodeBody(r, &req); err != nil {
		returnErr(g.logger, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Transcript == "" {
		Error(w, http.StatusBadRequest, process.MessageTranscriptRequired)
		return
	}
	fallback := model.DefaultMetadata(time.Now())
	if strings.TrimSpace(req.Metadata.Title) == "" {
		req.Metadata.Title = fallback.Title
	}
	if strings.TrimSpace(req.Metadata.Description) == "" {
		req.Metadata.Description = fallback.Description
	}

	post, err := g.generator.GenerateBlogPost(r.Context(), req.Transcript, req.Metadata, req.Options.WithDefaults())
	if err != nil {
		e, ok := model.AsError(err)
		if !ok {
			e = model.NewError(model.KindInternal, model.CodeGenerationFailed, process.MessageGenerationFailed, err)
		}
		message := e.Message
		switch e.Kind {
		case model.KindUpstreamUnavailable:
			message = process.MessageServiceUnavailable
		case model.KindInternal:
			message = process.MessageGenerationFailed
		}
		returnErr(g.logger, w, StatusFor(e), message, e)
		return
	}
	seo := g.generator.GenerateSEOMetadata(r.Context(), post, req.Metadata.Title)

	JSON(w, http.StatusOK, struct {
		Success     bool              `json:"success"`
		BlogPost    string            `json:"blogPost"`
		SEOMetadata model.SEOMetadata `json:"seoMetadata"`
	}{
		Success:     true,
		BlogPost:    post,
		SEOMetadata: seo,
	})
}
