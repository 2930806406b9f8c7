package handler

import (
	"context"
	"fmt"
	"net/http"

	"go-mod.ewintr.nl/vid2blog/model"
	"go-mod.ewintr.nl/vid2blog/process"
	"golang.org/x/exp/slog"
)

type Runner interface {
	Run(ctx context.Context, req process.Request) model.Result
}

type ProcessAPI struct {
	pipeline Runner
	logger   *slog.Logger
}

func NewProcessAPI(pipeline Runner, logger *slog.Logger) *ProcessAPI {
	return &ProcessAPI{
		pipeline: pipeline,
		logger:   logger,
	}
}

func (p *ProcessAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && sub == "":
		p.Process(w, r)
	default:
		Error(w, http.StatusNotFound, fmt.Sprintf("method %s with subpath %q was not registered in the process api", r.Method, sub))
	}
}

func (p *ProcessAPI) Process(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VideoURL  string         `json:"videoUrl"`
		Tone      model.Tone     `json:"tone"`
		WordCount int            `json:"wordCount"`
		Audience  model.Audience `json:"audience"`
	}
	if err := decodeBody(r, &req); err != nil {
		returnErr(p.logger, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res := p.pipeline.Run(r.Context(), process.Request{
		VideoURL: req.VideoURL,
		Options: model.GenerationOptions{
			Tone:      req.Tone,
			WordCount: req.WordCount,
			Audience:  req.Audience,
		},
	})
	if !res.Success {
		e := res.Error
		if e == nil {
			e = model.NewError(model.KindInternal, model.CodeInternal, "An unexpected error occurred", nil)
		}
		Error(w, StatusFor(e), e.Message)
		return
	}

	JSON(w, http.StatusOK, res)
}
