package handler

import (
	"fmt"
	"net/http"

	"go-mod.ewintr.nl/vid2blog/fetch"
	"go-mod.ewintr.nl/vid2blog/model"
	"go-mod.ewintr.nl/vid2blog/process"
	"golang.org/x/exp/slog"
)

type TranscribeAPI struct {
	transcriber process.Transcriber
	logger      *slog.Logger
}

func NewTranscribeAPI(transcriber process.Transcriber, logger *slog.Logger) *TranscribeAPI {
	return &TranscribeAPI{
		transcriber: transcriber,
		logger:      logger,
	}
}

func (t *TranscribeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodPost && sub == "":
		t.Transcribe(w, r)
	default:
		Error(w, http.StatusNotFound, fmt.Sprintf("method %s with subpath %q was not registered in the transcribe api", r.Method, sub))
	}
}

func (t *TranscribeAPI) Transcribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VideoURL string `json:"videoUrl"`
	}
	if err := decodeBody(r, &req); err != nil {
		returnErr(t.logger, w, http.StatusBadRequest, fetch.MessageInvalidURL, err)
		return
	}

	tr, err := t.transcriber.Transcribe(r.Context(), req.VideoURL)
	if err != nil {
		e, ok := model.AsError(err)
		if !ok {
			e = model.NewError(model.KindInternal, model.CodeInternal, fetch.MessageInternal, err)
		}
		returnErr(t.logger, w, StatusFor(e), e.Message, e)
		return
	}

	JSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		fetch.Transcription
	}{
		Success:       true,
		Transcription: tr,
	})
}

func returnErr(logger *slog.Logger, w http.ResponseWriter, status int, message string, err error) {
	logger.Error(message, slog.Int("status", status), slog.Any("error", err))
	Error(w, status, message)
}
