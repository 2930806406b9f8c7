package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go-mod.ewintr.nl/vid2blog/model"
)

const maxBodySize = 1 << 20

func Index(w http.ResponseWriter) {
	Message(w, http.StatusOK, "vid2blog index")
}

func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, struct {
		Message string `json:"message"`
	}{
		Message: message,
	})
}

func JSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	body, marshalErr := json.Marshal(response)
	if marshalErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, `{"success":false,"error":%q}`, marshalErr.Error())
		return
	}

	w.WriteHeader(status)
	w.Write(body)
}

// Error writes the failure shape the frontend expects. Only the user facing
// message is sent.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{
		Success: false,
		Error:   message,
	})
}

// StatusFor maps an error kind to the http status of the response.
func StatusFor(err *model.Error) int {
	switch err.Kind {
	case model.KindInvalidInput, model.KindNotFound:
		return http.StatusBadRequest
	case model.KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("could not decode request body: %w", err)
	}

	return nil
}
