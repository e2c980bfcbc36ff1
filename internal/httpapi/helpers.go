package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang/glog"
	"github.com/gorilla/mux"

	"quiz-service/internal/quiz"
)

const (
	userIDHeader = "X-User-ID"
	maxBodyBytes = 1 << 20
)

var errInvalidUserID = errors.New("X-User-ID must be a positive integer")

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, quiz.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, quiz.ErrValidation):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		glog.Errorf("request %s %s %s failed: %v", requestID(r.Context()), r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "request failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{
		Error:     message,
		RequestID: requestID(r.Context()),
	})
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func writeRouteNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found")
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeCreated(w http.ResponseWriter, location string, id int64) {
	w.Header().Set("Location", location)
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// pathID reads a numeric route variable. Route patterns only admit digits, so
// failure here means the value overflowed int64.
func pathID(r *http.Request, name string) (int64, bool) {
	parsed, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func (a *API) userID(r *http.Request) (int64, error) {
	value := strings.TrimSpace(r.Header.Get(userIDHeader))
	if value == "" {
		return a.defaultUserID, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, errInvalidUserID
	}
	return parsed, nil
}

// decodeBody decodes a JSON body into dst and runs its validate tags.
func (a *API) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	if err := a.validate.Struct(dst); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			first := fieldErrors[0]
			return errors.New(first.Field() + " failed " + first.Tag() + " validation")
		}
		return err
	}
	return nil
}
