package httpapi

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"quiz-service/internal/quiz"
)

// API serves the quiz endpoints. Requests without an X-User-ID header act as
// defaultUserID.
type API struct {
	service       *quiz.Service
	defaultUserID int64
	validate      *validator.Validate
}

func NewAPI(service *quiz.Service, defaultUserID int64) *API {
	if defaultUserID <= 0 {
		defaultUserID = 1
	}

	validate := validator.New()
	// Report JSON field names in validation errors.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &API{
		service:       service,
		defaultUserID: defaultUserID,
		validate:      validate,
	}
}
