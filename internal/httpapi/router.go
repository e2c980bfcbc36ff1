package httpapi

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type Options struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	// AccessLog disables the combined access log when false.
	AccessLog bool
}

// routePrefixes lists the mount points of the quiz routes. Links and
// Location headers always use the first one.
var routePrefixes = []string{"/api/quizzes", "/quizzes"}

func NewRouter(api *API, opts Options) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = withRequestID(http.HandlerFunc(writeRouteNotFound))
	r.MethodNotAllowedHandler = withRequestID(http.HandlerFunc(writeMethodNotAllowed))
	r.Use(withRequestID, withTimeout(opts.RequestTimeout))

	r.HandleFunc("/healthz", api.HandleHealth).Methods(http.MethodGet)

	for _, prefix := range routePrefixes {
		r.HandleFunc(prefix, api.HandleListQuizzes).Methods(http.MethodGet)
		r.HandleFunc(prefix+"/", api.HandleListQuizzes).Methods(http.MethodGet)
		r.HandleFunc(prefix, api.HandleCreateQuiz).Methods(http.MethodPost)
		r.HandleFunc(prefix+"/", api.HandleCreateQuiz).Methods(http.MethodPost)

		quizPath := prefix + "/{id:[0-9]+}"
		r.HandleFunc(quizPath, api.HandleGetQuiz).Methods(http.MethodGet)
		r.HandleFunc(quizPath, api.HandleUpdateQuiz).Methods(http.MethodPut)
		r.HandleFunc(quizPath, api.HandleDeleteQuiz).Methods(http.MethodDelete)

		r.HandleFunc(quizPath+"/questions", api.HandleCreateQuestion).Methods(http.MethodPost)
		questionPath := quizPath + "/questions/{qid:[0-9]+}"
		r.HandleFunc(questionPath, api.HandleUpdateQuestion).Methods(http.MethodPut)
		r.HandleFunc(questionPath, api.HandleDeleteQuestion).Methods(http.MethodDelete)

		r.HandleFunc(questionPath+"/answers", api.HandleCreateAnswer).Methods(http.MethodPost)
		answerPath := questionPath + "/answers/{aid:[0-9]+}"
		r.HandleFunc(answerPath, api.HandleUpdateAnswer).Methods(http.MethodPut)
		r.HandleFunc(answerPath, api.HandleDeleteAnswer).Methods(http.MethodDelete)

		r.HandleFunc(questionPath+"/answer/{aid:[0-9]+}", api.HandleSubmitAnswer).Methods(http.MethodPost)
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	var handler http.Handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", userIDHeader, requestIDHeader}),
		handlers.ExposedHeaders([]string{"Location", requestIDHeader}),
	)(r)

	if opts.AccessLog {
		handler = handlers.CombinedLoggingHandler(os.Stderr, handler)
	}
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)
}
