package httpapi

type quizRequest struct {
	Title string `json:"title" validate:"required,max=500"`
}

type questionCreateRequest struct {
	Text string `json:"text" validate:"required"`
}

type questionUpdateRequest struct {
	Text            string `json:"text" validate:"required"`
	CorrectAnswerID *int64 `json:"correctAnswerId" validate:"omitempty,gt=0"`
}

type answerRequest struct {
	Text string `json:"text" validate:"required"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}
