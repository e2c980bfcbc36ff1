package quiz

import "fmt"

// LinksBasePath prefixes the navigation links emitted with a quiz view.
const LinksBasePath = "/api/quizzes"

type QuizView struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	Questions  []QuestionView    `json:"questions"`
	TotalScore int               `json:"totalScore"`
	Links      map[string]string `json:"links"`
}

type QuestionView struct {
	ID              int64        `json:"id"`
	Text            string       `json:"text"`
	Answers         []AnswerView `json:"answers"`
	CorrectAnswerID *int64       `json:"correctAnswerId"`
	UserAnswerID    *int64       `json:"userAnswerId"`
	Score           *int         `json:"score"`
}

type AnswerView struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

type userAnswer struct {
	answerID int64
	score    int
}

// BuildQuizView nests answers and the user's responses under their questions.
// When several responses exist for one question the last one in the snapshot
// wins, which is the most recent submission since responses are ordered by id.
func BuildQuizView(snapshot QuizSnapshot) QuizView {
	answersByQuestion := make(map[int64][]AnswerView)
	for _, answer := range snapshot.Answers {
		answersByQuestion[answer.QuestionID] = append(answersByQuestion[answer.QuestionID], AnswerView{
			ID:   answer.ID,
			Text: answer.Text,
		})
	}

	userAnswers := make(map[int64]userAnswer, len(snapshot.Responses))
	for _, response := range snapshot.Responses {
		userAnswers[response.QuestionID] = userAnswer{
			answerID: response.AnswerID,
			score:    response.Score,
		}
	}

	view := QuizView{
		ID:        snapshot.Quiz.ID,
		Title:     snapshot.Quiz.Title,
		Questions: make([]QuestionView, 0, len(snapshot.Questions)),
		Links:     quizLinks(snapshot.Quiz.ID),
	}

	for _, question := range snapshot.Questions {
		answers := answersByQuestion[question.ID]
		if answers == nil {
			answers = []AnswerView{}
		}

		item := QuestionView{
			ID:              question.ID,
			Text:            question.Text,
			Answers:         answers,
			CorrectAnswerID: question.CorrectAnswerID,
		}
		if ua, ok := userAnswers[question.ID]; ok {
			answerID := ua.answerID
			score := ua.score
			item.UserAnswerID = &answerID
			item.Score = &score
			view.TotalScore += score
		}
		view.Questions = append(view.Questions, item)
	}

	return view
}

func quizLinks(quizID int64) map[string]string {
	return map[string]string{
		"self":      fmt.Sprintf("%s/%d", LinksBasePath, quizID),
		"questions": fmt.Sprintf("%s/%d/questions", LinksBasePath, quizID),
	}
}
