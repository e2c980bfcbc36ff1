package quiz

import (
	"html"
	"math/rand"

	"quiz-service/internal/opentdb"
)

type demoQuiz struct {
	title     string
	questions []QuestionDraft
}

var demoQuizzes = []demoQuiz{
	{
		title: "My first quiz",
		questions: []QuestionDraft{
			{Text: "My first question", Answers: []string{"Answer 1", "Answer 2"}, CorrectIndex: 0},
			{Text: "My second question", Answers: []string{"Answer 1", "Answer 2"}, CorrectIndex: 1},
		},
	},
	{
		title: "My second quiz",
		questions: []QuestionDraft{
			{Text: "What is the capital of France?", Answers: []string{"Paris", "Lyon", "Nice"}, CorrectIndex: 0},
		},
	},
}

// BuildDrafts turns OpenTriviaDB questions into drafts with HTML entities
// decoded and the answer order shuffled.
func BuildDrafts(raw []opentdb.RawQuestion) []QuestionDraft {
	drafts := make([]QuestionDraft, 0, len(raw))
	for _, item := range raw {
		drafts = append(drafts, buildDraft(item))
	}
	return drafts
}

func buildDraft(raw opentdb.RawQuestion) QuestionDraft {
	type choice struct {
		text      string
		isCorrect bool
	}

	choices := make([]choice, 0, len(raw.IncorrectAnswers)+1)
	for _, incorrect := range raw.IncorrectAnswers {
		choices = append(choices, choice{
			text:      html.UnescapeString(incorrect),
			isCorrect: false,
		})
	}

	choices = append(choices, choice{
		text:      html.UnescapeString(raw.CorrectAnswer),
		isCorrect: true,
	})

	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	draft := QuestionDraft{
		Text:         html.UnescapeString(raw.Question),
		Answers:      make([]string, len(choices)),
		CorrectIndex: -1,
	}
	for idx, candidate := range choices {
		draft.Answers[idx] = candidate.text
		if candidate.isCorrect {
			draft.CorrectIndex = idx
		}
	}
	return draft
}
