package postgres

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"quiz-service/internal/quiz"
)

func (s *PostgresStore) RecordResponse(ctx context.Context, submission quiz.Submission) (quiz.Response, error) {
	var response quiz.Response

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question questionRow
		found, err := take(
			tx.Select("id", "correct_answer_id").
				Where("id = ? AND quiz_id = ?", submission.QuestionID, submission.QuizID).
				Take(&question),
			"load question",
		)
		if err != nil {
			return err
		}
		if !found {
			return errors.Wrapf(quiz.ErrNotFound, "question %d in quiz %d", submission.QuestionID, submission.QuizID)
		}

		found, err = count(
			tx.Model(&answerRow{}).Where("id = ? AND question_id = ?", submission.AnswerID, submission.QuestionID),
			"answer exists",
		)
		if err != nil {
			return err
		}
		if !found {
			return errors.Wrapf(quiz.ErrNotFound, "answer %d in question %d", submission.AnswerID, submission.QuestionID)
		}

		row := responseRow{
			QuizID:      submission.QuizID,
			QuestionID:  submission.QuestionID,
			AnswerID:    submission.AnswerID,
			UserID:      submission.UserID,
			Score:       quiz.ScoreAnswer(question.CorrectAnswerID, submission.AnswerID),
			SubmittedAt: time.Now().UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return errors.Wrap(err, "insert response")
		}
		response = toResponse(row)
		return nil
	})
	if err != nil {
		return quiz.Response{}, err
	}
	return response, nil
}

func (s *PostgresStore) ListResponses(ctx context.Context, quizID, userID int64) ([]quiz.Response, error) {
	return listResponses(s.db.WithContext(ctx), quizID, userID)
}

func listResponses(db *gorm.DB, quizID, userID int64) ([]quiz.Response, error) {
	var rows []responseRow
	if err := db.Where("quiz_id = ? AND user_id = ?", quizID, userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list responses of quiz %d", quizID)
	}

	responses := make([]quiz.Response, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, toResponse(row))
	}
	return responses, nil
}

func toResponse(row responseRow) quiz.Response {
	return quiz.Response{
		ID:          row.ID,
		QuizID:      row.QuizID,
		QuestionID:  row.QuestionID,
		AnswerID:    row.AnswerID,
		UserID:      row.UserID,
		Score:       row.Score,
		SubmittedAt: row.SubmittedAt.UTC(),
	}
}
