package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"quiz-service/internal/quiz"
)

func (s *PostgresStore) ListQuestions(ctx context.Context, quizID int64) ([]quiz.Question, error) {
	return listQuestions(s.db.WithContext(ctx), quizID)
}

func listQuestions(db *gorm.DB, quizID int64) ([]quiz.Question, error) {
	var rows []questionRow
	if err := db.Where("quiz_id = ?", quizID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list questions of quiz %d", quizID)
	}

	questions := make([]quiz.Question, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, toQuestion(row))
	}
	return questions, nil
}

func toQuestion(row questionRow) quiz.Question {
	return quiz.Question{
		ID:              row.ID,
		QuizID:          row.QuizID,
		Text:            row.Text,
		CorrectAnswerID: row.CorrectAnswerID,
	}
}

func (s *PostgresStore) GetQuestion(ctx context.Context, quizID, id int64) (quiz.Question, bool, error) {
	var row questionRow
	found, err := take(s.db.WithContext(ctx).Where("id = ? AND quiz_id = ?", id, quizID).Take(&row), "get question")
	if err != nil || !found {
		return quiz.Question{}, false, err
	}
	return toQuestion(row), true, nil
}

func (s *PostgresStore) CreateQuestion(ctx context.Context, quizID int64, text string) (int64, error) {
	row := questionRow{QuizID: quizID, Text: text}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, errors.Wrap(err, "create question")
	}
	return row.ID, nil
}

func (s *PostgresStore) UpdateQuestion(ctx context.Context, quizID, id int64, text string, correctAnswerID *int64) (bool, error) {
	var correct any
	if correctAnswerID != nil {
		correct = *correctAnswerID
	}
	return rowsChanged(
		s.db.WithContext(ctx).
			Model(&questionRow{}).
			Where("id = ? AND quiz_id = ?", id, quizID).
			Updates(map[string]any{"text": text, "correct_answer_id": correct}),
		"update question",
	)
}

func (s *PostgresStore) DeleteQuestion(ctx context.Context, quizID, id int64) (bool, error) {
	return rowsChanged(
		s.db.WithContext(ctx).Where("id = ? AND quiz_id = ?", id, quizID).Delete(&questionRow{}),
		"delete question",
	)
}

func (s *PostgresStore) QuestionExists(ctx context.Context, quizID, id int64) (bool, error) {
	return count(
		s.db.WithContext(ctx).Model(&questionRow{}).Where("id = ? AND quiz_id = ?", id, quizID),
		"question exists",
	)
}
