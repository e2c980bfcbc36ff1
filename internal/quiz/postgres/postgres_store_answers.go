package postgres

import (
	"context"

	"github.com/pkg/errors"

	"quiz-service/internal/quiz"
)

func (s *PostgresStore) ListAnswers(ctx context.Context, questionID int64) ([]quiz.Answer, error) {
	var rows []answerRow
	if err := s.db.WithContext(ctx).Where("question_id = ?", questionID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrapf(err, "list answers of question %d", questionID)
	}
	return toAnswers(rows), nil
}

func toAnswers(rows []answerRow) []quiz.Answer {
	answers := make([]quiz.Answer, 0, len(rows))
	for _, row := range rows {
		answers = append(answers, quiz.Answer{ID: row.ID, QuestionID: row.QuestionID, Text: row.Text})
	}
	return answers
}

func (s *PostgresStore) GetAnswer(ctx context.Context, questionID, id int64) (quiz.Answer, bool, error) {
	var row answerRow
	found, err := take(s.db.WithContext(ctx).Where("id = ? AND question_id = ?", id, questionID).Take(&row), "get answer")
	if err != nil || !found {
		return quiz.Answer{}, false, err
	}
	return quiz.Answer{ID: row.ID, QuestionID: row.QuestionID, Text: row.Text}, true, nil
}

func (s *PostgresStore) CreateAnswer(ctx context.Context, questionID int64, text string) (int64, error) {
	row := answerRow{QuestionID: questionID, Text: text}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, errors.Wrap(err, "create answer")
	}
	return row.ID, nil
}

func (s *PostgresStore) UpdateAnswer(ctx context.Context, questionID, id int64, text string) (bool, error) {
	return rowsChanged(
		s.db.WithContext(ctx).Model(&answerRow{}).Where("id = ? AND question_id = ?", id, questionID).Update("text", text),
		"update answer",
	)
}

func (s *PostgresStore) DeleteAnswer(ctx context.Context, questionID, id int64) (bool, error) {
	return rowsChanged(
		s.db.WithContext(ctx).Where("id = ? AND question_id = ?", id, questionID).Delete(&answerRow{}),
		"delete answer",
	)
}

func (s *PostgresStore) AnswerExists(ctx context.Context, questionID, id int64) (bool, error) {
	return count(
		s.db.WithContext(ctx).Model(&answerRow{}).Where("id = ? AND question_id = ?", id, questionID),
		"answer exists",
	)
}
