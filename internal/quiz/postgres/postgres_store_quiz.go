package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"quiz-service/internal/quiz"
)

func (s *PostgresStore) ListQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	var rows []quizRow
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list quizzes")
	}

	quizzes := make([]quiz.Quiz, 0, len(rows))
	for _, row := range rows {
		quizzes = append(quizzes, quiz.Quiz{ID: row.ID, Title: row.Title})
	}
	return quizzes, nil
}

func (s *PostgresStore) GetQuiz(ctx context.Context, id int64) (quiz.Quiz, bool, error) {
	return getQuiz(s.db.WithContext(ctx), id)
}

func getQuiz(db *gorm.DB, id int64) (quiz.Quiz, bool, error) {
	var row quizRow
	found, err := take(db.Where("id = ?", id).Take(&row), "get quiz")
	if err != nil || !found {
		return quiz.Quiz{}, false, err
	}
	return quiz.Quiz{ID: row.ID, Title: row.Title}, true, nil
}

func (s *PostgresStore) CreateQuiz(ctx context.Context, title string) (int64, error) {
	row := quizRow{Title: title}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, errors.Wrap(err, "create quiz")
	}
	return row.ID, nil
}

func (s *PostgresStore) UpdateQuiz(ctx context.Context, id int64, title string) (bool, error) {
	return rowsChanged(
		s.db.WithContext(ctx).Model(&quizRow{}).Where("id = ?", id).Update("title", title),
		"update quiz",
	)
}

func (s *PostgresStore) DeleteQuiz(ctx context.Context, id int64) (bool, error) {
	return rowsChanged(s.db.WithContext(ctx).Where("id = ?", id).Delete(&quizRow{}), "delete quiz")
}

func (s *PostgresStore) QuizExists(ctx context.Context, id int64) (bool, error) {
	return count(s.db.WithContext(ctx).Model(&quizRow{}).Where("id = ?", id), "quiz exists")
}

func (s *PostgresStore) ReadQuizSnapshot(ctx context.Context, quizID, userID int64) (quiz.QuizSnapshot, bool, error) {
	var (
		snapshot quiz.QuizSnapshot
		found    bool
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		snapshot.Quiz, found, err = getQuiz(tx, quizID)
		if err != nil || !found {
			return err
		}

		if snapshot.Questions, err = listQuestions(tx, quizID); err != nil {
			return err
		}

		var answers []answerRow
		if err := tx.Table("answers").
			Select("answers.id, answers.question_id, answers.text").
			Joins("JOIN questions ON questions.id = answers.question_id").
			Where("questions.quiz_id = ?", quizID).
			Order("answers.id ASC").
			Scan(&answers).Error; err != nil {
			return errors.Wrap(err, "list quiz answers")
		}
		snapshot.Answers = toAnswers(answers)

		snapshot.Responses, err = listResponses(tx, quizID, userID)
		return err
	}, readSnapshotTx)
	if err != nil {
		return quiz.QuizSnapshot{}, false, err
	}
	if !found {
		return quiz.QuizSnapshot{}, false, nil
	}
	return snapshot, true, nil
}

func (s *PostgresStore) CreateQuizWithQuestions(ctx context.Context, title string, drafts []quiz.QuestionDraft) (int64, error) {
	var quizID int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quizRecord := quizRow{Title: title}
		if err := tx.Create(&quizRecord).Error; err != nil {
			return errors.Wrap(err, "create quiz")
		}
		quizID = quizRecord.ID

		for _, draft := range drafts {
			question := questionRow{QuizID: quizID, Text: draft.Text}
			if err := tx.Create(&question).Error; err != nil {
				return errors.Wrap(err, "create question")
			}

			for idx, text := range draft.Answers {
				answer := answerRow{QuestionID: question.ID, Text: text}
				if err := tx.Create(&answer).Error; err != nil {
					return errors.Wrap(err, "create answer")
				}
				if idx != draft.CorrectIndex {
					continue
				}
				if err := tx.Model(&questionRow{}).
					Where("id = ?", question.ID).
					Update("correct_answer_id", answer.ID).Error; err != nil {
					return errors.Wrapf(err, "set correct answer for question %d", question.ID)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return quizID, nil
}
