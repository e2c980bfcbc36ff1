package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"quiz-service/internal/quiz"
)

func (s *SQLiteStore) ListQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title FROM quizzes ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "list quizzes")
	}
	defer rows.Close()

	quizzes := make([]quiz.Quiz, 0)
	for rows.Next() {
		var item quiz.Quiz
		if err := rows.Scan(&item.ID, &item.Title); err != nil {
			return nil, errors.Wrap(err, "scan quiz")
		}
		quizzes = append(quizzes, item)
	}

	return quizzes, errors.Wrap(rows.Err(), "list quizzes")
}

func (s *SQLiteStore) GetQuiz(ctx context.Context, id int64) (quiz.Quiz, bool, error) {
	return getQuiz(ctx, s.db, id)
}

func getQuiz(ctx context.Context, q queryer, id int64) (quiz.Quiz, bool, error) {
	var item quiz.Quiz
	err := q.QueryRowContext(ctx, `SELECT id, title FROM quizzes WHERE id = ?`, id).Scan(&item.ID, &item.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quiz.Quiz{}, false, nil
		}
		return quiz.Quiz{}, false, errors.Wrapf(err, "get quiz %d", id)
	}
	return item, true, nil
}

func (s *SQLiteStore) CreateQuiz(ctx context.Context, title string) (int64, error) {
	return insertQuiz(ctx, s.db, title)
}

func insertQuiz(ctx context.Context, q queryer, title string) (int64, error) {
	result, err := q.ExecContext(ctx, `INSERT INTO quizzes (title) VALUES (?)`, title)
	if err != nil {
		return 0, errors.Wrap(err, "create quiz")
	}
	id, err := result.LastInsertId()
	return id, errors.Wrap(err, "create quiz")
}

func (s *SQLiteStore) UpdateQuiz(ctx context.Context, id int64, title string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `UPDATE quizzes SET title = ? WHERE id = ?`, title, id)
	if err != nil {
		return false, errors.Wrapf(err, "update quiz %d", id)
	}
	return affected(result, "update quiz")
}

func (s *SQLiteStore) DeleteQuiz(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		return false, errors.Wrapf(err, "delete quiz %d", id)
	}
	return affected(result, "delete quiz")
}

func (s *SQLiteStore) QuizExists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, s.db, "quiz exists", `SELECT 1 FROM quizzes WHERE id = ? LIMIT 1`, id)
}

// ReadQuizSnapshot loads the quiz, its questions, the answers of those
// questions (one join, not one query per question) and the user's responses
// inside a single transaction so the four reads see the same data.
func (s *SQLiteStore) ReadQuizSnapshot(ctx context.Context, quizID, userID int64) (quiz.QuizSnapshot, bool, error) {
	var (
		snapshot quiz.QuizSnapshot
		found    bool
	)

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		snapshot.Quiz, found, err = getQuiz(ctx, tx, quizID)
		if err != nil || !found {
			return err
		}

		if snapshot.Questions, err = listQuestions(ctx, tx, quizID); err != nil {
			return err
		}
		if snapshot.Answers, err = listQuizAnswers(ctx, tx, quizID); err != nil {
			return err
		}
		snapshot.Responses, err = listResponses(ctx, tx, quizID, userID)
		return err
	})
	if err != nil {
		return quiz.QuizSnapshot{}, false, err
	}
	if !found {
		return quiz.QuizSnapshot{}, false, nil
	}
	return snapshot, true, nil
}

func (s *SQLiteStore) CreateQuizWithQuestions(ctx context.Context, title string, drafts []quiz.QuestionDraft) (int64, error) {
	var quizID int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		quizID, err = insertQuiz(ctx, tx, title)
		if err != nil {
			return err
		}

		for _, draft := range drafts {
			questionID, err := insertQuestion(ctx, tx, quizID, draft.Text)
			if err != nil {
				return err
			}

			var correctAnswerID *int64
			for idx, text := range draft.Answers {
				answerID, err := insertAnswer(ctx, tx, questionID, text)
				if err != nil {
					return err
				}
				if idx == draft.CorrectIndex {
					id := answerID
					correctAnswerID = &id
				}
			}

			if correctAnswerID != nil {
				if _, err := tx.ExecContext(
					ctx,
					`UPDATE questions SET correct_answer_id = ? WHERE id = ?`,
					*correctAnswerID,
					questionID,
				); err != nil {
					return errors.Wrapf(err, "set correct answer for question %d", questionID)
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
