package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"quiz-service/internal/quiz"
)

// RecordResponse appends to the response log. The question and answer checks
// and the insert share one transaction so the score is computed against the
// correct answer as it stood at insert time.
//
// Responses are never updated or deleted; submitting twice for the same
// question yields two rows and the newest (highest id) is the one reported.
func (s *SQLiteStore) RecordResponse(ctx context.Context, submission quiz.Submission) (quiz.Response, error) {
	var response quiz.Response

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var correctAnswer sql.NullInt64
		err := tx.QueryRowContext(
			ctx,
			`SELECT correct_answer_id FROM questions WHERE id = ? AND quiz_id = ?`,
			submission.QuestionID,
			submission.QuizID,
		).Scan(&correctAnswer)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errors.Wrapf(quiz.ErrNotFound, "question %d in quiz %d", submission.QuestionID, submission.QuizID)
			}
			return errors.Wrap(err, "load question")
		}

		found, err := answerExists(ctx, tx, submission.QuestionID, submission.AnswerID)
		if err != nil {
			return err
		}
		if !found {
			return errors.Wrapf(quiz.ErrNotFound, "answer %d in question %d", submission.AnswerID, submission.QuestionID)
		}

		now := time.Now().UTC()
		score := quiz.ScoreAnswer(nullableID(correctAnswer), submission.AnswerID)
		result, err := tx.ExecContext(
			ctx,
			`INSERT INTO responses (quiz_id, question_id, answer_id, user_id, score, submitted_at_unix)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			submission.QuizID,
			submission.QuestionID,
			submission.AnswerID,
			submission.UserID,
			score,
			now.UnixNano(),
		)
		if err != nil {
			return errors.Wrap(err, "insert response")
		}
		id, err := result.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "insert response")
		}

		response = quiz.Response{
			ID:          id,
			QuizID:      submission.QuizID,
			QuestionID:  submission.QuestionID,
			AnswerID:    submission.AnswerID,
			UserID:      submission.UserID,
			Score:       score,
			SubmittedAt: now,
		}
		return nil
	})
	if err != nil {
		return quiz.Response{}, err
	}
	return response, nil
}

func (s *SQLiteStore) ListResponses(ctx context.Context, quizID, userID int64) ([]quiz.Response, error) {
	return listResponses(ctx, s.db, quizID, userID)
}

func listResponses(ctx context.Context, q queryer, quizID, userID int64) ([]quiz.Response, error) {
	rows, err := q.QueryContext(
		ctx,
		`SELECT id, quiz_id, question_id, answer_id, user_id, score, submitted_at_unix
		 FROM responses
		 WHERE quiz_id = ? AND user_id = ?
		 ORDER BY id ASC`,
		quizID,
		userID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "list responses of quiz %d", quizID)
	}
	defer rows.Close()

	responses := make([]quiz.Response, 0)
	for rows.Next() {
		var (
			item          quiz.Response
			submittedUnix int64
		)
		if err := rows.Scan(&item.ID, &item.QuizID, &item.QuestionID, &item.AnswerID, &item.UserID, &item.Score, &submittedUnix); err != nil {
			return nil, errors.Wrap(err, "scan response")
		}
		item.SubmittedAt = time.Unix(0, submittedUnix).UTC()
		responses = append(responses, item)
	}

	return responses, errors.Wrap(rows.Err(), "list responses")
}
