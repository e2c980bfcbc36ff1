package sqlite

import (
	"context"

	"github.com/pkg/errors"
)

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	// No FK constraints: deleting a quiz or question leaves its children in
	// place, and answers may be created under any question id.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS quizzes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quiz_id INTEGER NOT NULL,
			text TEXT NOT NULL,
			correct_answer_id INTEGER NULL
		);`,
		`CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question_id INTEGER NOT NULL,
			text TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS responses (
			-- id orders the log; the latest row per question is the user's current answer.
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quiz_id INTEGER NOT NULL,
			question_id INTEGER NOT NULL,
			answer_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			score INTEGER NOT NULL CHECK (score IN (0, 1)),
			submitted_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_quiz ON questions(quiz_id);`,
		`CREATE INDEX IF NOT EXISTS idx_answers_question ON answers(question_id);`,
		`CREATE INDEX IF NOT EXISTS idx_responses_quiz_user ON responses(quiz_id, user_id, id);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
