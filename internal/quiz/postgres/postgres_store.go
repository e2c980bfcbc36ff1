// Package postgres stores quizzes in PostgreSQL through GORM.
package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type quizRow struct {
	ID    int64  `gorm:"primaryKey"`
	Title string `gorm:"not null"`
}

func (quizRow) TableName() string { return "quizzes" }

type questionRow struct {
	ID              int64  `gorm:"primaryKey"`
	QuizID          int64  `gorm:"not null;index"`
	Text            string `gorm:"not null"`
	CorrectAnswerID *int64
}

func (questionRow) TableName() string { return "questions" }

type answerRow struct {
	ID         int64  `gorm:"primaryKey"`
	QuestionID int64  `gorm:"not null;index"`
	Text       string `gorm:"not null"`
}

func (answerRow) TableName() string { return "answers" }

// responseRow ids come from a sequence, so ordering by id is submission order.
type responseRow struct {
	ID          int64     `gorm:"primaryKey"`
	QuizID      int64     `gorm:"not null;index:idx_responses_quiz_user,priority:1"`
	QuestionID  int64     `gorm:"not null"`
	AnswerID    int64     `gorm:"not null"`
	UserID      int64     `gorm:"not null;index:idx_responses_quiz_user,priority:2"`
	Score       int       `gorm:"not null;check:score IN (0, 1)"`
	SubmittedAt time.Time `gorm:"not null"`
}

func (responseRow) TableName() string { return "responses" }

type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres database")
	}

	store := &PostgresStore{db: db}
	if err := db.AutoMigrate(&quizRow{}, &questionRow{}, &answerRow{}, &responseRow{}); err != nil {
		_ = store.Close()
		return nil, errors.Wrap(err, "migrate postgres schema")
	}

	glog.V(2).Info("postgres store ready")
	return store, nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "postgres handle")
	}
	return errors.Wrap(sqlDB.PingContext(ctx), "ping postgres")
}

// readSnapshotTx gives the aggregator's reads one consistent view.
var readSnapshotTx = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

func rowsChanged(result *gorm.DB, op string) (bool, error) {
	if result.Error != nil {
		return false, errors.Wrap(result.Error, op)
	}
	return result.RowsAffected > 0, nil
}

func take(result *gorm.DB, op string) (bool, error) {
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, errors.Wrap(result.Error, op)
	}
	return true, nil
}

func count(query *gorm.DB, op string) (bool, error) {
	var n int64
	if err := query.Count(&n).Error; err != nil {
		return false, errors.Wrap(err, op)
	}
	return n > 0, nil
}
