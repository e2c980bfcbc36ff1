package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/golang/glog"

	"quiz-service/internal/config"
	"quiz-service/internal/opentdb"
	"quiz-service/internal/quiz"
	"quiz-service/internal/storage"
)

func main() {
	title := flag.String("title", "", "title of the imported quiz (required)")
	amount := flag.Int("amount", 10, "number of OpenTriviaDB questions to fetch")
	timeout := flag.Duration("timeout", 15*time.Second, "overall import timeout")
	flag.Parse()
	defer glog.Flush()

	if *title == "" {
		glog.Exit("-title is required")
	}

	cfg, err := config.Load()
	if err != nil {
		glog.Exitf("load config: %v", err)
	}

	store, err := storage.Open(cfg)
	if err != nil {
		glog.Exitf("open store: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := opentdb.NewClient(&http.Client{Timeout: *timeout})
	raw, err := client.FetchQuestions(ctx, *amount)
	if err != nil {
		glog.Exitf("fetch questions: %v", err)
	}

	id, err := quiz.NewService(store).ImportQuiz(ctx, *title, quiz.BuildDrafts(raw))
	if err != nil {
		glog.Exitf("import quiz: %v", err)
	}

	glog.Infof("imported %d questions into quiz %d", len(raw), id)
	fmt.Printf("%d\n", id)
}
