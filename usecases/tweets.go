package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tweet-server/entities"
	"tweet-server/inference"
	"tweet-server/metrics"
	"tweet-server/repositories"
)

var (
	ErrInvalidMessage = errors.New("message is required")
	ErrTweetNotFound  = errors.New("tweet not found")
	ErrStorage        = errors.New("storage failure")
)

// Generator is the inference capability the use case needs.
type Generator interface {
	Validate() error
	Chat(ctx context.Context, message string) (*inference.ChatResponse, error)
}

// Publisher receives tweet lifecycle events.
type Publisher interface {
	Publish(event entities.TweetEvent)
}

type TweetUseCase struct {
	Storage   repositories.Storage
	Generator Generator
	Publisher Publisher
	Metrics   metrics.Recorder
}

func NewTweetUseCase(storage repositories.Storage, generator Generator, publisher Publisher, recorder metrics.Recorder) *TweetUseCase {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &TweetUseCase{
		Storage:   storage,
		Generator: generator,
		Publisher: publisher,
		Metrics:   recorder,
	}
}

// GenerateTweet asks the inference service for a tweet about message and
// stores it. Nothing is persisted unless the upstream call fully succeeds.
func (uc *TweetUseCase) GenerateTweet(ctx context.Context, message, style string) (*entities.Tweet, error) {
	if message == "" {
		uc.Metrics.RecordGeneration(metrics.OutcomeInvalid)
		return nil, ErrInvalidMessage
	}

	if err := uc.Generator.Validate(); err != nil {
		uc.Metrics.RecordGeneration(metrics.OutcomeMisconfigured)
		return nil, err
	}

	start := time.Now()
	resp, err := uc.Generator.Chat(ctx, BuildPrompt(message))
	uc.Metrics.RecordUpstreamLatency(time.Since(start))
	uc.Metrics.RecordUpstreamStatus(upstreamStatus(resp, err))
	if err != nil {
		if errors.Is(err, inference.ErrMisconfigured) {
			uc.Metrics.RecordGeneration(metrics.OutcomeMisconfigured)
		} else {
			uc.Metrics.RecordGeneration(metrics.OutcomeUpstreamError)
		}
		return nil, err
	}

	text, err := inference.Normalize(resp.Body)
	if err != nil {
		uc.Metrics.RecordGeneration(metrics.OutcomeUpstreamError)
		return nil, err
	}
	if text == "" {
		uc.Metrics.RecordGeneration(metrics.OutcomeUpstreamError)
		return nil, fmt.Errorf("%w: empty generation", inference.ErrUpstream)
	}

	if style == "" {
		style = entities.DefaultStyle
	}

	tweet, err := uc.Storage.CreateTweet(ctx, message, text, style)
	if err != nil {
		uc.Metrics.RecordGeneration(metrics.OutcomeStorageError)
		return nil, fmt.Errorf("%w: create tweet: %v", ErrStorage, err)
	}

	uc.Metrics.RecordGeneration(metrics.OutcomeSuccess)
	slog.Info("tweet generated",
		slog.String("id", tweet.ID),
		slog.Int("length", len([]rune(tweet.Content))),
	)
	uc.publish(entities.TweetEvent{Type: entities.EventTweetCreated, ID: tweet.ID, Tweet: tweet})

	return tweet, nil
}

// ListTweets returns the newest tweets; limit <= 0 means the default.
func (uc *TweetUseCase) ListTweets(ctx context.Context, limit int) ([]entities.Tweet, error) {
	if limit <= 0 {
		limit = repositories.DefaultTweetLimit
	}
	tweets, err := uc.Storage.GetTweets(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list tweets: %v", ErrStorage, err)
	}
	return tweets, nil
}

// DeleteTweet removes a tweet; ErrTweetNotFound when the id is unknown.
func (uc *TweetUseCase) DeleteTweet(ctx context.Context, id string) error {
	if id == "" {
		uc.Metrics.RecordDeletion(false)
		return ErrTweetNotFound
	}

	deleted, err := uc.Storage.DeleteTweet(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: delete tweet: %v", ErrStorage, err)
	}
	uc.Metrics.RecordDeletion(deleted)
	if !deleted {
		return ErrTweetNotFound
	}

	uc.publish(entities.TweetEvent{Type: entities.EventTweetDeleted, ID: id})
	return nil
}

func (uc *TweetUseCase) publish(event entities.TweetEvent) {
	if uc.Publisher != nil {
		uc.Publisher.Publish(event)
	}
}

// upstreamStatus picks the status to record; 0 means no HTTP answer.
func upstreamStatus(resp *inference.ChatResponse, err error) int {
	if err == nil && resp != nil {
		return resp.StatusCode
	}
	var statusErr *inference.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
