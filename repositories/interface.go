package repositories

import (
	"context"

	"tweet-server/entities"
)

// DefaultTweetLimit bounds GetTweets when the caller passes no usable limit.
const DefaultTweetLimit = 50

// Storage is the only path to persisted users and tweets.
// Lookups return nil (not an error) when the record does not exist.
type Storage interface {
	GetUser(ctx context.Context, id string) (*entities.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
	CreateUser(ctx context.Context, username, password string) (*entities.User, error)

	CreateTweet(ctx context.Context, topic, content, style string) (*entities.Tweet, error)
	GetTweets(ctx context.Context, limit int) ([]entities.Tweet, error)
	GetTweet(ctx context.Context, id string) (*entities.Tweet, error)
	DeleteTweet(ctx context.Context, id string) (bool, error)
}
