package entities

// Tweet lifecycle event types pushed to websocket subscribers.
const (
	EventTweetCreated = "tweet_created"
	EventTweetDeleted = "tweet_deleted"
)

// TweetEvent is the payload broadcast after a tweet is created or deleted.
type TweetEvent struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Tweet *Tweet `json:"tweet,omitempty"`
}
