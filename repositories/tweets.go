package repositories

import (
	"context"

	"tweet-server/entities"
)

func (s *DatabaseStorage) CreateTweet(ctx context.Context, topic, content, style string) (*entities.Tweet, error) {
	tweet := &entities.Tweet{
		Topic:   topic,
		Content: content,
		Style:   style,
	}
	if err := s.db.GetDB().WithContext(ctx).Create(tweet).Error; err != nil {
		return nil, err
	}
	return tweet, nil
}

// GetTweets returns the newest tweets first, at most limit of them.
// Equal creation times are ordered by id so pages are stable.
func (s *DatabaseStorage) GetTweets(ctx context.Context, limit int) ([]entities.Tweet, error) {
	if limit <= 0 {
		limit = DefaultTweetLimit
	}
	tweets := make([]entities.Tweet, 0)
	err := s.db.GetDB().WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&tweets).Error
	return tweets, err
}

func (s *DatabaseStorage) GetTweet(ctx context.Context, id string) (*entities.Tweet, error) {
	var tweet entities.Tweet
	err := s.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&tweet).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &tweet, nil
}

// DeleteTweet reports whether a row was actually removed.
func (s *DatabaseStorage) DeleteTweet(ctx context.Context, id string) (bool, error) {
	result := s.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.Tweet{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
