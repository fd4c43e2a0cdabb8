package repositories

import (
	"context"

	"tweet-server/entities"
)

func (s *DatabaseStorage) GetUser(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := s.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStorage) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	err := s.db.GetDB().WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStorage) CreateUser(ctx context.Context, username, password string) (*entities.User, error) {
	user := &entities.User{
		Username: username,
		Password: password,
	}
	if err := s.db.GetDB().WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
