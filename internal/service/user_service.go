package service

import (
	"errors"

	"user-messaging-backend/internal/models"
	"user-messaging-backend/internal/repository"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Profile returns the user record for the authenticated id
func (s *UserService) Profile(userID uint) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the submitted profile fields
func (s *UserService) UpdateProfile(userID uint, userName, email, phone string) (*models.User, error) {
	user, err := s.users.UpdateProfile(userID, repository.ProfileUpdate{
		UserName: userName,
		Email:    email,
		Phone:    phone,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetProfileImage stores the profile image URL
func (s *UserService) SetProfileImage(userID uint, url string) (*models.User, error) {
	user, err := s.users.SetProfileImage(userID, url)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns all user records (admin only at the route level)
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.users.ListAll()
}
