package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"prediction-engine/internal/models"
	"prediction-engine/internal/utils"
)

// AuthService handles authentication business logic
type AuthService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB, logger *zap.Logger) *AuthService {
	return &AuthService{db: db, logger: logger}
}

// ProcessLogin finds or creates a user by email. New accounts start on the
// free tier; tier upgrades come from the billing system, not from here.
func (s *AuthService) ProcessLogin(email, nickname string) (*models.User, error) {
	var user models.User

	result := s.db.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if nickname == "" {
			generated, err := utils.GenerateNickname()
			if err != nil {
				return nil, fmt.Errorf("failed to generate nickname: %w", err)
			}
			nickname = generated
		}

		user = models.User{
			Email:    email,
			Nickname: nickname,
			Tier:     models.TierFree,
		}

		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		s.logger.Info("new user created", zap.String("email", email), zap.Uint("user_id", user.ID))
	} else if result.Error != nil {
		return nil, fmt.Errorf("database error: %w", result.Error)
	} else {
		s.logger.Debug("user logged in", zap.String("email", email), zap.Uint("user_id", user.ID))
	}

	return &user, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
