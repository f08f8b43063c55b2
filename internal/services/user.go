package services

import (
	"errors"
	"time"

	"github.com/ilyasseisov/flashcards/internal/models"

	"gorm.io/gorm"
)

// UserService mirrors the external identity provider's user records. It is
// driven by lifecycle webhooks only; nothing in the quiz flow creates users.
type UserService struct {
	db       *gorm.DB
	progress *ProgressService
}

func NewUserService(db *gorm.DB, progress *ProgressService) *UserService {
	return &UserService{db: db, progress: progress}
}

func (s *UserService) Get(externalID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

// SyncCreated mirrors a user.created event. Webhook deliveries can repeat,
// so an existing mirror is refreshed instead of duplicated.
func (s *UserService) SyncCreated(externalID, email string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("external_id = ?", externalID).First(&existing).Error; err == nil {
		existing.Email = email
		existing.UpdatedAt = time.Now()
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	user := models.User{
		ExternalID: externalID,
		Email:      email,
		Plan:       models.PlanFree,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SyncUpdated mirrors a user.updated event, creating the mirror if the
// created event was missed.
func (s *UserService) SyncUpdated(externalID, email string) (*models.User, error) {
	return s.SyncCreated(externalID, email)
}

// SyncDeleted mirrors a user.deleted event, cascading to the user's
// outcomes. Reports whether a mirror existed.
func (s *UserService) SyncDeleted(externalID string) (bool, error) {
	var user models.User
	if err := s.db.Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return false, nil
	}

	if err := s.progress.DeleteForUser(externalID); err != nil {
		return true, err
	}
	if err := s.db.Delete(&user).Error; err != nil {
		return true, err
	}
	return true, nil
}
