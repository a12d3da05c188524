package user

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	userRepo "campusbook/database/repository/user"
	"campusbook/models"
	"campusbook/services/slot"
	"campusbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	publicScheduleCachePrefix = "pubsched:"
	publicScheduleCacheTTL    = time.Minute
)

// PublicSchedule is the unauthenticated share-link view: the faculty
// member's public profile plus their bookable slots.
type PublicSchedule struct {
	Faculty *models.UserProfile `json:"faculty"`
	Slots   []models.SlotView   `json:"slots"`
}

// UserService owns the directory: faculty browsing, profiles, and the
// public schedule share link.
type UserService interface {
	GetProfile(userID string) (*models.User, error)
	UpdateProfile(userID string, req models.UpdateProfileRequest) (*models.User, error)

	// ListFaculty filters by exact department and a free-text search over
	// name and department; both filters are optional.
	ListFaculty(department, search string) ([]models.User, error)
	GetFacultyProfile(facultyID string) (*models.User, error)

	// GenerateShareToken mints a fresh public schedule token for the
	// faculty member. Any previously issued token stops working.
	GenerateShareToken(facultyID string) (string, error)
	RevokeShareToken(facultyID string) error

	// PublicSchedule resolves a share token into the owner's open slots.
	PublicSchedule(token string) (*PublicSchedule, error)
}

// DefaultUserService is the canonical UserService implementation. The cache
// client shields the share-link view from anonymous traffic; it is optional.
type DefaultUserService struct {
	Repo  userRepo.UserRepository
	Slots slot.SlotService
	Cache *redis.Client
}

func (s *DefaultUserService) logger() *zap.Logger {
	return utils.GetLogger().Named("user")
}

// GetProfile returns the caller's own directory record.
func (s *DefaultUserService) GetProfile(userID string) (*models.User, error) {
	user, err := s.Repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewNotFoundError("user %s not found", userID)
	}
	return user, nil
}

// UpdateProfile applies the caller's profile edits.
func (s *DefaultUserService) UpdateProfile(userID string, req models.UpdateProfileRequest) (*models.User, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, utils.NewValidationError("name must not be empty")
		}
		fields["name"] = *req.Name
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Qualifications != nil {
		fields["qualifications"] = req.Qualifications
	}
	if req.ProfilePhoto != nil {
		fields["profile_photo"] = *req.ProfilePhoto
	}
	if len(fields) == 0 {
		return s.GetProfile(userID)
	}

	user, err := s.Repo.UpdateProfile(userID, fields)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewNotFoundError("user %s not found", userID)
	}
	return user, nil
}

// ListFaculty returns browsable faculty members.
func (s *DefaultUserService) ListFaculty(department, search string) ([]models.User, error) {
	return s.Repo.ListFaculty(department, search)
}

// GetFacultyProfile returns a faculty member's directory record.
func (s *DefaultUserService) GetFacultyProfile(facultyID string) (*models.User, error) {
	user, err := s.Repo.GetByID(facultyID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != models.RoleFaculty {
		return nil, utils.NewNotFoundError("faculty member %s not found", facultyID)
	}
	return user, nil
}

// GenerateShareToken mints and stores a fresh 128-bit token.
func (s *DefaultUserService) GenerateShareToken(facultyID string) (string, error) {
	if _, err := s.GetFacultyProfile(facultyID); err != nil {
		return "", err
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.Repo.UpdateShareToken(facultyID, token); err != nil {
		return "", err
	}
	s.logger().Info("share token rotated", zap.String("facultyId", facultyID))
	return token, nil
}

// RevokeShareToken disables the faculty member's share link.
func (s *DefaultUserService) RevokeShareToken(facultyID string) error {
	if _, err := s.GetFacultyProfile(facultyID); err != nil {
		return err
	}
	return s.Repo.UpdateShareToken(facultyID, "")
}

// PublicSchedule resolves a share token into the owner's bookable slots.
// Responses are briefly cached since the link is hit anonymously.
func (s *DefaultUserService) PublicSchedule(token string) (*PublicSchedule, error) {
	ctx := context.Background()
	cacheKey := publicScheduleCachePrefix + token

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached PublicSchedule
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	owner, err := s.Repo.GetByShareToken(token)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, utils.NewNotFoundError("share link is invalid or was revoked")
	}

	views, err := s.Slots.ListOpenSlots(owner.ID, "")
	if err != nil {
		return nil, err
	}
	schedule := &PublicSchedule{Faculty: owner.Profile(), Slots: views}

	if s.Cache != nil {
		if raw, err := json.Marshal(schedule); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, raw, publicScheduleCacheTTL).Err(); err != nil {
				s.logger().Warn("failed to cache public schedule", zap.Error(err))
			}
		}
	}
	return schedule, nil
}
