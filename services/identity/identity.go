package identity

import (
	"context"
	"strings"
	"time"

	userRepo "campusbook/database/repository/user"
	"campusbook/models"
	"campusbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Identity is the resolved caller of a request: who they are and which side
// of the booking relationship they sit on.
type Identity struct {
	UserID string
	Role   models.Role
}

// Service resolves an opaque bearer credential into an Identity. The rest of
// the application never touches credentials; everything downstream of the
// auth middleware works with user ids and roles.
type Service interface {
	CurrentUser(ctx context.Context, credential string) (*Identity, error)
}

// JWTService is the default Service: signed JWT credentials checked against
// the user directory, with a Redis cache in front so hot sessions skip the
// directory lookup.
type JWTService struct {
	Users userRepo.UserRepository
}

func (s *JWTService) logger() *zap.Logger {
	return utils.GetLogger().Named("identity")
}

// CurrentUser validates the credential and resolves its subject.
func (s *JWTService) CurrentUser(ctx context.Context, credential string) (*Identity, error) {
	subject, role, err := utils.ExtractClaimsFromToken(credential)
	if err != nil || subject == "" {
		return nil, utils.NewAuthorizationError("invalid or expired credential")
	}

	hash := utils.HashToken(credential)
	cacheKey := utils.AuthCachePrefix + hash

	authCache := utils.GetAuthCacheClient()
	if authCache != nil {
		cached, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			parts := strings.SplitN(cached, "|", 2)
			if len(parts) == 2 && parts[0] == subject {
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				return &Identity{UserID: parts[0], Role: models.Role(parts[1])}, nil
			}
		} else if err != redis.Nil {
			s.logger().Warn("auth cache read failed, falling back to directory", zap.Error(err))
		}
	}

	user, err := s.Users.GetByID(subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewAuthorizationError("unknown account")
	}
	if role != "" && models.Role(role) != user.Role {
		return nil, utils.NewAuthorizationError("credential role does not match the account")
	}

	if authCache != nil {
		_ = authCache.Set(ctx, cacheKey, user.ID+"|"+string(user.Role), utils.AuthCacheTTL).Err()
	}
	return &Identity{UserID: user.ID, Role: user.Role}, nil
}

// Issue mints a credential for the account, mainly for seeding and tests.
func (s *JWTService) Issue(user *models.User, ttl time.Duration) (string, error) {
	return utils.GenerateToken(user.ID, string(user.Role), ttl)
}
