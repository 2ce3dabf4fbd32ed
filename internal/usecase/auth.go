package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Markus2025/nottinghamdemo/internal/domain/entity"
	domainErrors "github.com/Markus2025/nottinghamdemo/internal/domain/errors"
	"github.com/Markus2025/nottinghamdemo/internal/repository"
)

// OpenIDResolver разрешает одноразовый код входа во внешний openId.
// Боевая реализация ходит в WeChat jscode2session (internal/wechat).
type OpenIDResolver interface {
	Resolve(ctx context.Context, code string) (string, error)
}

// AuthUseCase реализует вход и редактирование профиля
type AuthUseCase struct {
	userRepo repository.UserRepository
	resolver OpenIDResolver
}

// NewAuthUseCase создает новый usecase для аутентификации
func NewAuthUseCase(userRepo repository.UserRepository, resolver OpenIDResolver) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		resolver: resolver,
	}
}

// Login разрешает код входа в openId и находит или создает пользователя
func (uc *AuthUseCase) Login(ctx context.Context, code, nickname, avatar string) (*entity.User, error) {
	openID, err := uc.resolver.Resolve(ctx, code)
	if err != nil {
		return nil, domainErrors.NewDomainError(
			"UNAUTHORIZED",
			"failed to resolve identity",
			domainErrors.ErrUnauthorized,
		)
	}

	user, err := uc.userRepo.GetByOpenID(ctx, openID)
	if err != nil {
		if !errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}

		// Новый пользователь
		now := time.Now()
		if nickname == "" {
			nickname = "WeChat User"
		}
		user = &entity.User{
			OpenID:    openID,
			Nickname:  nickname,
			Avatar:    avatar,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	// Никнейм обновляем, аватар пользователь меняет сам через профиль
	if nickname != "" && nickname != user.Nickname {
		user.Nickname = nickname
		user.UpdatedAt = time.Now()
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	return user, nil
}

// ProfileUpdate частичное обновление профиля; nil-поля не меняются
type ProfileUpdate struct {
	Nickname *string
	Avatar   *string
	Campus   *string
	Motto    *string
}

// UpdateProfile обновляет профиль пользователя
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NewDomainError(
				"NOT_FOUND",
				"user not found",
				domainErrors.ErrNotFound,
			)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if update.Nickname != nil {
		user.Nickname = *update.Nickname
	}
	if update.Avatar != nil {
		user.Avatar = *update.Avatar
	}
	if update.Campus != nil {
		user.Campus = *update.Campus
	}
	if update.Motto != nil {
		user.Motto = *update.Motto
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// GetUser возвращает пользователя по ID
func (uc *AuthUseCase) GetUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.NewDomainError(
				"UNAUTHORIZED",
				"user not found",
				domainErrors.ErrUnauthorized,
			)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}
