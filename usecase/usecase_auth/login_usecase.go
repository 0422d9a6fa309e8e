package usecase_auth

import (
	"context"
	"time"

	"github.com/echoforge/echoforge/domain/domain_auth"
	"github.com/echoforge/echoforge/internal/tokenutil"
)

type loginUsecase struct {
	userRepository domain_auth.UserRepository
	contextTimeout time.Duration
}

func NewLoginUsecase(userRepository domain_auth.UserRepository, timeout time.Duration) domain_auth.LoginUsecase {
	return &loginUsecase{
		userRepository: userRepository,
		contextTimeout: timeout,
	}
}

func (lu *loginUsecase) GetUserByEmail(ctx context.Context, email string) (*domain_auth.User, error) {
	ctx, cancel := context.WithTimeout(ctx, lu.contextTimeout)
	defer cancel()
	return lu.userRepository.GetByEmail(ctx, email)
}

func (lu *loginUsecase) CreateAccessToken(user *domain_auth.User, secret string, expiry int) (accessToken string, err error) {
	return tokenutil.CreateAccessToken(user, secret, expiry)
}

func (lu *loginUsecase) CreateRefreshToken(user *domain_auth.User, secret string, expiry int) (refreshToken string, err error) {
	return tokenutil.CreateRefreshToken(user, secret, expiry)
}
