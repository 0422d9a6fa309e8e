package usecase_auth

import (
	"context"
	"time"

	"github.com/echoforge/echoforge/domain/domain_auth"
	"github.com/echoforge/echoforge/internal/tokenutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type refreshTokenUsecase struct {
	userRepository domain_auth.UserRepository
	contextTimeout time.Duration
}

func NewRefreshTokenUsecase(userRepository domain_auth.UserRepository, timeout time.Duration) domain_auth.RefreshTokenUsecase {
	return &refreshTokenUsecase{
		userRepository: userRepository,
		contextTimeout: timeout,
	}
}

func (rtu *refreshTokenUsecase) GetUserByID(ctx context.Context, id string) (*domain_auth.User, error) {
	ctx, cancel := context.WithTimeout(ctx, rtu.contextTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	return rtu.userRepository.GetByID(ctx, objID)
}

func (rtu *refreshTokenUsecase) CreateAccessToken(user *domain_auth.User, secret string, expiry int) (accessToken string, err error) {
	return tokenutil.CreateAccessToken(user, secret, expiry)
}

func (rtu *refreshTokenUsecase) CreateRefreshToken(user *domain_auth.User, secret string, expiry int) (refreshToken string, err error) {
	return tokenutil.CreateRefreshToken(user, secret, expiry)
}

func (rtu *refreshTokenUsecase) ExtractIDFromToken(requestToken string, secret string) (string, error) {
	return tokenutil.ExtractIDFromToken(requestToken, secret)
}
