package repository_auth

import (
	"context"

	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/domain/domain_auth"
	"github.com/echoforge/echoforge/mongo"
	"github.com/echoforge/echoforge/repository"
	"go.mongodb.org/mongo-driver/bson"
)

type userRepository struct {
	domain.BaseRepository[domain_auth.User]
}

func NewUserRepository(db mongo.Database) domain_auth.UserRepository {
	return &userRepository{
		BaseRepository: repository.NewBaseMongoRepository[domain_auth.User](db, domain.CollectionUser),
	}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain_auth.User, error) {
	return r.GetOneByFilter(ctx, bson.M{"email": email})
}
