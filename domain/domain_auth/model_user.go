package domain_auth

import (
	"context"

	"github.com/echoforge/echoforge/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"` // bcrypt hash
}

// UserRepository extends the generic CRUD repository with email lookup.
type UserRepository interface {
	domain.BaseRepository[User]
	GetByEmail(ctx context.Context, email string) (*User, error)
}
