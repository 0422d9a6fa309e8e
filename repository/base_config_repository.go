package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/mongo"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BaseConfigRepository 单文档配置Repository实现
// 集合中只维护一份配置文档，Update 采用整体替换式 upsert
type BaseConfigRepository[T any] struct {
	db         mongo.Database
	collection string
}

func NewBaseConfigRepository[T any](db mongo.Database, collection string) domain.ConfigRepository[T] {
	return &BaseConfigRepository[T]{
		db:         db,
		collection: collection,
	}
}

// Get 读取配置文档，不存在时返回 (nil, nil)
func (r *BaseConfigRepository[T]) Get(ctx context.Context) (*T, error) {
	coll := r.db.Collection(r.collection)

	var config T
	err := coll.FindOne(ctx, bson.M{}).Decode(&config)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	return &config, nil
}

// Update 写入配置文档（不存在则创建）
func (r *BaseConfigRepository[T]) Update(ctx context.Context, config *T) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}

	coll := r.db.Collection(r.collection)
	opts := options.Update().SetUpsert(true)
	_, err := coll.UpdateOne(ctx, bson.M{}, bson.M{"$set": config}, opts)
	if err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}

	return nil
}
