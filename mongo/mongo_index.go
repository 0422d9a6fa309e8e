package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/echoforge/echoforge/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreateIndexes(db Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Sound Generation Collection
	soundCollection := db.Collection(domain.CollectionSoundGeneration)
	createIndex(ctx, soundCollection, bson.D{{Key: "status", Value: 1}}, "status", false)
	createIndex(ctx, soundCollection, bson.D{{Key: "created_at", Value: -1}}, "created_at", false)
	createIndex(ctx, soundCollection, bson.D{{Key: "variant_of_id", Value: 1}}, "variant_of_id", false)
	createIndex(ctx, soundCollection, bson.D{{Key: "group_name", Value: 1}}, "group_name", false)
	createIndex(ctx, soundCollection, bson.D{{Key: "parameters.type", Value: 1}}, "parameters_type", false)
	// 拼音索引
	createIndex(ctx, soundCollection, bson.D{{Key: "name_pinyin", Value: 1}}, "name_pinyin", false)
	// 复合索引优化
	createIndex(ctx, soundCollection, bson.D{
		{Key: "group_name", Value: 1},
		{Key: "created_at", Value: -1}}, "group_created_compound", false)

	// Lineage Collection：一个根声音至多一棵谱系
	lineageCollection := db.Collection(domain.CollectionSoundLineage)
	createIndex(ctx, lineageCollection, bson.D{{Key: "root_sound_id", Value: 1}}, "root_sound_id", true)

	// Lineage Node Collection：sound_id 为节点主键
	nodeCollection := db.Collection(domain.CollectionSoundLineageNode)
	createIndex(ctx, nodeCollection, bson.D{{Key: "sound_id", Value: 1}}, "sound_id", true)
	createIndex(ctx, nodeCollection, bson.D{{Key: "lineage_id", Value: 1}, {Key: "created_at", Value: 1}}, "lineage_insertion_compound", false)
	createIndex(ctx, nodeCollection, bson.D{{Key: "parent_id", Value: 1}}, "parent_id", false)

	// User Collection
	userCollection := db.Collection(domain.CollectionUser)
	createIndex(ctx, userCollection, bson.D{{Key: "email", Value: 1}}, "email", true)
}

func createIndex(
	ctx context.Context,
	collection Collection,
	keys bson.D,
	name string,
	unique bool,
) {
	indexModel := mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetName(name).SetUnique(unique),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		fmt.Printf("创建索引 '%s' 失败: %v\n", name, err)
	}
}
