package repository_sound_entity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
	"github.com/echoforge/echoforge/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// lineageRepository 谱系图的哑存储实现
// 树不变式（代数、单父、同谱系）由编排层负责，这里只做键值持久化
type lineageRepository struct {
	db mongo.Database
}

func NewLineageRepository(db mongo.Database) sound_interface.LineageRepository {
	return &lineageRepository{db: db}
}

func (r *lineageRepository) CreateLineage(ctx context.Context, rootSound *sound_models.SoundGeneration) (*sound_models.Lineage, error) {
	if rootSound == nil {
		return nil, errors.New("root sound cannot be nil")
	}

	existing, err := r.GetLineageByRootSound(ctx, rootSound.ID.Hex())
	if err != nil && !errors.Is(err, domain.ErrLineageNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrLineageExists
	}

	now := time.Now().UTC()
	lineage := &sound_models.Lineage{
		ID:          primitive.NewObjectID(),
		RootSoundID: rootSound.ID,
		CreatedAt:   now,
	}

	coll := r.db.Collection(domain.CollectionSoundLineage)
	if _, err := coll.InsertOne(ctx, lineage); err != nil {
		return nil, fmt.Errorf("create lineage failed: %w", err)
	}

	// 隐式根节点：generation=0，无父指针
	rootNode := &sound_models.LineageNode{
		SoundID:       rootSound.ID,
		LineageID:     lineage.ID,
		Generation:    0,
		VariationType: sound_models.VariationRoot,
		CreatedAt:     now,
	}
	if err := r.SaveNode(ctx, rootNode); err != nil {
		return nil, fmt.Errorf("create root node failed: %w", err)
	}

	return lineage, nil
}

func (r *lineageRepository) SaveNode(ctx context.Context, node *sound_models.LineageNode) error {
	if node == nil {
		return errors.New("node cannot be nil")
	}
	if node.SoundID.IsZero() {
		return errors.New("node sound_id cannot be empty")
	}

	if node.CreatedAt.IsZero() {
		node.CreatedAt = time.Now().UTC()
	}

	coll := r.db.Collection(domain.CollectionSoundLineageNode)
	opts := options.Update().SetUpsert(true)

	// 以 sound_id 为键，last write wins
	if _, err := coll.UpdateOne(ctx, bson.M{"sound_id": node.SoundID}, bson.M{"$set": node}, opts); err != nil {
		return fmt.Errorf("save node failed: %w", err)
	}

	return nil
}

func (r *lineageRepository) GetLineageByRootSound(ctx context.Context, soundId string) (*sound_models.Lineage, error) {
	objID, err := primitive.ObjectIDFromHex(soundId)
	if err != nil {
		return nil, errors.New("invalid sound_id format")
	}

	coll := r.db.Collection(domain.CollectionSoundLineage)

	var lineage sound_models.Lineage
	if err := coll.FindOne(ctx, bson.M{"root_sound_id": objID}).Decode(&lineage); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, domain.ErrLineageNotFound
		}
		return nil, fmt.Errorf("fetch lineage failed: %w", err)
	}

	return &lineage, nil
}

func (r *lineageRepository) GetLineageByID(ctx context.Context, lineageId string) (*sound_models.Lineage, error) {
	objID, err := primitive.ObjectIDFromHex(lineageId)
	if err != nil {
		return nil, errors.New("invalid lineage_id format")
	}

	coll := r.db.Collection(domain.CollectionSoundLineage)

	var lineage sound_models.Lineage
	if err := coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&lineage); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, domain.ErrLineageNotFound
		}
		return nil, fmt.Errorf("fetch lineage failed: %w", err)
	}

	return &lineage, nil
}

func (r *lineageRepository) GetNodeForSound(ctx context.Context, soundId string) (*sound_models.LineageNode, error) {
	objID, err := primitive.ObjectIDFromHex(soundId)
	if err != nil {
		return nil, errors.New("invalid sound_id format")
	}

	coll := r.db.Collection(domain.CollectionSoundLineageNode)

	var node sound_models.LineageNode
	if err := coll.FindOne(ctx, bson.M{"sound_id": objID}).Decode(&node); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, domain.ErrLineageNodeMissing
		}
		return nil, fmt.Errorf("fetch node failed: %w", err)
	}

	return &node, nil
}

func (r *lineageRepository) GetNodesForLineage(ctx context.Context, lineageId string) ([]sound_models.LineageNode, error) {
	objID, err := primitive.ObjectIDFromHex(lineageId)
	if err != nil {
		return nil, errors.New("invalid lineage_id format")
	}

	coll := r.db.Collection(domain.CollectionSoundLineageNode)

	// 插入顺序返回，调用方需要代数序时自行排序
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{"lineage_id": objID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find nodes failed: %w", err)
	}
	defer cursor.Close(ctx)

	var nodes []sound_models.LineageNode
	if err := cursor.All(ctx, &nodes); err != nil {
		return nil, fmt.Errorf("decode nodes failed: %w", err)
	}

	return nodes, nil
}

func (r *lineageRepository) GetAllLineages(ctx context.Context) ([]sound_models.Lineage, error) {
	coll := r.db.Collection(domain.CollectionSoundLineage)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find lineages failed: %w", err)
	}
	defer cursor.Close(ctx)

	var lineages []sound_models.Lineage
	if err := cursor.All(ctx, &lineages); err != nil {
		return nil, fmt.Errorf("decode lineages failed: %w", err)
	}

	return lineages, nil
}

func (r *lineageRepository) CountNodesForLineage(ctx context.Context, lineageId string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(lineageId)
	if err != nil {
		return 0, errors.New("invalid lineage_id format")
	}

	coll := r.db.Collection(domain.CollectionSoundLineageNode)
	count, err := coll.CountDocuments(ctx, bson.M{"lineage_id": objID})
	if err != nil {
		return 0, fmt.Errorf("count nodes failed: %w", err)
	}

	return count, nil
}
