package repository_sound_entity

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/echoforge/echoforge/domain"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_interface"
	"github.com/echoforge/echoforge/domain/domain_sound_entity/sound_models"
	"github.com/echoforge/echoforge/mongo"
	"github.com/mozillazg/go-pinyin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type soundLibraryRepository struct {
	db         mongo.Database
	collection string
}

func NewSoundLibraryRepository(db mongo.Database, collection string) sound_interface.SoundLibraryRepository {
	return &soundLibraryRepository{db: db, collection: collection}
}

func (r *soundLibraryRepository) GetByID(ctx context.Context, soundId string) (*sound_models.SoundGeneration, error) {
	objID, err := primitive.ObjectIDFromHex(soundId)
	if err != nil {
		return nil, errors.New("invalid sound_id format")
	}

	coll := r.db.Collection(r.collection)

	var sound sound_models.SoundGeneration
	if err := coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&sound); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, domain.ErrSoundNotFound
		}
		return nil, fmt.Errorf("fetch sound failed: %w", err)
	}

	return &sound, nil
}

func (r *soundLibraryRepository) Save(ctx context.Context, sound *sound_models.SoundGeneration) (*sound_models.SoundGeneration, error) {
	if sound == nil {
		return nil, errors.New("sound cannot be nil")
	}

	if sound.ID.IsZero() {
		sound.ID = primitive.NewObjectID()
	}
	if sound.CreatedAt.IsZero() {
		sound.CreatedAt = time.Now().UTC()
	}
	sound.UpdatedAt = time.Now().UTC()
	if sound.Name != "" {
		sound.NamePinyin = buildPinyinKeys(sound.Name)
	}

	coll := r.db.Collection(r.collection)
	opts := options.Update().SetUpsert(true)

	if _, err := coll.UpdateOne(ctx, bson.M{"_id": sound.ID}, bson.M{"$set": sound}, opts); err != nil {
		return nil, fmt.Errorf("save sound failed: %w", err)
	}

	return sound, nil
}

func (r *soundLibraryRepository) UpdateMetadata(ctx context.Context, soundId, name, groupName string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(soundId)
	if err != nil {
		return false, errors.New("invalid sound_id format")
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		set["name"] = name
		set["name_pinyin"] = buildPinyinKeys(name)
	}
	if groupName != "" {
		set["group_name"] = groupName
	}

	coll := r.db.Collection(r.collection)
	res, err := coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("update metadata failed: %w", err)
	}

	if res.MatchedCount == 0 {
		return false, domain.ErrSoundNotFound
	}

	return true, nil
}

func (r *soundLibraryRepository) GetSoundItems(
	ctx context.Context,
	start, end string,
	sortOrder []domain.SortOrder,
	search, groupName, soundType, status string,
) ([]sound_models.SoundGeneration, error) {
	filter := bson.M{}
	if groupName != "" {
		filter["group_name"] = groupName
	}
	if soundType != "" {
		filter["parameters.type"] = soundType
	}
	if status != "" {
		filter["status"] = status
	}
	if search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"prompt": bson.M{"$regex": search, "$options": "i"}},
			{"name_pinyin": bson.M{"$regex": "^" + strings.ToLower(search)}},
		}
	}

	opts := options.Find()
	if len(sortOrder) > 0 {
		sortDoc := bson.D{}
		for _, so := range sortOrder {
			direction := 1
			if so.Order == "desc" {
				direction = -1
			}
			sortDoc = append(sortDoc, bson.E{Key: so.Sort, Value: direction})
		}
		opts.SetSort(sortDoc)
	} else {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	if start != "" {
		if skip, err := strconv.ParseInt(start, 10, 64); err == nil && skip > 0 {
			opts.SetSkip(skip)
		}
	}
	if end != "" {
		if limit, err := strconv.ParseInt(end, 10, 64); err == nil && limit > 0 {
			opts.SetLimit(limit)
		}
	}

	coll := r.db.Collection(r.collection)
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find sounds failed: %w", err)
	}
	defer cursor.Close(ctx)

	var sounds []sound_models.SoundGeneration
	if err := cursor.All(ctx, &sounds); err != nil {
		return nil, fmt.Errorf("decode sounds failed: %w", err)
	}

	return sounds, nil
}

// buildPinyinKeys 生成名称的拼音检索键：全拼、首字母缩写与小写原文
func buildPinyinKeys(name string) []string {
	args := pinyin.NewArgs()
	syllables := pinyin.LazyPinyin(name, args)

	keys := []string{strings.ToLower(name)}
	if len(syllables) == 0 {
		return keys
	}

	keys = append(keys, strings.Join(syllables, ""))

	var initials strings.Builder
	for _, s := range syllables {
		initials.WriteString(s[:1])
	}
	keys = append(keys, initials.String())

	return keys
}
