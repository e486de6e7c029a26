package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinical-trials-api/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore keeps each record type in its own collection and links
// sections to their application through the applicationId field.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore uses database on an already connected client.
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(database)}
}

// EnsureIndexes indexes applicationId on every section collection.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	for _, section := range models.EmptySections() {
		_, err := s.db.Collection(section.TableName()).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "applicationId", Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", section.TableName(), err)
		}
	}
	return nil
}

func (s *MongoStore) applications() *mongo.Collection {
	return s.db.Collection(models.Application{}.TableName())
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) CreateApplication(ctx context.Context) (*models.Application, error) {
	app := models.NewApplication(bson.NewObjectID().Hex(), time.Now().UTC())
	if _, err := s.applications().InsertOne(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *MongoStore) ListApplications(ctx context.Context) ([]models.Application, error) {
	cur, err := s.applications().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	apps := make([]models.Application, 0)
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *MongoStore) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := s.applications().FindOne(ctx, bson.M{"_id": id}).Decode(&app); err != nil {
		return nil, translateMongo(err)
	}
	return &app, nil
}

func (s *MongoStore) TouchApplication(ctx context.Context, id string) error {
	res, err := s.applications().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) DeleteApplication(ctx context.Context, id string) error {
	_, err := s.applications().DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoStore) InsertSection(ctx context.Context, section models.Section) error {
	section.Ref().ID = bson.NewObjectID().Hex()
	_, err := s.db.Collection(section.TableName()).InsertOne(ctx, section)
	return err
}

func (s *MongoStore) UpsertSection(ctx context.Context, section models.Section, keys []string) error {
	fields, err := sectionFields(section, keys)
	if err != nil {
		return err
	}
	update := bson.M{"$setOnInsert": bson.M{"_id": bson.NewObjectID().Hex()}}
	if len(fields) > 0 {
		update["$set"] = fields
	}
	ref := section.Ref()
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(bson.M{"_id": 1})
	var saved struct {
		ID string `bson:"_id"`
	}
	err = s.db.Collection(section.TableName()).FindOneAndUpdate(ctx,
		bson.M{"applicationId": ref.ApplicationID},
		update,
		opts,
	).Decode(&saved)
	if err != nil {
		return err
	}
	ref.ID = saved.ID
	return nil
}

func (s *MongoStore) FindSection(ctx context.Context, applicationID string, dst models.Section) error {
	err := s.db.Collection(dst.TableName()).
		FindOne(ctx, bson.M{"applicationId": applicationID}).
		Decode(dst)
	return translateMongo(err)
}

func (s *MongoStore) DeleteSection(ctx context.Context, applicationID string, kind models.Section) error {
	_, err := s.db.Collection(kind.TableName()).DeleteOne(ctx, bson.M{"applicationId": applicationID})
	return err
}

// sectionFields renders the fields named by keys as a $set document, or all
// of them when keys is nil. _id is left out since it cannot change on an
// existing document.
func sectionFields(section models.Section, keys []string) (bson.M, error) {
	raw, err := bson.Marshal(section)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", section.TableName(), err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", section.TableName(), err)
	}
	delete(fields, "_id")
	if keys == nil {
		return fields, nil
	}

	selected := bson.M{}
	for _, key := range keys {
		if v, ok := fields[key]; ok {
			selected[key] = v
		}
	}
	return selected, nil
}

func translateMongo(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
