package store

import (
	"context"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mopts "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
)

const backendMongo = "mongo"

// MongoCollection is the collection holding project documents.
const MongoCollection = "projects"

// MongoStore keeps one document per project, keyed by project id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	opts   options
}

// DialMongo connects to uri and uses the projects collection of database db.
func DialMongo(ctx context.Context, uri, db string, opts ...Option) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, mopts.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}
	return NewMongoStore(client, db, opts...), nil
}

// NewMongoStore wraps a connected client. Close disconnects it.
func NewMongoStore(client *mongo.Client, db string, opts ...Option) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(MongoCollection),
		opts:   newOptions(opts),
	}
}

// Load reads a project.
func (s *MongoStore) Load(ctx context.Context, id string) (p *board.Project, err error) {
	start := time.Now()
	defer func() { observeLoad(ctx, backendMongo, id, start, err) }()

	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	var doc board.Project
	err = s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load project %s", id)
	}
	return normalize(&doc, s.opts.grid), nil
}

// Save upserts a project document.
func (s *MongoStore) Save(ctx context.Context, p *board.Project) (err error) {
	if err := checkSave(p); err != nil {
		return err
	}
	start := time.Now()
	defer func() { observeSave(ctx, backendMongo, p.ID, start, err) }()

	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, mopts.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save project %s", p.ID)
	}
	return nil
}

// Delete removes a project document.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateID(id); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete project %s", id)
	}
	return nil
}

// List returns every project id.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	vals, err := s.coll.Distinct(ctx, "_id", bson.D{})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list projects")
	}
	ids := make([]string, 0, len(vals))
	for _, v := range vals {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
