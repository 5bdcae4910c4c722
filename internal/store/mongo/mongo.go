// Package mongo implements the store contract on MongoDB.
//
// Accounts live in the "accounts" collection, posts in "posts". Email
// uniqueness is enforced by a unique index created at connect time; the
// post owner reference carries a non-unique index for the owner-scoped
// queries and the cascade paths.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dropDatabas3/hellopost/internal/domain/repository"
)

const (
	accountsCollection = "accounts"
	postsCollection    = "posts"

	connectTimeout = 10 * time.Second
)

// Store holds the client and database handles plus the repositories bound
// to them.
type Store struct {
	client   *mongo.Client
	db       *mongo.Database
	accounts *AccountRepo
	posts    *PostRepo
}

// New connects, verifies the connection and ensures indexes.
func New(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: empty uri")
	}
	if database == "" {
		return nil, fmt.Errorf("mongo: empty database name")
	}

	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:   client,
		db:       db,
		accounts: NewAccountRepo(db.Collection(accountsCollection)),
		posts:    NewPostRepo(db.Collection(postsCollection)),
	}

	if err := s.EnsureIndexes(cctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// EnsureIndexes creates the indexes the repositories rely on. Index
// creation is idempotent on the server side.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(accountsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo: create unique email index: %w", err)
	}

	_, err = s.db.Collection(postsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("mongo: create owner_id index: %w", err)
	}
	return nil
}

// Name returns the driver name.
func (s *Store) Name() string { return "mongo" }

// Ping verifies the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Accounts returns the account repository.
func (s *Store) Accounts() repository.AccountRepository { return s.accounts }

// Posts returns the post repository.
func (s *Store) Posts() repository.PostRepository { return s.posts }

// now returns the creation timestamp. BSON stores millisecond precision;
// truncating up front keeps round-tripped values comparable.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
