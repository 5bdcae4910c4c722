package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dropDatabas3/hellopost/internal/domain/repository"
	"github.com/dropDatabas3/hellopost/internal/store/key"
)

// postDoc is the stored shape of a post. OwnerID is bson-typed rather than
// a fixed Go type because leniently created posts may carry an opaque
// string instead of an ObjectID. The name/email/age fields are the
// denormalized account copy written by cascade updates; absent until then.
type postDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   any                `bson:"owner_id"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"created_at"`

	OwnerName  *string `bson:"name,omitempty"`
	OwnerEmail *string `bson:"email,omitempty"`
	OwnerAge   *int    `bson:"age,omitempty"`
}

func (d postDoc) toDomain() repository.Post {
	p := repository.Post{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Content:    d.Content,
		CreatedAt:  d.CreatedAt,
		OwnerName:  d.OwnerName,
		OwnerEmail: d.OwnerEmail,
		OwnerAge:   d.OwnerAge,
	}
	switch v := d.OwnerID.(type) {
	case primitive.ObjectID:
		p.OwnerID = v.Hex()
	case string:
		p.OwnerID = v
	default:
		p.OwnerID = fmt.Sprint(v)
	}
	return p
}

// PostRepo implements repository.PostRepository on a collection.
type PostRepo struct {
	col *mongo.Collection
}

// NewPostRepo binds the repository to its collection.
func NewPostRepo(col *mongo.Collection) *PostRepo {
	return &PostRepo{col: col}
}

// Create inserts a new post. The owner id is normalized to an ObjectID
// when well-formed and stored verbatim otherwise; it is not checked
// against the accounts collection.
func (r *PostRepo) Create(ctx context.Context, input repository.CreatePostInput) (string, error) {
	doc := postDoc{
		OwnerID:   key.Parse(input.OwnerID).Filter(),
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: now(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("mongo: insert post: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("mongo: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// GetAll returns every post in natural order.
func (r *PostRepo) GetAll(ctx context.Context) ([]repository.Post, error) {
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo: find posts: %w", err)
	}
	defer cur.Close(ctx)
	return decodePosts(ctx, cur)
}

// GetByOwner returns the owner's posts, newest first. Opaque owner ids
// match only posts stored with that exact raw value.
func (r *PostRepo) GetByOwner(ctx context.Context, ownerID string) ([]repository.Post, error) {
	filter := bson.M{"owner_id": key.Parse(ownerID).Filter()}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: find posts by owner: %w", err)
	}
	defer cur.Close(ctx)
	return decodePosts(ctx, cur)
}

// Update applies the set fields. Empty input is a no-op returning false.
func (r *PostRepo) Update(ctx context.Context, id string, input repository.UpdatePostInput) (bool, error) {
	if input.IsEmpty() {
		return false, nil
	}
	k := key.Parse(id)
	if !k.Valid() {
		return false, nil
	}

	set := bson.M{}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Content != nil {
		set["content"] = *input.Content
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": k.ObjectID()}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("mongo: update post: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// Delete removes a single post.
func (r *PostRepo) Delete(ctx context.Context, id string) (bool, error) {
	k := key.Parse(id)
	if !k.Valid() {
		return false, nil
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": k.ObjectID()})
	if err != nil {
		return false, fmt.Errorf("mongo: delete post: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteAllByOwner removes every post referencing the owner, keyed purely
// on the owner reference. Orphan posts under a never-existing owner are
// deleted the same way.
func (r *PostRepo) DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"owner_id": key.Parse(ownerID).Filter()})
	if err != nil {
		return 0, fmt.Errorf("mongo: delete posts by owner: %w", err)
	}
	return res.DeletedCount, nil
}

// UpdateAllByOwner mirrors the changed account fields onto the
// denormalized copy of every post referencing the owner.
func (r *PostRepo) UpdateAllByOwner(ctx context.Context, ownerID string, input repository.UpdateAccountInput) (int64, error) {
	if input.IsEmpty() {
		return 0, nil
	}

	filter := bson.M{"owner_id": key.Parse(ownerID).Filter()}
	res, err := r.col.UpdateMany(ctx, filter, bson.M{"$set": accountSetFields(input)})
	if err != nil {
		return 0, fmt.Errorf("mongo: propagate account fields: %w", err)
	}
	return res.MatchedCount, nil
}

func decodePosts(ctx context.Context, cur *mongo.Cursor) ([]repository.Post, error) {
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []repository.Post{}, nil
		}
		return nil, fmt.Errorf("mongo: decode posts: %w", err)
	}
	out := make([]repository.Post, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
