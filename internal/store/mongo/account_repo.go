package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dropDatabas3/hellopost/internal/domain/repository"
	"github.com/dropDatabas3/hellopost/internal/store/key"
)

// accountDoc is the stored shape of an account.
type accountDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Age       int                `bson:"age"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d accountDoc) toDomain() repository.Account {
	return repository.Account{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Age:       d.Age,
		CreatedAt: d.CreatedAt,
	}
}

// AccountRepo implements repository.AccountRepository on a collection.
type AccountRepo struct {
	col *mongo.Collection
}

// NewAccountRepo binds the repository to its collection.
func NewAccountRepo(col *mongo.Collection) *AccountRepo {
	return &AccountRepo{col: col}
}

// Create inserts a new account. Duplicate-key on the unique email index is
// mapped to ErrDuplicateEmail.
func (r *AccountRepo) Create(ctx context.Context, input repository.CreateAccountInput) (string, error) {
	doc := accountDoc{
		Name:      input.Name,
		Email:     input.Email,
		Age:       input.Age,
		CreatedAt: now(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicateEmail
		}
		return "", fmt.Errorf("mongo: insert account: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("mongo: unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// GetAll returns every account in natural order.
func (r *AccountRepo) GetAll(ctx context.Context) ([]repository.Account, error) {
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongo: find accounts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode accounts: %w", err)
	}
	out := make([]repository.Account, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// GetByID looks up an account. Account ids are always native keys, so an
// opaque identifier can never match and resolves to ErrNotFound without a
// round trip.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*repository.Account, error) {
	k := key.Parse(id)
	if !k.Valid() {
		return nil, repository.ErrNotFound
	}

	var doc accountDoc
	err := r.col.FindOne(ctx, bson.M{"_id": k.ObjectID()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: find account: %w", err)
	}
	acc := doc.toDomain()
	return &acc, nil
}

// Update applies the set fields. Empty input is a no-op returning false
// without touching the store. CreatedAt is never written.
func (r *AccountRepo) Update(ctx context.Context, id string, input repository.UpdateAccountInput) (bool, error) {
	if input.IsEmpty() {
		return false, nil
	}
	k := key.Parse(id)
	if !k.Valid() {
		return false, nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": k.ObjectID()}, bson.M{"$set": accountSetFields(input)})
	if err != nil {
		return false, fmt.Errorf("mongo: update account: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

// Delete removes the account. Returns true iff a record existed.
func (r *AccountRepo) Delete(ctx context.Context, id string) (bool, error) {
	k := key.Parse(id)
	if !k.Valid() {
		return false, nil
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": k.ObjectID()})
	if err != nil {
		return false, fmt.Errorf("mongo: delete account: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// accountSetFields builds the sparse $set document shared by the account
// update and the post-side denormalized propagation.
func accountSetFields(input repository.UpdateAccountInput) bson.M {
	set := bson.M{}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Email != nil {
		set["email"] = *input.Email
	}
	if input.Age != nil {
		set["age"] = *input.Age
	}
	return set
}
