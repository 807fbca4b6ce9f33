package repository

import (
	"context"

	"evcharge-service/internal/domain/entity"
	"evcharge-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccountRepository implements the AccountRepository interface
type MongoAccountRepository struct {
	collection *mongo.Collection
}

// NewMongoAccountRepository creates a new MongoDB account repository
func NewMongoAccountRepository(db *mongo.Database) repository.AccountRepository {
	collection := db.Collection("accounts")

	ctx := context.Background()

	emailIndex := mongo.IndexModel{
		Keys:    bson.M{"email": 1},
		Options: options.Index().SetUnique(true),
	}

	nicIndex := mongo.IndexModel{
		Keys:    bson.M{"nic": 1},
		Options: options.Index().SetUnique(true).SetSparse(true),
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{emailIndex, nicIndex})

	return &MongoAccountRepository{
		collection: collection,
	}
}

// FindByID finds an account by ID
func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByNIC finds an account by its national identity card number
func (r *MongoAccountRepository) FindByNIC(ctx context.Context, nic string) (*entity.Account, error) {
	if nic == "" {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"nic": nic})
}

// FindByEmail finds an account by email
func (r *MongoAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoAccountRepository) findOne(ctx context.Context, filter bson.M) (*entity.Account, error) {
	var account entity.Account
	err := r.collection.FindOne(ctx, filter).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
