package repository

import (
	"context"
	"fmt"
	"time"

	"evcharge-service/internal/domain/apperror"
	"evcharge-service/internal/domain/entity"
	"evcharge-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOperatorRepository implements the OperatorRepository interface
type MongoOperatorRepository struct {
	collection *mongo.Collection
}

// NewMongoOperatorRepository creates a new MongoDB operator repository
func NewMongoOperatorRepository(db *mongo.Database) repository.OperatorRepository {
	collection := db.Collection("operators")

	ctx := context.Background()

	// One profile per account
	accountIndex := mongo.IndexModel{
		Keys:    bson.M{"accountId": 1},
		Options: options.Index().SetUnique(true),
	}

	// Assignment scans active operators of a station in creation order
	stationIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "stationId", Value: 1},
			{Key: "active", Value: 1},
			{Key: "createdAt", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{accountIndex, stationIndex})

	return &MongoOperatorRepository{
		collection: collection,
	}
}

// Save inserts a new operator profile
func (r *MongoOperatorRepository) Save(ctx context.Context, operator *entity.Operator) error {
	now := time.Now().UTC()
	operator.CreatedAt = now
	operator.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, operator)
	if mongo.IsDuplicateKeyError(err) {
		return apperror.Conflict("an operator profile already exists for account %s", operator.AccountID)
	}
	return err
}

// FindByID finds an operator profile by ID
func (r *MongoOperatorRepository) FindByID(ctx context.Context, id string) (*entity.Operator, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByAccountID finds the operator profile bound to an account
func (r *MongoOperatorRepository) FindByAccountID(ctx context.Context, accountID string) (*entity.Operator, error) {
	return r.findOne(ctx, bson.M{"accountId": accountID})
}

// FindActiveByStation returns the active operators of a station in creation order
func (r *MongoOperatorRepository) FindActiveByStation(ctx context.Context, stationID string) ([]*entity.Operator, error) {
	filter := bson.M{"stationId": stationID, "active": true}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var operators []*entity.Operator
	if err := cursor.All(ctx, &operators); err != nil {
		return nil, err
	}

	return operators, nil
}

// Update replaces the mutable fields of an operator profile
func (r *MongoOperatorRepository) Update(ctx context.Context, operator *entity.Operator) error {
	operator.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"name":      operator.Name,
			"email":     operator.Email,
			"phone":     operator.Phone,
			"active":    operator.Active,
			"updatedAt": operator.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": operator.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update operator: %w", err)
	}

	if result.MatchedCount == 0 {
		return apperror.NotFound("no operator found with id %s", operator.ID)
	}

	return nil
}

func (r *MongoOperatorRepository) findOne(ctx context.Context, filter bson.M) (*entity.Operator, error) {
	var operator entity.Operator
	err := r.collection.FindOne(ctx, filter).Decode(&operator)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &operator, nil
}
