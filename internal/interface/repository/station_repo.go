package repository

import (
	"context"

	"evcharge-service/internal/domain/entity"
	"evcharge-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStationRepository implements the StationRepository interface
type MongoStationRepository struct {
	collection *mongo.Collection
}

// NewMongoStationRepository creates a new MongoDB station repository
func NewMongoStationRepository(db *mongo.Database) repository.StationRepository {
	return &MongoStationRepository{
		collection: db.Collection("stations"),
	}
}

// FindByID finds a charging station by ID
func (r *MongoStationRepository) FindByID(ctx context.Context, id string) (*entity.ChargingStation, error) {
	var station entity.ChargingStation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&station)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &station, nil
}
