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

// MongoReservationRepository implements the ReservationRepository interface
type MongoReservationRepository struct {
	collection *mongo.Collection
}

// NewMongoReservationRepository creates a new MongoDB reservation repository
func NewMongoReservationRepository(db *mongo.Database) repository.ReservationRepository {
	collection := db.Collection("reservations")

	ctx := context.Background()

	// Conflict checks filter by station, owner and status
	conflictIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "stationId", Value: 1},
			{Key: "ownerId", Value: 1},
			{Key: "status", Value: 1},
		},
	}

	// History lists an owner's reservations newest-first
	ownerIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{conflictIndex, ownerIndex})

	return &MongoReservationRepository{
		collection: collection,
	}
}

// Save inserts a new reservation
func (r *MongoReservationRepository) Save(ctx context.Context, reservation *entity.Reservation) error {
	now := time.Now().UTC()
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, reservation)
	return err
}

// FindByID finds a reservation by ID
func (r *MongoReservationRepository) FindByID(ctx context.Context, id string) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

// FindActiveByStationAndOwner returns the owner's non-terminal reservations at a station
func (r *MongoReservationRepository) FindActiveByStationAndOwner(ctx context.Context, stationID, ownerID string) ([]*entity.Reservation, error) {
	filter := bson.M{
		"stationId": stationID,
		"ownerId":   ownerID,
		"status": bson.M{
			"$nin": []entity.ReservationStatus{entity.ReservationCancelled, entity.ReservationCompleted},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reservations []*entity.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// FindByOwner returns all reservations of an owner, newest first
func (r *MongoReservationRepository) FindByOwner(ctx context.Context, ownerID string) ([]*entity.Reservation, error) {
	filter := bson.M{"ownerId": ownerID}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reservations []*entity.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// Update replaces the mutable fields of a reservation. StationId and
// ownerId are immutable after creation and never written here.
func (r *MongoReservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	reservation.UpdatedAt = time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"startTime":         reservation.StartTime,
			"endTime":           reservation.EndTime,
			"status":            reservation.Status,
			"scanToken":         reservation.ScanToken,
			"operatorId":        reservation.OperatorID,
			"operatorAccountId": reservation.OperatorAccountID,
			"bookingId":         reservation.BookingID,
			"note":              reservation.Note,
			"updatedAt":         reservation.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": reservation.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}

	if result.MatchedCount == 0 {
		return apperror.NotFound("no reservation found with id %s", reservation.ID)
	}

	return nil
}

// Delete removes a reservation document
func (r *MongoReservationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	if result.DeletedCount == 0 {
		return apperror.NotFound("no reservation found with id %s", id)
	}

	return nil
}
