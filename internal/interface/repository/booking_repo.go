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

// MongoBookingRepository implements the BookingRepository interface
type MongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a new MongoDB booking repository
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	collection := db.Collection("bookings")

	ctx := context.Background()

	// An operator can hold at most one live booking per instant. The
	// partial filter keeps terminal bookings out of the constraint so a
	// cancelled slot frees up immediately.
	operatorSlotIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "operatorId", Value: 1},
			{Key: "startTime", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"active": true}),
	}

	// Slot capacity counting per station and instant
	stationSlotIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "stationId", Value: 1},
			{Key: "startTime", Value: 1},
			{Key: "active", Value: 1},
		},
	}

	// History lists by owner or operator, newest first
	ownerIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerId", Value: 1},
			{Key: "status", Value: 1},
			{Key: "startTime", Value: -1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{operatorSlotIndex, stationSlotIndex, ownerIndex})

	return &MongoBookingRepository{
		collection: collection,
	}
}

// Save inserts a new booking. Losing the race for the operator slot
// surfaces as a conflict through the partial unique index.
func (r *MongoBookingRepository) Save(ctx context.Context, booking *entity.Booking) error {
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Active = !booking.Status.Terminal()

	_, err := r.collection.InsertOne(ctx, booking)
	if mongo.IsDuplicateKeyError(err) {
		return apperror.Conflict("operator %s is no longer free at %s", booking.OperatorID, booking.StartTime.Format(time.RFC3339))
	}
	return err
}

// FindByID finds a booking by ID
func (r *MongoBookingRepository) FindByID(ctx context.Context, id string) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// HasActiveAtInstant reports whether the operator holds a non-terminal
// booking at exactly the given instant
func (r *MongoBookingRepository) HasActiveAtInstant(ctx context.Context, operatorID string, at time.Time) (bool, error) {
	filter := bson.M{
		"operatorId": operatorID,
		"startTime":  at,
		"active":     true,
	}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountActiveByStationAt counts the non-terminal bookings of a station at an instant
func (r *MongoBookingRepository) CountActiveByStationAt(ctx context.Context, stationID string, at time.Time) (int64, error) {
	filter := bson.M{
		"stationId": stationID,
		"startTime": at,
		"active":    true,
	}
	return r.collection.CountDocuments(ctx, filter)
}

// FindByOwnerAndStatus returns an owner's bookings with the given status, newest first
func (r *MongoBookingRepository) FindByOwnerAndStatus(ctx context.Context, ownerID string, status entity.BookingStatus) ([]*entity.Booking, error) {
	return r.find(ctx, bson.M{"ownerId": ownerID, "status": status})
}

// FindByOperatorAndStatus returns an operator's bookings with the given status, newest first
func (r *MongoBookingRepository) FindByOperatorAndStatus(ctx context.Context, operatorID string, status entity.BookingStatus) ([]*entity.Booking, error) {
	return r.find(ctx, bson.M{"operatorId": operatorID, "status": status})
}

// Update replaces the mutable fields of a booking and keeps the active
// flag in step with the status
func (r *MongoBookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	booking.UpdatedAt = time.Now().UTC()
	booking.Active = !booking.Status.Terminal()

	update := bson.M{
		"$set": bson.M{
			"startTime":       booking.StartTime,
			"status":          booking.Status,
			"active":          booking.Active,
			"checkinTime":     booking.CheckinTime,
			"checkoutTime":    booking.CheckoutTime,
			"energyKwh":       booking.EnergyKWh,
			"durationMinutes": booking.DurationMinutes,
			"sessionNotes":    booking.SessionNotes,
			"scanToken":       booking.ScanToken,
			"updatedAt":       booking.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": booking.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("operator %s is no longer free at %s", booking.OperatorID, booking.StartTime.Format(time.RFC3339))
		}
		return fmt.Errorf("failed to update booking: %w", err)
	}

	if result.MatchedCount == 0 {
		return apperror.NotFound("no booking found with id %s", booking.ID)
	}

	return nil
}

// Delete removes a booking document
func (r *MongoBookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if result.DeletedCount == 0 {
		return apperror.NotFound("no booking found with id %s", id)
	}

	return nil
}

func (r *MongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*entity.Booking, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*entity.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}
