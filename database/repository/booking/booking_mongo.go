package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/EAniwa/legacylancers-sub004/database"
	"github.com/EAniwa/legacylancers-sub004/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("legacylancers")
	return &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
	}
}

// GetByID retrieves a booking document by its id.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

// activeFilter matches non-cancelled bookings on an availability, optionally
// narrowed to those overlapping a half-open window.
func activeFilter(availabilityID string, window models.TimeRange) bson.M {
	filter := bson.M{
		"availability_id": availabilityID,
		"status":          bson.M{"$ne": models.BookingCancelled},
	}
	if !window.Start.IsZero() || !window.End.IsZero() {
		filter["start_time"] = bson.M{"$lt": window.End}
		filter["end_time"] = bson.M{"$gt": window.Start}
	}
	return filter
}

// ListActiveBookings returns non-cancelled bookings overlapping the window.
func (repo *MongoBookingRepo) ListActiveBookings(ctx context.Context, availabilityID string, window models.TimeRange) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.bookingColl.Find(ctx, activeFilter(availabilityID, window))
	if err != nil {
		return nil, fmt.Errorf("error finding active bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

// CountActive counts non-cancelled bookings on an availability.
func (repo *MongoBookingRepo) CountActive(ctx context.Context, availabilityID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := repo.bookingColl.CountDocuments(ctx, activeFilter(availabilityID, models.TimeRange{}))
	if err != nil {
		return 0, fmt.Errorf("error counting active bookings: %w", err)
	}
	return int(n), nil
}

// ListDueCompletions returns confirmed bookings whose end time has passed.
func (repo *MongoBookingRepo) ListDueCompletions(ctx context.Context, before time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":   models.BookingConfirmed,
		"end_time": bson.M{"$lte": before},
	}
	cursor, err := repo.bookingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding due bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

// Reserve inserts the booking inside a server transaction after re-checking
// overlap and capacity within the same session, so a concurrent request cannot
// pass the same checks against stale state.
func (repo *MongoBookingRepo) Reserve(ctx context.Context, booking *models.Booking, maxBookings int) error {
	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		window := models.TimeRange{Start: booking.StartTime, End: booking.EndTime}
		overlapping, err := repo.bookingColl.CountDocuments(sc, activeFilter(booking.AvailabilityID, window))
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if overlapping > 0 {
			return ErrSlotTaken
		}

		active, err := repo.bookingColl.CountDocuments(sc, activeFilter(booking.AvailabilityID, models.TimeRange{}))
		if err != nil {
			return fmt.Errorf("capacity re-check failed: %w", err)
		}
		if maxBookings > 0 && int(active) >= maxBookings {
			return ErrCapacityExhausted
		}

		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken || err == ErrCapacityExhausted {
			return err
		}
		return fmt.Errorf("reserve transaction failed: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing booking document.
func (repo *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": booking.ID}
	res, err := repo.bookingColl.UpdateOne(ctx, filter, bson.M{"$set": booking})
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", booking.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
