// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"dreamdecol/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var sortableFields = map[string]bool{
	"createdAt": true, "updatedAt": true, "date": true, "time": true,
	"name": true, "status": true, "serviceType": true,
}

func (r *mongoBookingRepo) FindActiveAtSlot(ctx context.Context, date, slot string, excludeID *primitive.ObjectID) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":     date,
		"time":     slot,
		"slotHeld": true,
	}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}

	var b models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up slot holder: %w", err)
	}
	return &b, nil
}

func (r *mongoBookingRepo) ListActiveByDate(ctx context.Context, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"date": date, "slotHeld": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func buildListFilter(f models.BookingFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" && f.Status != "all" {
		filter["status"] = f.Status
	}
	if f.ServiceType != "" && f.ServiceType != "all" {
		filter["serviceType"] = f.ServiceType
	}
	if f.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"email": rx},
			bson.M{"phone": rx},
		}
	}
	return filter
}

func (r *mongoBookingRepo) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := buildListFilter(f)

	sortField := "createdAt"
	if sortableFields[f.SortBy] {
		sortField = f.SortBy
	}
	direction := -1
	if f.SortAsc {
		direction = 1
	}

	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: direction}})
	if f.Limit > 0 {
		opts.SetSkip(models.PageSkip(f.Page, f.Limit)).SetLimit(int64(f.Limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *mongoBookingRepo) groupCount(ctx context.Context, match bson.M, key interface{}, sortAsc bool) ([]models.CountByKey, error) {
	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: key},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}})
	if sortAsc {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}})
	} else {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}})
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []models.CountByKey{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *mongoBookingRepo) Stats(ctx context.Context, recentSince, dailySince time.Time) (*models.BookingStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stats := &models.BookingStats{}
	counts := []struct {
		filter bson.M
		dst    *int64
	}{
		{bson.M{}, &stats.Total},
		{bson.M{"status": models.BookingPending}, &stats.Pending},
		{bson.M{"status": models.BookingConfirmed}, &stats.Confirmed},
		{bson.M{"status": models.BookingCompleted}, &stats.Completed},
		{bson.M{"status": models.BookingCancelled}, &stats.Cancelled},
		{bson.M{"createdAt": bson.M{"$gte": recentSince}}, &stats.Recent},
	}
	for _, c := range counts {
		n, err := r.coll.CountDocuments(ctx, c.filter)
		if err != nil {
			return nil, fmt.Errorf("failed to count bookings: %w", err)
		}
		*c.dst = n
	}

	var err error
	if stats.ServiceTypes, err = r.groupCount(ctx, nil, "$serviceType", false); err != nil {
		return nil, fmt.Errorf("failed to group bookings by service type: %w", err)
	}
	if stats.Status, err = r.groupCount(ctx, nil, "$status", false); err != nil {
		return nil, fmt.Errorf("failed to group bookings by status: %w", err)
	}
	day := bson.D{{Key: "$dateToString", Value: bson.D{
		{Key: "format", Value: "%Y-%m-%d"},
		{Key: "date", Value: "$createdAt"},
	}}}
	if stats.Daily, err = r.groupCount(ctx, bson.M{"createdAt": bson.M{"$gte": dailySince}}, day, true); err != nil {
		return nil, fmt.Errorf("failed to group bookings by day: %w", err)
	}
	return stats, nil
}
