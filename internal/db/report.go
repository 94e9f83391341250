package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/car2chain/inspection-api/internal/models"
)

// ReportCollection defines the interface for report document operations.
type ReportCollection interface {
	InsertReport(ctx context.Context, report models.Report) (primitive.ObjectID, error)
	FindReportByID(ctx context.Context, id string) (*models.Report, error)
	FindReports(ctx context.Context) ([]models.Report, error)
	UpdateReportByID(ctx context.Context, id string, report models.Report) error
	DeleteReportByID(ctx context.Context, id string) (*models.Report, error)
}

// MongoReportCollection implements ReportCollection for MongoDB.
type MongoReportCollection struct {
	Collection *mongo.Collection
}

// InsertReport inserts a report document and returns its generated id.
func (c *MongoReportCollection) InsertReport(ctx context.Context, report models.Report) (primitive.ObjectID, error) {
	if c.Collection == nil {
		return primitive.NilObjectID, fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.InsertOne(ctx, report)
	if err != nil {
		return primitive.NilObjectID, err
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id, nil
}

// FindReportByID finds a report by its ID. A malformed id resolves to
// ErrNoDocument, same as an unknown one.
func (c *MongoReportCollection) FindReportByID(ctx context.Context, id string) (*models.Report, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNoDocument
	}

	var report models.Report
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		return nil, err
	}

	return &report, nil
}

// FindReports returns every report, newest first.
func (c *MongoReportCollection) FindReports(ctx context.Context) ([]models.Report, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateReportByID replaces the stored report document.
func (c *MongoReportCollection) UpdateReportByID(ctx context.Context, id string, report models.Report) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNoDocument
	}

	report.ID = objectID
	result, err := c.Collection.ReplaceOne(ctx, bson.M{"_id": objectID}, report)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

// DeleteReportByID deletes a report and returns the deleted snapshot.
func (c *MongoReportCollection) DeleteReportByID(ctx context.Context, id string) (*models.Report, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNoDocument
	}

	var deleted models.Report
	err = c.Collection.FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		return nil, err
	}
	return &deleted, nil
}
