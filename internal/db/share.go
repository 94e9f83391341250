package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/car2chain/inspection-api/internal/models"
)

// ShareLinkCollection defines the interface for share link operations.
type ShareLinkCollection interface {
	InsertShareLink(ctx context.Context, link models.ShareLink) error
	FindShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error)
}

// MongoShareLinkCollection implements ShareLinkCollection for MongoDB.
type MongoShareLinkCollection struct {
	Collection *mongo.Collection
}

// InsertShareLink inserts a share link record.
func (c *MongoShareLinkCollection) InsertShareLink(ctx context.Context, link models.ShareLink) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, link)
	return err
}

// FindShareLinkByToken finds a share link by its token.
func (c *MongoShareLinkCollection) FindShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	var link models.ShareLink
	err := c.Collection.FindOne(ctx, bson.M{"token": token}).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		return nil, err
	}
	return &link, nil
}
