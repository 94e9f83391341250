package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/car2chain/inspection-api/internal/models"
)

func TestConnectMongo_BadURI(t *testing.T) {
	os.Setenv("MONGO_URI", "mongodb://bad:uri")
	defer os.Unsetenv("MONGO_URI")

	client, err := ConnectMongo()
	if err == nil {
		t.Error("expected error for bad URI, got nil")
	}
	if client != nil {
		t.Error("expected nil client on error")
	}
}

func TestReportCollection_NilCollection(t *testing.T) {
	coll := &MongoReportCollection{Collection: nil}
	ctx := context.Background()

	if _, err := coll.InsertReport(ctx, models.Report{}); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := coll.FindReportByID(ctx, primitive.NewObjectID().Hex()); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := coll.FindReports(ctx); err == nil {
		t.Error("expected error when collection is nil")
	}
	if err := coll.UpdateReportByID(ctx, primitive.NewObjectID().Hex(), models.Report{}); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := coll.DeleteReportByID(ctx, primitive.NewObjectID().Hex()); err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestShareLinkCollection_NilCollection(t *testing.T) {
	coll := &MongoShareLinkCollection{Collection: nil}
	ctx := context.Background()

	if err := coll.InsertShareLink(ctx, models.ShareLink{}); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := coll.FindShareLinkByToken(ctx, "share_abc"); err == nil {
		t.Error("expected error when collection is nil")
	}
}

func TestUserCollection_NilCollection(t *testing.T) {
	coll := &MongoUserCollection{Collection: nil}
	ctx := context.Background()

	if err := coll.InsertUser(ctx, models.User{}); err == nil {
		t.Error("expected error when collection is nil")
	}
	if _, err := coll.FindUserByUsername(ctx, "admin"); err == nil {
		t.Error("expected error when collection is nil")
	}
}

// Integration test (requires running MongoDB)
func TestReportCollection_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping integration test")
		return
	}

	client, err := ConnectMongo()
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer client.Disconnect(context.Background())

	coll := &MongoReportCollection{
		Collection: Database(client).Collection("reports_integration_test"),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report := models.Report{
		CustomerName:   "Integration Test",
		Make:           "Toyota",
		Model:          "Corolla",
		Year:           2020,
		RegistrationNo: "ABC-123",
		ChassisNo:      "CH12345",
		EngineNo:       "EN12345",
		Location:       "Lahore",
		InspectionDate: time.Now(),
		Inspector:      "tester",
		Status:         models.StatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	id, err := coll.InsertReport(ctx, report)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	found, err := coll.FindReportByID(ctx, id.Hex())
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.CustomerName != report.CustomerName {
		t.Errorf("got customer %q, want %q", found.CustomerName, report.CustomerName)
	}

	deleted, err := coll.DeleteReportByID(ctx, id.Hex())
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.ID != id {
		t.Errorf("deleted snapshot id mismatch")
	}

	if _, err := coll.FindReportByID(ctx, id.Hex()); !errors.Is(err, ErrNoDocument) {
		t.Errorf("expected ErrNoDocument after delete, got %v", err)
	}
}
