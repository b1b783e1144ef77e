package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Set MODELVIEWER_TEST_MONGO_URI to run against a live server.
func TestMongoCache(t *testing.T) {
	uri := os.Getenv("MODELVIEWER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MODELVIEWER_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := "modelviewer_test_" + uuid.NewString()[:8]
	c, err := NewMongoCache(ctx, uri, db)
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer func() {
		_ = c.client.Database(db).Drop(context.Background())
		c.Close()
	}()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("png"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	// Overwrite goes through the upsert path.
	if err := c.Set(ctx, "k", []byte("png2"), time.Hour); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "png2" {
		t.Fatalf("Get(k) = %q, hit %v, err %v", data, hit, err)
	}

	if err := c.Set(ctx, "expired", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "expired"); hit {
		t.Error("expired entry should be a miss")
	}

	// Documents written by other tools in the same collection.
	foreign := []any{
		bson.M{"_id": "other:k", "data": []byte("x")},
		bson.M{"_id": "modelviewer-old:k", "data": []byte("x")},
	}
	if _, err := c.coll.InsertMany(ctx, foreign); err != nil {
		t.Fatalf("InsertMany: %v", err)
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear removed %d, want 2", n)
	}
	left, err := c.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments: %v", err)
	}
	if left != 2 {
		t.Errorf("%d documents left after Clear, want 2", left)
	}
}

func TestMongoCachePrefix(t *testing.T) {
	uri := os.Getenv("MODELVIEWER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MODELVIEWER_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := "modelviewer_test_" + uuid.NewString()[:8]
	a, err := NewMongoCache(ctx, uri, db, WithMongoPrefix("a.b:"))
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer func() {
		_ = a.client.Database(db).Drop(context.Background())
		a.Close()
	}()
	b, err := NewMongoCache(ctx, uri, db, WithMongoPrefix("axb:"))
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer b.Close()

	if err := a.Set(ctx, "k", []byte("a"), 0); err != nil {
		t.Fatal(err)
	}
	if err := b.Set(ctx, "k", []byte("b"), 0); err != nil {
		t.Fatal(err)
	}

	var doc mongoEntry
	if err := a.coll.FindOne(ctx, bson.M{"_id": "a.b:k"}).Decode(&doc); err != nil {
		t.Fatalf("stored id should carry the prefix: %v", err)
	}

	// The prefix is matched literally, so "." does not match "x".
	if n, err := a.Clear(ctx); err != nil || n != 1 {
		t.Fatalf("Clear = %d, %v, want 1", n, err)
	}
	data, hit, err := b.Get(ctx, "k")
	if err != nil || !hit || string(data) != "b" {
		t.Errorf("other prefix Get(k) = %q, hit %v, err %v", data, hit, err)
	}
}
