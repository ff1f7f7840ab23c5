package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRSVPRepo struct {
	col *mongo.Collection
}

func NewMongoRSVPRepository(col *mongo.Collection) RSVPRepository {
	return &mongoRSVPRepo{col: col}
}

// Upsert is a single FindOneAndUpdate with upsert, not check-then-insert:
// under concurrent calls for the same pair, the unique (event, user) index
// guarantees at most one row ever exists.
func (r *mongoRSVPRepo) Upsert(eventID, userID, status string) (RSVP, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"event": eventID, "user": userID}
	update := bson.M{
		"$set": bson.M{"status": status, "updatedAt": now},
		"$setOnInsert": bson.M{
			"id":        uuid.NewString(),
			"event":     eventID,
			"user":      userID,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var rsvp RSVP
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rsvp); err != nil {
		return RSVP{}, err
	}
	return rsvp, nil
}

func (r *mongoRSVPRepo) SetStatus(eventID, userID, status string) (RSVP, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"event": eventID, "user": userID}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rsvp RSVP
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&rsvp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return RSVP{}, ErrNotFound
		}
		return RSVP{}, err
	}
	return rsvp, nil
}

func (r *mongoRSVPRepo) ListAttending(eventID string) ([]RSVP, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"event": eventID, "status": StatusAttending})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []RSVP
	for cur.Next(ctx) {
		var rsvp RSVP
		if err := cur.Decode(&rsvp); err != nil {
			return nil, err
		}
		out = append(out, rsvp)
	}
	return out, cur.Err()
}
