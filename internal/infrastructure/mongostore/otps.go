package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/prerna-auth/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OtpRepo stores pending OTP challenges, several per phone number.
type OtpRepo struct {
	coll *mongo.Collection
}

func NewOtpRepo(coll *mongo.Collection) *OtpRepo {
	return &OtpRepo{coll: coll}
}

func (r *OtpRepo) Create(ctx context.Context, o *domain.OtpRecord) error {
	_, err := r.coll.InsertOne(ctx, o)
	return err
}

// Latest returns the newest record for phone. BSON dates keep millisecond
// precision, so the time-ordered _id breaks ties within a millisecond.
func (r *OtpRepo) Latest(ctx context.Context, phone string) (*domain.OtpRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	var o domain.OtpRecord
	err := r.coll.FindOne(ctx, bson.D{{Key: "phonenumber", Value: phone}}, opts).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("otp not found: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OtpRepo) DeleteAll(ctx context.Context, phone string) (int, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "phonenumber", Value: phone}})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}
