package mongodb

import (
	// Go Internal Packages
	"context"
	"time"

	// Local Packages
	errors "swipepoint/errors"
	models "swipepoint/models"

	// External Packages
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentsRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

func NewPaymentsRepository(client *mongo.Client, database string) *PaymentsRepository {
	return &PaymentsRepository{client: client, database: database, collection: "payments"}
}

func (r *PaymentsRepository) coll() *mongo.Collection {
	return r.client.Database(r.database).Collection(r.collection)
}

// Insert stores a new payment record. The reference carries a unique
// index, so a duplicate submission surfaces as an error instead of a
// second record.
func (r *PaymentsRepository) Insert(ctx context.Context, payment models.Payment) error {
	_, err := r.coll().InsertOne(ctx, payment)
	if err != nil {
		return errors.InternalErr("insert payment", err)
	}
	return nil
}

func (r *PaymentsRepository) GetByReference(ctx context.Context, reference string) (models.Payment, error) {
	var payment models.Payment
	err := r.coll().FindOne(ctx, bson.M{"reference": reference}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return models.Payment{}, errors.NotFoundErr("payment", reference)
	}
	if err != nil {
		return models.Payment{}, errors.InternalErr("get payment", err)
	}
	return payment, nil
}

// FinalizeIfPending flips the status only when the current status is
// still pending. The filter and update run as a single conditional
// write, so out of two concurrent finalizations exactly one wins.
func (r *PaymentsRepository) FinalizeIfPending(ctx context.Context, reference, status string) (models.Payment, bool, error) {
	filter := bson.M{"reference": reference, "status": models.StatusPending}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var payment models.Payment
	err := r.coll().FindOneAndUpdate(ctx, filter, update, opts).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		return models.Payment{}, false, nil
	}
	if err != nil {
		return models.Payment{}, false, errors.InternalErr("finalize payment", err)
	}
	return payment, true, nil
}

func (r *PaymentsRepository) ListByMerchant(ctx context.Context, merchantID string) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll().Find(ctx, bson.M{"merchant_id": merchantID}, opts)
	if err != nil {
		return nil, errors.InternalErr("list payments", err)
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, errors.InternalErr("decode payments", err)
	}
	return payments, nil
}

// DeleteByID removes a payment only when it belongs to the given
// merchant, so one merchant cannot delete another's records.
func (r *PaymentsRepository) DeleteByID(ctx context.Context, id, merchantID string) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": id, "merchant_id": merchantID})
	if err != nil {
		return errors.InternalErr("delete payment", err)
	}
	if res.DeletedCount == 0 {
		return errors.NotFoundErr("payment", id)
	}
	return nil
}

// EnsureIndexes creates the unique reference index and the merchant
// listing index.
func (r *PaymentsRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "merchant_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return errors.InternalErr("create payment indexes", err)
	}
	return nil
}
