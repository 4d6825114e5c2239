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

type CompaniesRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

func NewCompaniesRepository(client *mongo.Client, database string) *CompaniesRepository {
	return &CompaniesRepository{client: client, database: database, collection: "companies"}
}

func (r *CompaniesRepository) coll() *mongo.Collection {
	return r.client.Database(r.database).Collection(r.collection)
}

func (r *CompaniesRepository) Insert(ctx context.Context, company models.Company) error {
	_, err := r.coll().InsertOne(ctx, company)
	if err != nil {
		return errors.InternalErr("insert company", err)
	}
	return nil
}

func (r *CompaniesRepository) GetByID(ctx context.Context, id string) (models.Company, error) {
	var company models.Company
	err := r.coll().FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err == mongo.ErrNoDocuments {
		return models.Company{}, errors.NotFoundErr("company", id)
	}
	if err != nil {
		return models.Company{}, errors.InternalErr("get company", err)
	}
	return company, nil
}

func (r *CompaniesRepository) GetByMerchantID(ctx context.Context, merchantID string) (models.Company, error) {
	var company models.Company
	err := r.coll().FindOne(ctx, bson.M{"merchant_id": merchantID}).Decode(&company)
	if err == mongo.ErrNoDocuments {
		return models.Company{}, errors.NotFoundErr("company", merchantID)
	}
	if err != nil {
		return models.Company{}, errors.InternalErr("get company", err)
	}
	return company, nil
}

func (r *CompaniesRepository) List(ctx context.Context) ([]models.Company, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.InternalErr("list companies", err)
	}
	defer cursor.Close(ctx)

	companies := []models.Company{}
	if err = cursor.All(ctx, &companies); err != nil {
		return nil, errors.InternalErr("decode companies", err)
	}
	return companies, nil
}

// Update rewrites the mutable fields. The merchant token is immutable
// once minted.
func (r *CompaniesRepository) Update(ctx context.Context, company models.Company) error {
	update := bson.M{"$set": bson.M{
		"name":         company.Name,
		"email":        company.Email,
		"callback_url": company.CallbackURL,
		"updated_at":   time.Now().UTC(),
	}}
	res, err := r.coll().UpdateOne(ctx, bson.M{"_id": company.ID}, update)
	if err != nil {
		return errors.InternalErr("update company", err)
	}
	if res.MatchedCount == 0 {
		return errors.NotFoundErr("company", company.ID)
	}
	return nil
}

// Delete removes the company only. Payments keep their merchant_id
// reference; orphaned references are tolerated.
func (r *CompaniesRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.InternalErr("delete company", err)
	}
	if res.DeletedCount == 0 {
		return errors.NotFoundErr("company", id)
	}
	return nil
}

func (r *CompaniesRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "merchant_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.InternalErr("create company indexes", err)
	}
	return nil
}
