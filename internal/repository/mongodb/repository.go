package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nmwangi/dairyledger/internal/domain/models"
	"github.com/nmwangi/dairyledger/internal/repository/ledger"
)

// Repository implements ledger.Store on top of MongoDB.
type Repository struct {
	client *mongo.Client
	dbName string
}

var _ ledger.Store = (*Repository)(nil)

// New connects to MongoDB, verifies the connection and creates the unique
// indexes backing the duplicate guard.
func New(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", models.ErrStoreUnavailable, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%w: ping: %v", models.ErrStoreUnavailable, err)
	}

	r := &Repository{client: client, dbName: dbName}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// ensureIndexes creates the uniqueness constraints that make check-then-insert
// atomic: one milk record per (cow, date, time_of_milking) and one
// authoritative total per date.
func (r *Repository) ensureIndexes(ctx context.Context) error {
	milk := r.coll(ledger.CollectionMilkRecords)
	_, err := milk.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cow", Value: 1}, {Key: "date", Value: 1}, {Key: "time_of_milking", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%w: create milk index: %v", models.ErrStoreUnavailable, err)
	}

	totals := r.coll(ledger.CollectionDailyMilkTotals)
	_, err = totals.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%w: create daily total index: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *Repository) coll(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

func rangeFilter(field string, dr ledger.DateRange) bson.M {
	bounds := bson.M{}
	if !dr.Start.IsZero() {
		bounds["$gte"] = dr.Start
	}
	if !dr.End.IsZero() {
		bounds["$lte"] = dr.End
	}
	if len(bounds) == 0 {
		return bson.M{}
	}
	return bson.M{field: bounds}
}

func listByDate[T any](ctx context.Context, coll *mongo.Collection, dateField string, dr ledger.DateRange) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: dateField, Value: 1}})
	cursor, err := coll.Find(ctx, rangeFilter(dateField, dr), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find %s: %v", models.ErrStoreUnavailable, coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", models.ErrStoreUnavailable, coll.Name(), err)
	}
	return out, nil
}

func (r *Repository) insert(ctx context.Context, collection string, doc any) error {
	if _, err := r.coll(collection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", models.ErrDuplicateEntry, collection)
		}
		return fmt.Errorf("%w: insert into %s: %v", models.ErrStoreUnavailable, collection, err)
	}
	return nil
}

// ListFeedReceipts returns receipts inside the window, oldest first.
func (r *Repository) ListFeedReceipts(ctx context.Context, dr ledger.DateRange) ([]models.FeedReceipt, error) {
	return listByDate[models.FeedReceipt](ctx, r.coll(ledger.CollectionFeedReceipts), "date", dr)
}

// ListFeedUsage returns usage records inside the window, oldest first.
func (r *Repository) ListFeedUsage(ctx context.Context, dr ledger.DateRange) ([]models.FeedUsage, error) {
	return listByDate[models.FeedUsage](ctx, r.coll(ledger.CollectionFeedUsage), "date", dr)
}

// ListMilkRecords returns milk records inside the window, oldest first.
func (r *Repository) ListMilkRecords(ctx context.Context, dr ledger.DateRange) ([]models.MilkRecord, error) {
	return listByDate[models.MilkRecord](ctx, r.coll(ledger.CollectionMilkRecords), "date", dr)
}

// ListDailyMilkTotals returns authoritative totals inside the window.
func (r *Repository) ListDailyMilkTotals(ctx context.Context, dr ledger.DateRange) ([]models.DailyMilkTotal, error) {
	return listByDate[models.DailyMilkTotal](ctx, r.coll(ledger.CollectionDailyMilkTotals), "date", dr)
}

// ListHealthRecords returns health records inside the window.
func (r *Repository) ListHealthRecords(ctx context.Context, dr ledger.DateRange) ([]models.HealthRecord, error) {
	return listByDate[models.HealthRecord](ctx, r.coll(ledger.CollectionHealthRecords), "date", dr)
}

// ListAIRecords returns AI records inside the window.
func (r *Repository) ListAIRecords(ctx context.Context, dr ledger.DateRange) ([]models.AIRecord, error) {
	return listByDate[models.AIRecord](ctx, r.coll(ledger.CollectionAIRecords), "ai_date", dr)
}

// ListEmployees returns the full employee roster.
func (r *Repository) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return listByDate[models.Employee](ctx, r.coll(ledger.CollectionEmployees), "start_date", ledger.DateRange{})
}

// ListCows returns the full cow roster.
func (r *Repository) ListCows(ctx context.Context) ([]models.Cow, error) {
	cursor, err := r.coll(ledger.CollectionCows).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: find cows: %v", models.ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	var out []models.Cow
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: decode cows: %v", models.ErrStoreUnavailable, err)
	}
	return out, nil
}

// InsertFeedReceipt appends a purchase batch.
func (r *Repository) InsertFeedReceipt(ctx context.Context, rec models.FeedReceipt) (string, error) {
	rec.ID = primitive.NewObjectID().Hex()
	if err := r.insert(ctx, ledger.CollectionFeedReceipts, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// InsertFeedUsage appends a consumption event.
func (r *Repository) InsertFeedUsage(ctx context.Context, rec models.FeedUsage) (string, error) {
	rec.ID = primitive.NewObjectID().Hex()
	if err := r.insert(ctx, ledger.CollectionFeedUsage, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// InsertMilkRecord appends a milk record; the unique index rejects a second
// record for the same (cow, date, time_of_milking).
func (r *Repository) InsertMilkRecord(ctx context.Context, rec models.MilkRecord) (string, error) {
	rec.ID = primitive.NewObjectID().Hex()
	if err := r.insert(ctx, ledger.CollectionMilkRecords, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// InsertDailyMilkTotal appends an authoritative total; the unique index
// rejects a second total for the same date.
func (r *Repository) InsertDailyMilkTotal(ctx context.Context, rec models.DailyMilkTotal) (string, error) {
	rec.ID = primitive.NewObjectID().Hex()
	if err := r.insert(ctx, ledger.CollectionDailyMilkTotals, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// InsertHealthRecord appends a treatment event.
func (r *Repository) InsertHealthRecord(ctx context.Context, rec models.HealthRecord) (string, error) {
	rec.ID = primitive.NewObjectID().Hex()
	if err := r.insert(ctx, ledger.CollectionHealthRecords, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// InsertAIRecord appends an insemination expense.
func (r *Repository) InsertAIRecord(ctx context.Context, rec models.AIRecord) (string, error) {
	rec.ID = primitive.NewObjectID().Hex()
	if err := r.insert(ctx, ledger.CollectionAIRecords, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// InsertEmployee appends an employment interval.
func (r *Repository) InsertEmployee(ctx context.Context, rec models.Employee) (string, error) {
	rec.ID = primitive.NewObjectID().Hex()
	if err := r.insert(ctx, ledger.CollectionEmployees, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// InsertCow appends a roster entry.
func (r *Repository) InsertCow(ctx context.Context, rec models.Cow) (string, error) {
	rec.ID = primitive.NewObjectID().Hex()
	if err := r.insert(ctx, ledger.CollectionCows, rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// UpdateHealthCost prices a logged treatment.
func (r *Repository) UpdateHealthCost(ctx context.Context, id string, cost float64) error {
	res, err := r.coll(ledger.CollectionHealthRecords).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"cost": cost}})
	if err != nil {
		return fmt.Errorf("%w: update health cost: %v", models.ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: health record %s", models.ErrNotFound, id)
	}
	return nil
}

// DeleteRecord removes one source event. Derived data is never touched; it is
// recomputed on the next query.
func (r *Repository) DeleteRecord(ctx context.Context, collection, id string) error {
	res, err := r.coll(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: delete from %s: %v", models.ErrStoreUnavailable, collection, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s/%s", models.ErrNotFound, collection, id)
	}
	return nil
}

// SaveDailyReport appends a report-log document.
func (r *Repository) SaveDailyReport(ctx context.Context, report models.DailyReport) error {
	if _, err := r.coll(ledger.CollectionDailyReports).InsertOne(ctx, report); err != nil {
		return fmt.Errorf("%w: insert daily report: %v", models.ErrStoreUnavailable, err)
	}
	return nil
}

// Close disconnects the underlying client.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
