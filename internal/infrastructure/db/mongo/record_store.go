package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talenthub/talenthub-api/internal/infrastructure/db/store"
)

// RecordStore implements store.Client on MongoDB. Each table maps to a
// collection, ids are UUID strings kept in _id, and embeds are resolved with
// a $lookup stage.
type RecordStore struct {
	db *mongo.Database
}

func NewRecordStore(db *mongo.Database) *RecordStore {
	return &RecordStore{db: db}
}

var _ store.Client = (*RecordStore)(nil)

func (s *RecordStore) Insert(ctx context.Context, table string, row store.Row) (store.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{}
	for k, v := range row {
		doc[k] = v
	}
	doc["_id"] = uuid.NewString()
	doc["created_at"] = time.Now().UTC().Truncate(time.Millisecond)
	delete(doc, "id")

	if _, err := s.db.Collection(table).InsertOne(ctx, doc); err != nil {
		return nil, store.Wrap("insert", table, mapError(err))
	}
	return toRow(doc), nil
}

func (s *RecordStore) Select(ctx context.Context, q store.Query) ([]store.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.db.Collection(q.Table).Aggregate(ctx, buildPipeline(q))
	if err != nil {
		return nil, store.Wrap("select", q.Table, err)
	}
	rows, err := decodeAll(ctx, cur)
	return rows, store.Wrap("select", q.Table, err)
}

// Update resolves the matching ids first so that the rows returned are
// exactly the ones that were modified.
func (s *RecordStore) Update(ctx context.Context, table string, filters []store.Filter, patch store.Row) ([]store.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	for k, v := range patch {
		if k == "id" || k == "created_at" {
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		return nil, store.Wrap("update", table, fmt.Errorf("empty patch"))
	}

	col := s.db.Collection(table)
	ids, err := s.matchingIDs(ctx, col, filters)
	if err != nil || len(ids) == 0 {
		return nil, store.Wrap("update", table, err)
	}

	byID := bson.M{"_id": bson.M{"$in": ids}}
	if _, err := col.UpdateMany(ctx, byID, bson.M{"$set": set}); err != nil {
		return nil, store.Wrap("update", table, mapError(err))
	}

	cur, err := col.Find(ctx, byID)
	if err != nil {
		return nil, store.Wrap("update", table, err)
	}
	rows, err := decodeAll(ctx, cur)
	return rows, store.Wrap("update", table, err)
}

func (s *RecordStore) Delete(ctx context.Context, table string, filters []store.Filter) ([]store.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	col := s.db.Collection(table)
	cur, err := col.Find(ctx, buildFilter(filters))
	if err != nil {
		return nil, store.Wrap("delete", table, err)
	}
	rows, err := decodeAll(ctx, cur)
	if err != nil || len(rows) == 0 {
		return nil, store.Wrap("delete", table, err)
	}

	ids := make([]any, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r["id"])
	}
	if _, err := col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, store.Wrap("delete", table, err)
	}
	return rows, nil
}

func (s *RecordStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return s.db.Client().Ping(ctx, nil)
}

func (s *RecordStore) matchingIDs(ctx context.Context, col *mongo.Collection, filters []store.Filter) ([]any, error) {
	cur, err := col.Find(ctx, buildFilter(filters))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []any
	for cur.Next(ctx) {
		var doc struct {
			ID any `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// buildPipeline renders q as an aggregation: match, sort, skip and limit
// first, then one $lookup per embed, then the projection.
func buildPipeline(q store.Query) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildFilter(q.Filters)}},
	}
	if q.Order != nil {
		dir := 1
		if q.Order.Descending {
			dir = -1
		}
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: field(q.Order.Column), Value: dir}}}})
	}
	if q.Offset > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: int64(q.Offset)}})
	}
	if q.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(q.Limit)}})
	}

	for _, e := range q.Embeds {
		lookup := bson.D{
			{Key: "from", Value: e.Table},
			{Key: "localField", Value: e.ForeignKey},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: e.Alias},
		}
		if len(e.Columns) > 0 {
			lookup = append(lookup, bson.E{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$project", Value: projectSpec(e.Columns, nil)}},
			}})
		}
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: lookup}},
			bson.D{{Key: "$set", Value: bson.D{{Key: e.Alias, Value: bson.D{
				{Key: "$arrayElemAt", Value: bson.A{"$" + e.Alias, 0}},
			}}}}},
		)
	}

	if len(q.Columns) > 0 {
		aliases := make([]string, 0, len(q.Embeds))
		for _, e := range q.Embeds {
			aliases = append(aliases, e.Alias)
		}
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: projectSpec(q.Columns, aliases)}})
	}
	return pipeline
}

func projectSpec(columns, extra []string) bson.D {
	spec := bson.D{}
	withID := false
	for _, c := range append(append([]string(nil), columns...), extra...) {
		if c == "id" {
			withID = true
		}
		spec = append(spec, bson.E{Key: field(c), Value: 1})
	}
	if !withID {
		spec = append(spec, bson.E{Key: "_id", Value: 0})
	}
	return spec
}

func buildFilter(filters []store.Filter) bson.D {
	conds := bson.A{}
	for _, f := range filters {
		var cond any
		switch f.Op {
		case store.OpNeq:
			cond = bson.D{{Key: "$nin", Value: bson.A{f.Value, nil}}}
		case store.OpIn:
			cond = bson.D{{Key: "$in", Value: f.Value}}
		default:
			cond = f.Value
		}
		conds = append(conds, bson.D{{Key: field(f.Column), Value: cond}})
	}
	switch len(conds) {
	case 0:
		return bson.D{}
	case 1:
		return conds[0].(bson.D)
	default:
		return bson.D{{Key: "$and", Value: conds}}
	}
}

func field(column string) string {
	if column == "id" {
		return "_id"
	}
	return column
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]store.Row, error) {
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	rows := make([]store.Row, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, toRow(d))
	}
	return rows, nil
}

// toRow converts a decoded document into a store row: _id becomes id and
// BSON specific types become plain Go values.
func toRow(doc bson.M) store.Row {
	row := make(store.Row, len(doc))
	for k, v := range doc {
		if k == "_id" {
			k = "id"
		}
		row[k] = normalize(v)
	}
	return row
}

func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		return toRow(t)
	case bson.D:
		return toRow(t.Map())
	case primitive.A:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalize(t[i])
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	default:
		return v
	}
}

func mapError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", store.ErrConstraint, err)
	}
	return err
}
