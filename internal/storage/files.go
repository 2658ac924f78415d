package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type fileDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    bson.ObjectID `bson:"userId"`
	Name      string        `bson:"name"`
	Type      string        `bson:"type"`
	IsPublic  bool          `bson:"isPublic"`
	ParentID  any           `bson:"parentId"` // the string "0" at the root, an ObjectID otherwise
	LocalPath string        `bson:"localPath,omitempty"`
}

func (d *fileDoc) toFile() *File {
	f := &File{
		ID:        d.ID.Hex(),
		OwnerID:   d.UserID.Hex(),
		Name:      d.Name,
		Type:      FileType(d.Type),
		IsPublic:  d.IsPublic,
		ParentID:  RootParentID,
		LocalPath: d.LocalPath,
	}
	if oid, ok := d.ParentID.(bson.ObjectID); ok {
		f.ParentID = oid.Hex()
	}
	return f
}

// parentFilterValue maps an external parent id to its stored form.
func parentFilterValue(parentID string) (any, error) {
	if parentID == RootParentID || parentID == "" {
		return RootParentID, nil
	}
	oid, err := bson.ObjectIDFromHex(normalizeID(parentID))
	if err != nil {
		return nil, fmt.Errorf("failed to build parent reference: %w", err)
	}
	return oid, nil
}

// Files is the repository over the files collection.
type Files struct {
	col *mongo.Collection
}

// NewFiles creates the files repository.
func NewFiles(db *mongo.Database) *Files {
	return &Files{col: db.Collection(CollectionFiles)}
}

// Create inserts the file record and returns a copy carrying the
// engine-assigned id. Owner and parent existence are the caller's
// responsibility; this layer only maps identifiers.
func (r *Files) Create(ctx context.Context, f *File) (*File, error) {
	owner, err := bson.ObjectIDFromHex(normalizeID(f.OwnerID))
	if err != nil {
		return nil, fmt.Errorf("failed to build owner reference: %w", err)
	}
	parent, err := parentFilterValue(f.ParentID)
	if err != nil {
		return nil, err
	}

	res, err := r.col.InsertOne(ctx, fileDoc{
		UserID:    owner,
		Name:      f.Name,
		Type:      string(f.Type),
		IsPublic:  f.IsPublic,
		ParentID:  parent,
		LocalPath: f.LocalPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert file: %w", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}

	created := *f
	created.ID = id.Hex()
	if created.ParentID == "" {
		created.ParentID = RootParentID
	}
	return &created, nil
}

// GetByID looks a file up regardless of owner.
func (r *Files) GetByID(ctx context.Context, id string) (*File, error) {
	oid, err := bson.ObjectIDFromHex(normalizeID(id))
	if err != nil {
		return nil, ErrFileNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// GetOwned looks a file up scoped to its owner.
func (r *Files) GetOwned(ctx context.Context, id, ownerID string) (*File, error) {
	oid, err := bson.ObjectIDFromHex(normalizeID(id))
	if err != nil {
		return nil, ErrFileNotFound
	}
	owner, err := bson.ObjectIDFromHex(normalizeID(ownerID))
	if err != nil {
		return nil, ErrFileNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid, "userId": owner})
}

func (r *Files) findOne(ctx context.Context, filter bson.M) (*File, error) {
	var doc fileDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to find file: %w", err)
	}
	return doc.toFile(), nil
}

// ListByParent returns one page of the owner's files under the given
// parent, newest first. Pages beyond the end yield an empty slice.
func (r *Files) ListByParent(ctx context.Context, ownerID, parentID string, page, pageSize int) ([]File, error) {
	owner, err := bson.ObjectIDFromHex(normalizeID(ownerID))
	if err != nil {
		return []File{}, nil
	}
	parent, err := parentFilterValue(parentID)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": owner, "parentId": parent}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
		{{Key: "$skip", Value: int64(page) * int64(pageSize)}},
		{{Key: "$limit", Value: int64(pageSize)}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []fileDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}

	files := make([]File, 0, len(docs))
	for i := range docs {
		files = append(files, *docs[i].toFile())
	}
	return files, nil
}

// SetPublic flips the visibility flag of an owned file.
func (r *Files) SetPublic(ctx context.Context, id, ownerID string, public bool) error {
	oid, err := bson.ObjectIDFromHex(normalizeID(id))
	if err != nil {
		return ErrFileNotFound
	}
	owner, err := bson.ObjectIDFromHex(normalizeID(ownerID))
	if err != nil {
		return ErrFileNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "userId": owner},
		bson.M{"$set": bson.M{"isPublic": public}},
	)
	if err != nil {
		return fmt.Errorf("failed to update file visibility: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrFileNotFound
	}
	return nil
}

// Count returns the number of file records.
func (r *Files) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}
	return n, nil
}
