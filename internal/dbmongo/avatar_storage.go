package dbmongo

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AvatarStorage stores profile pictures in GridFS. The hex file id is what
// ends up persisted as the account's avatar_path; the core never checks the
// file beyond what is recorded here.
type AvatarStorage struct {
	gridFS *gridfs.Bucket
}

func NewAvatarStorage(mongoClient *MongoClient) *AvatarStorage {
	return &AvatarStorage{
		gridFS: mongoClient.GridFS,
	}
}

type AvatarFile struct {
	ID          string    `json:"id"`           // GridFS ObjectID, hex
	Filename    string    `json:"filename"`     // Original filename
	Size        int64     `json:"size"`         // File size in bytes
	ContentType string    `json:"content_type"` // MIME type as uploaded
	OwnerID     uint64    `json:"owner_id"`     // Account that uploaded it
	UploadedAt  time.Time `json:"uploaded_at"`
}

func (as *AvatarStorage) Upload(ctx context.Context, filename, contentType string, ownerID uint64, content io.Reader) (*AvatarFile, error) {
	metadata := bson.M{
		"content_type": contentType,
		"owner_id":     ownerID,
		"uploaded_at":  time.Now(),
	}

	opts := options.GridFSUpload().SetMetadata(metadata)
	stream, err := as.gridFS.OpenUploadStream(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer stream.Close()

	size, err := io.Copy(stream, content)
	if err != nil {
		return nil, fmt.Errorf("file copy failed: %w", err)
	}

	return &AvatarFile{
		ID:          stream.FileID.(primitive.ObjectID).Hex(),
		Filename:    filename,
		Size:        size,
		ContentType: contentType,
		OwnerID:     ownerID,
		UploadedAt:  time.Now(),
	}, nil
}

func (as *AvatarStorage) Download(ctx context.Context, fileID string) (io.Reader, *AvatarFile, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid file ID: %w", err)
	}

	stream, err := as.gridFS.OpenDownloadStream(objectID)
	if err != nil {
		return nil, nil, fmt.Errorf("download failed: %w", err)
	}

	fileInfo := stream.GetFile()
	var metadata bson.M
	if fileInfo.Metadata != nil {
		bson.Unmarshal(fileInfo.Metadata, &metadata)
	}

	avatar := &AvatarFile{
		ID:          fileID,
		Filename:    fileInfo.Name,
		Size:        fileInfo.Length,
		ContentType: stringFromMetadata(metadata, "content_type"),
		OwnerID:     uint64FromMetadata(metadata, "owner_id"),
		UploadedAt:  fileInfo.UploadDate,
	}

	return stream, avatar, nil
}

func (as *AvatarStorage) Delete(ctx context.Context, fileID string) error {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return fmt.Errorf("invalid file ID: %w", err)
	}
	return as.gridFS.Delete(objectID)
}

func stringFromMetadata(m bson.M, key string) string {
	if m == nil {
		return ""
	}
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func uint64FromMetadata(m bson.M, key string) uint64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case int64:
		return uint64(v)
	case int32:
		return uint64(v)
	case float64:
		return uint64(v)
	}
	return 0
}
