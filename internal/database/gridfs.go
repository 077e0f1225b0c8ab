package repository

import (
	"errors"
	"fmt"
	"io"

	"ImpressionsBot/entity"
	"ImpressionsBot/internal/lib/sl"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const screenshotsBucket = "screenshots"

func (m *MongoDB) screenshots(connection *mongo.Client) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(
		connection.Database(m.database),
		options.GridFSBucket().SetName(screenshotsBucket),
	)
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return bucket, nil
}

// UploadScreenshot stores a payment screenshot and returns the generated file ID and size.
func (m *MongoDB) UploadScreenshot(filename string, reader io.Reader, meta entity.ScreenshotMeta) (primitive.ObjectID, int64, error) {
	connection, err := m.connect()
	if err != nil {
		return primitive.NilObjectID, 0, err
	}
	defer m.disconnect(connection)

	bucket, err := m.screenshots(connection)
	if err != nil {
		return primitive.NilObjectID, 0, err
	}

	uploadOpts := options.GridFSUpload().SetMetadata(meta)
	uploadStream, err := bucket.OpenUploadStream(filename, uploadOpts)
	if err != nil {
		return primitive.NilObjectID, 0, fmt.Errorf("gridfs open upload: %w", err)
	}

	size, err := io.Copy(uploadStream, reader)
	if err != nil {
		_ = uploadStream.Close()
		return primitive.NilObjectID, 0, fmt.Errorf("gridfs copy: %w", err)
	}

	if err = uploadStream.Close(); err != nil {
		return primitive.NilObjectID, 0, fmt.Errorf("gridfs close upload: %w", err)
	}

	fileID := uploadStream.FileID.(primitive.ObjectID)
	return fileID, size, nil
}

// gridfsReadCloser wraps a GridFS download stream and disconnects
// the MongoDB client when closed.
type gridfsReadCloser struct {
	stream     *gridfs.DownloadStream
	disconnect func()
}

func (r *gridfsReadCloser) Read(p []byte) (int, error) {
	return r.stream.Read(p)
}

func (r *gridfsReadCloser) Close() error {
	err := r.stream.Close()
	r.disconnect()
	return err
}

// DownloadScreenshot opens a stored screenshot by its ID.
// The caller must close the returned ReadCloser to release the MongoDB connection.
func (m *MongoDB) DownloadScreenshot(fileID primitive.ObjectID) (entity.ScreenshotMeta, io.ReadCloser, error) {
	var meta entity.ScreenshotMeta

	connection, err := m.connect()
	if err != nil {
		return meta, nil, err
	}

	bucket, err := m.screenshots(connection)
	if err != nil {
		m.disconnect(connection)
		return meta, nil, err
	}

	stream, err := bucket.OpenDownloadStream(fileID)
	if err != nil {
		m.disconnect(connection)
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return meta, nil, entity.ErrNotFound
		}
		return meta, nil, fmt.Errorf("gridfs open download: %w", err)
	}

	if file := stream.GetFile(); len(file.Metadata) > 0 {
		if err = bson.Unmarshal(file.Metadata, &meta); err != nil {
			m.log.Error("failed to unmarshal screenshot metadata", sl.Err(err))
		}
	}

	reader := &gridfsReadCloser{
		stream:     stream,
		disconnect: func() { m.disconnect(connection) },
	}

	return meta, reader, nil
}
