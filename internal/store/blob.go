package store

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// BlobStore keeps each document as a JSON blob named <id>.json inside a
// single container.
type BlobStore struct {
	client    *azblob.Client
	container string
}

func NewBlobStore(client *azblob.Client, container string) *BlobStore {
	return &BlobStore{
		client:    client,
		container: container,
	}
}

func (s *BlobStore) Save(ctx context.Context, id string, content json.RawMessage) (Document, error) {
	doc := Document{
		ID:        id,
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return Document{}, err
	}

	if _, err := s.client.UploadBuffer(ctx, s.container, blobName(id), data, nil); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (s *BlobStore) Load(ctx context.Context, id string) (Document, error) {
	response, err := s.client.DownloadStream(ctx, s.container, blobName(id), nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	defer response.Body.Close()

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (s *BlobStore) Delete(ctx context.Context, id string) error {
	if _, err := s.client.DeleteBlob(ctx, s.container, blobName(id), nil); err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func blobName(id string) string {
	return id + ".json"
}
