// Package storage keeps the original bytes of every evaluated proposal in an
// Azure Blob Storage container.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/JaimeStill/assessor/pkg/lifecycle"
)

// Object is an open blob. Callers must Close it.
type Object struct {
	io.ReadCloser
	ContentType string
	Size        int64
}

// System stores source documents by key.
type System interface {
	// Start ensures the container exists once the service starts.
	Start(lc *lifecycle.Coordinator) error
	// Put writes data to key, replacing any existing blob.
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Open streams the blob at key, or returns ErrNotFound.
	Open(ctx context.Context, key string) (*Object, error)
	// Remove deletes the blob at key, or returns ErrNotFound.
	Remove(ctx context.Context, key string) error
}

type container struct {
	client *azblob.Client
	name   string
	logger *slog.Logger
}

// New builds the blob client. The container is created by Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &container{
		client: client,
		name:   cfg.ContainerName,
		logger: logger.With("system", "storage", "container", cfg.ContainerName),
	}, nil
}

func (c *container) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup("storage", func(ctx context.Context) error {
		_, err := c.client.CreateContainer(ctx, c.name, nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			c.logger.Error("container unavailable", "error", err)
			return err
		}
		c.logger.Info("container ready")
		return nil
	})
	return nil
}

func (c *container) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := c.client.UploadBuffer(ctx, c.name, key, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (c *container) Open(ctx context.Context, key string) (*Object, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := c.client.DownloadStream(ctx, c.name, key, nil)
	if err != nil {
		return nil, blobError("open", key, err)
	}

	obj := &Object{ReadCloser: resp.Body}
	if resp.ContentType != nil {
		obj.ContentType = *resp.ContentType
	}
	if resp.ContentLength != nil {
		obj.Size = *resp.ContentLength
	}
	return obj, nil
}

func (c *container) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if _, err := c.client.DeleteBlob(ctx, c.name, key, nil); err != nil {
		return blobError("remove", key, err)
	}
	return nil
}
