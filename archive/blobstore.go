package archive

import (
	"context"
	"io"

	"github.com/datatrails/go-datatrails-common/azblob"
)

// BlobStore keeps archive objects in Azure blob storage.
type BlobStore struct {
	Storer *azblob.Storer
}

func NewBlobStore(storer *azblob.Storer) *BlobStore {
	return &BlobStore{Storer: storer}
}

func (s *BlobStore) Put(ctx context.Context, path string, data []byte, tags map[string]string) error {
	var opts []azblob.Option
	if len(tags) > 0 {
		opts = append(opts, azblob.WithTags(tags))
	}
	_, err := s.Storer.Put(ctx, path, azblob.NewBytesReaderCloser(data), opts...)
	return err
}

func (s *BlobStore) Get(ctx context.Context, path string) ([]byte, error) {
	rr, err := s.Storer.Reader(ctx, path)
	if err != nil {
		return nil, WrapBlobNotFound(err)
	}
	defer rr.Reader.Close()
	return io.ReadAll(rr.Reader)
}
