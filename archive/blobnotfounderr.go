package archive

import (
	"errors"
	"fmt"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// blobNotFound reports whether err carries the storage service BlobNotFound
// code. The sdk wraps service errors in an InternalError whose As unwraps to
// the StorageError.
func blobNotFound(err error) bool {
	var serr *azStorageBlob.StorageError
	if !errors.As(err, &serr) || serr == nil {
		return false
	}
	return serr.ErrorCode == azStorageBlob.StorageErrorCodeBlobNotFound
}

// WrapBlobNotFound translates the azure sdk blob not found error to
// ErrNotFound. Any other err, including nil, is returned as is.
func WrapBlobNotFound(err error) error {
	if !blobNotFound(err) {
		return err
	}
	return fmt.Errorf("%s: %w", err.Error(), ErrNotFound)
}

// IsNotFound reports whether err means the object does not exist, in any
// store.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || blobNotFound(err)
}
