package archive

import (
	"errors"
	"fmt"
	"testing"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapBlobNotFound(t *testing.T) {
	notFound := fmt.Errorf("get graph: %w", &azStorageBlob.StorageError{ErrorCode: azStorageBlob.StorageErrorCodeBlobNotFound})
	denied := &azStorageBlob.StorageError{ErrorCode: azStorageBlob.StorageErrorCodeAuthorizationFailure}
	plain := errors.New("io")

	require.ErrorIs(t, WrapBlobNotFound(notFound), ErrNotFound)
	assert.True(t, IsNotFound(notFound))

	assert.Equal(t, error(denied), WrapBlobNotFound(denied))
	assert.False(t, IsNotFound(denied))
	assert.Equal(t, plain, WrapBlobNotFound(plain))
	assert.False(t, IsNotFound(plain))
	assert.NoError(t, WrapBlobNotFound(nil))
	assert.False(t, IsNotFound(nil))
}
