package cpgtesting

import (
	"context"
	"testing"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/require"
)

// TestContext carries the logger and, for integration tests, the blob store
// emulator client.
type TestContext struct {
	Log    *logger.WrappedLogger
	Storer *azblob.Storer
	T      *testing.T
}

type TestConfig struct {
	TestLabelPrefix string
	Container       string // can be "" defaults to TestLabelPrefix
}

// NewTestContext returns a context with a NOOP logger and no blob store.
func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	logger.New("NOOP")
	return TestContext{
		T:   t,
		Log: logger.Sugar,
	}
}

// NewBlobTestContext additionally connects to the azurite emulator described
// by the environment and makes sure the container exists.
func NewBlobTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := NewTestContext(t, cfg)

	container := cfg.Container
	if container == "" {
		container = cfg.TestLabelPrefix
	}

	var err error
	c.Storer, err = azblob.NewDev(azblob.NewDevConfigFromEnv(), container)
	if err != nil {
		t.Fatalf("failed to connect to blob store emulator: %v", err)
	}
	client := c.Storer.GetServiceClient()
	// Note: we expect a 'already exists' error here and ignore it.
	_, _ = client.CreateContainer(context.Background(), container, nil)

	return c
}

// DeleteBlobsByPrefix removes every blob under prefix, so each test run starts
// from an empty archive.
func (c *TestContext) DeleteBlobsByPrefix(prefix string) {
	for _, name := range c.blobNames(prefix) {
		require.NoError(c.T, c.Storer.Delete(context.Background(), name))
	}
}

// blobNames pages through the listing of prefix. Deleting while listing
// would invalidate the marker.
func (c *TestContext) blobNames(prefix string) []string {
	var names []string
	opts := []azblob.Option{azblob.WithListPrefix(prefix)}
	for {
		page, err := c.Storer.List(context.Background(), opts...)
		require.NoError(c.T, err)
		for _, item := range page.Items {
			names = append(names, *item.Name)
		}
		if len(page.Items) == 0 || page.Marker == nil {
			return names
		}
		opts = []azblob.Option{azblob.WithListPrefix(prefix), azblob.WithListMarker(page.Marker)}
	}
}
