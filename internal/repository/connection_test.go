package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoConfig_ClientOptions(t *testing.T) {
	cfg := MongoConfig{
		URI:              "mongodb://db:27017",
		Database:         "storefront",
		ConnectTimeout:   3 * time.Second,
		SelectionTimeout: 2 * time.Second,
		MaxPoolSize:      7,
	}

	opts := cfg.clientOptions()

	assert.Contains(t, opts.Hosts, "db:27017")
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, 3*time.Second, *opts.ConnectTimeout)
	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, 2*time.Second, *opts.ServerSelectionTimeout)
	require.NotNil(t, opts.MaxPoolSize)
	assert.Equal(t, uint64(7), *opts.MaxPoolSize)
}
