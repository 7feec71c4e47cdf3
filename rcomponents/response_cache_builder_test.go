package rcomponents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedrest/go-rest-client/internal"
)

func TestResponseCacheBuilderStoresProperty(t *testing.T) {
	config := internal.NewConfigurationImpl()
	ResponseCache().ApplyTo(testConfigurator{config})

	v, ok := config.Property(internal.PropertyCacheResponses)
	require.True(t, ok)
	assert.True(t, v.BoolValue())
}

func TestResponseCacheBuilderCanDisable(t *testing.T) {
	config := internal.NewConfigurationImpl()
	ResponseCache().ApplyTo(testConfigurator{config})
	ResponseCache().Enabled(false).ApplyTo(testConfigurator{config})

	v, ok := config.Property(internal.PropertyCacheResponses)
	require.True(t, ok)
	assert.False(t, v.BoolValue())
}
