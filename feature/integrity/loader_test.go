package integrity

import (
	"testing"

	"receiving-manager/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	mockClient := new(mocks.Client)
	logger := zap.NewNop()
	// Pass nil db for this test as we don't access it unless we use the service
	feature := NewFeature(mockClient, "test-bucket", "", logger, nil)

	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.Equal(t, "test-bucket", feature.Service().Bucket())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}

func TestLoader_DisabledWithoutBackends(t *testing.T) {
	feature := NewFeature(nil, "test-bucket", "", zap.NewNop(), nil)
	assert.False(t, feature.IsEnabled())
}
