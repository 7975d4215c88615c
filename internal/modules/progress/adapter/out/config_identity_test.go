package out_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	progressoutadapter "finpro/internal/modules/progress/adapter/out"
	"finpro/internal/platform/config"
)

func TestConfigIdentityProvider(t *testing.T) {
	t.Parallel()
	none, err := progressoutadapter.NewConfigIdentityProvider(config.Identity{FirstName: "Ann"}).Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, none)

	got, err := progressoutadapter.NewConfigIdentityProvider(config.Identity{
		TelegramID: 42,
		FirstName:  " Ann ",
		Username:   "@ann",
	}).Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, "ann", got.Username)
	assert.Empty(t, got.LastName)
}
