package resettoken_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/resettoken"
)

func TestGenerate(t *testing.T) {
	raw, hash, err := resettoken.Generate()

	assert.NoError(t, err)
	assert.Len(t, raw, 64)
	assert.NotEqual(t, raw, hash)
	assert.True(t, resettoken.Matches(raw, hash))
}

func TestGenerate_Unique(t *testing.T) {
	raw1, _, err := resettoken.Generate()
	assert.NoError(t, err)
	raw2, _, err := resettoken.Generate()
	assert.NoError(t, err)

	assert.NotEqual(t, raw1, raw2)
}

func TestMatches_Negative(t *testing.T) {
	_, hash, err := resettoken.Generate()
	assert.NoError(t, err)

	assert.False(t, resettoken.Matches("not-the-raw-value", hash))
	assert.False(t, resettoken.Matches("", hash))
	assert.False(t, resettoken.Matches("anything", "not-a-bcrypt-hash"))
}
