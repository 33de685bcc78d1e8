package password

import (
	"strings"
	"testing"

	"github.com/deppfellow/shoppingcart/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hashed, err := h.Hash("Wooteco1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Wooteco1!", hashed)

	assert.True(t, h.Matches(hashed, "Wooteco1!"))
	assert.False(t, h.Matches(hashed, "Wooteco1?"))
	assert.False(t, h.Matches("not-a-hash", "Wooteco1!"))
}

func TestNewHasher_FallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(bcrypt.MaxCost+1).cost)
}

func TestHasher_RejectsOverlongPassword(t *testing.T) {
	_, err := NewHasher(bcrypt.MinCost).Hash(strings.Repeat("😀", 19))
	assert.ErrorIs(t, err, errs.ErrInvalidPasswordFormat)
}
