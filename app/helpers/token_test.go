package helpers

import (
	"testing"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret")
	user := &models.User{ID: "u1", Role: models.RoleAdmin, Email: "a@b.co", Name: "Asha"}

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.ID)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.Equal(t, "Asha", claims.Name)
	assert.True(t, claims.IsAdmin())
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	user := &models.User{ID: "u1", Role: models.RoleCustomer}
	token, err := NewTokenManager("one").Generate(user)
	require.NoError(t, err)

	_, err = NewTokenManager("two").Validate(token)
	assert.Error(t, err)

	m := NewTokenManager("one")
	m.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, PasswordCompare(hash, []byte("hunter22")))
	assert.False(t, PasswordCompare(hash, []byte("wrong")))
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		FullName string `validate:"required"`
		Rating   int    `validate:"min=1,max=5"`
	}
	fields, err := ValidateStruct(req{Rating: 9})
	require.Error(t, err)
	assert.Equal(t, "full_name is required.", fields["full_name"])
	assert.Equal(t, "rating must be at most 5.", fields["rating"])

	fields, err = ValidateStruct(req{FullName: "x", Rating: 3})
	assert.NoError(t, err)
	assert.Nil(t, fields)
}
