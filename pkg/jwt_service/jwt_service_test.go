package jwtservice_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/limbo/habitflow/pkg/entity"
	jwtservice "github.com/limbo/habitflow/pkg/jwt_service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	serv := jwtservice.New("test_secret")
	user := entity.User{ID: uuid.New(), Username: "test_user"}
	token, err := serv.GenerateToken(&user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := serv.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "test_user", claims.Username)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestParseTokenWrongSecret(t *testing.T) {
	user := entity.User{ID: uuid.New(), Username: "test_user"}
	token, err := jwtservice.New("one_secret").GenerateToken(&user)
	require.NoError(t, err)

	_, err = jwtservice.New("another_secret").ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := jwtservice.New("test_secret").ParseToken("definitely.not.ajwt")
	assert.Error(t, err)
}
