package authenticator_test

import (
	"testing"
	"time"

	"github.com/clanbase/backend/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine[payload]("secret", time.Minute)
	token, err := engine.Generate("id1", payload{ID: "id1", Name: "user1"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, payload{ID: "id1", Name: "user1"}, obj)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine[payload]("secret", -time.Minute)
	token, err := engine.Generate("id1", payload{ID: "id1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	engine := authenticator.NewTokenEngine[payload]("secret", time.Minute)
	token, err := engine.Generate("id1", payload{ID: "id1"})
	require.NoError(t, err)

	other := authenticator.NewTokenEngine[payload]("another-secret", time.Minute)
	_, err = other.Verify(token)
	require.Error(t, err)
}
