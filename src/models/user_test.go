package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRecord_UnmarshalMongoID(t *testing.T) {
	var u UserRecord
	err := json.Unmarshal([]byte(`{"_id":"64f0","name":"Ada","email":"ada@example.com","role":"admin","createdAt":"2024-03-05T10:00:00Z"}`), &u)
	require.NoError(t, err)

	assert.Equal(t, "64f0", u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.True(t, u.CreatedAt.Equal(time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)))
}

func TestUserRecord_UnmarshalPlainID(t *testing.T) {
	var u UserRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":"42","name":"Bob","role":"user"}`), &u))
	assert.Equal(t, "42", u.ID)
}

func TestSessionUser_IsAdmin(t *testing.T) {
	var nilUser *SessionUser
	assert.False(t, nilUser.IsAdmin())
	assert.False(t, (&SessionUser{Role: RoleUser}).IsAdmin())
	assert.False(t, (&SessionUser{Role: "superuser"}).IsAdmin())
	assert.True(t, (&SessionUser{Role: RoleAdmin}).IsAdmin())
}
