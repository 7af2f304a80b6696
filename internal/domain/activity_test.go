package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivity(t *testing.T) {
	workspaceID := uuid.New()
	customerID := uuid.New()
	actorID := uuid.New()
	noteID := uuid.New()

	act, err := NewActivity(workspaceID, &customerID, &actorID, NoteAddedData{NoteID: noteID, Body: "called back"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, act.ID)
	assert.Equal(t, ActivityNoteAdded, act.Type)
	assert.Equal(t, workspaceID, act.WorkspaceID)
	assert.Equal(t, &customerID, act.CustomerID)

	var data map[string]any
	require.NoError(t, json.Unmarshal(act.Data, &data))
	assert.Equal(t, noteID.String(), data["note_id"])
	assert.Equal(t, "called back", data["body"])
}

func TestUpdateCustomerInputNullable(t *testing.T) {
	t.Run("explicit null clears", func(t *testing.T) {
		var in UpdateCustomerInput
		require.NoError(t, json.Unmarshal([]byte(`{"assigned_user_id":null}`), &in))
		assert.True(t, in.AssignedUserID.Set)
		assert.Nil(t, in.AssignedUserID.Value)
		assert.False(t, in.Phone.Set)
	})

	t.Run("value sets", func(t *testing.T) {
		id := uuid.New()
		var in UpdateCustomerInput
		require.NoError(t, json.Unmarshal([]byte(`{"assigned_user_id":"`+id.String()+`","phone":"123"}`), &in))
		require.NotNil(t, in.AssignedUserID.Value)
		assert.Equal(t, id, *in.AssignedUserID.Value)
		assert.Equal(t, "123", *in.Phone.Value)
	})
}
