package transport

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
)

func decode(t *testing.T, body string) TaskRequest {
	t.Helper()
	var req TaskRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestToInputRequiresTitle(t *testing.T) {
	_, err := decode(t, `{"description":"no title"}`).ToInput()

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"This field is required."}, vErr.Fields["title"])
}

func TestToInputParsesDueDate(t *testing.T) {
	for _, value := range []string{"2024-03-20T10:00:00Z", "2024-03-20T10:00:00", "2024-03-20T10:00"} {
		input, err := decode(t, `{"title":"x","due_date":"`+value+`"}`).ToInput()
		require.NoError(t, err, value)
		require.NotNil(t, input.DueDate)
		assert.Equal(t, time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC), input.DueDate.UTC(), value)
	}

	input, err := decode(t, `{"title":"x","due_date":""}`).ToInput()
	require.NoError(t, err)
	assert.Nil(t, input.DueDate)
}

func TestToChangesTracksPresence(t *testing.T) {
	changes, err := decode(t, `{"status":"completed","location":null}`).ToChanges(false)
	require.NoError(t, err)

	assert.Nil(t, changes.Title)
	require.NotNil(t, changes.Status)
	assert.Equal(t, "completed", *changes.Status)
	require.NotNil(t, changes.Location)
	assert.Equal(t, "", *changes.Location)
	assert.True(t, changes.HasLocation())
	assert.False(t, changes.ClearDueDate)
}

func TestToChangesDueDate(t *testing.T) {
	changes, err := decode(t, `{"due_date":null}`).ToChanges(false)
	require.NoError(t, err)
	assert.True(t, changes.ClearDueDate)

	_, err = decode(t, `{"due_date":"next week"}`).ToChanges(false)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"Datetime has wrong format."}, vErr.Fields["due_date"])
}

func TestToChangesFullUpdateNeedsTitle(t *testing.T) {
	_, err := decode(t, `{"status":"completed"}`).ToChanges(true)
	assert.Error(t, err)

	changes, err := decode(t, `{"title":"Report"}`).ToChanges(true)
	require.NoError(t, err)
	assert.Equal(t, "Report", *changes.Title)
}
