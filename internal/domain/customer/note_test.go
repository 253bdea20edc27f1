package customer

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNote(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()
	authorID := uuid.New()

	t.Run("creates note attributed to the author", func(t *testing.T) {
		note, err := NewNote(tenantID, customerID, authorID, "called about delayed shipment")

		require.NoError(t, err)
		assert.Equal(t, authorID, note.AuthorID)
		assert.Equal(t, customerID, note.CustomerID)
		assert.False(t, note.CreatedAt.After(time.Now()))
	})

	t.Run("rejects empty content", func(t *testing.T) {
		note, err := NewNote(tenantID, customerID, authorID, "   ")

		assert.Error(t, err)
		assert.Nil(t, note)
	})

	t.Run("accepts content at the limit", func(t *testing.T) {
		note, err := NewNote(tenantID, customerID, authorID, strings.Repeat("x", MaxNoteLength))

		require.NoError(t, err)
		assert.Len(t, note.Content, MaxNoteLength)
	})

	t.Run("rejects content over the limit", func(t *testing.T) {
		note, err := NewNote(tenantID, customerID, authorID, strings.Repeat("x", MaxNoteLength+1))

		assert.Error(t, err)
		assert.Nil(t, note)
	})

	t.Run("rejects missing author", func(t *testing.T) {
		note, err := NewNote(tenantID, customerID, uuid.Nil, "content")

		assert.Error(t, err)
		assert.Nil(t, note)
	})
}
