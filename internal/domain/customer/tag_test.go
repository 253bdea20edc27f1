package customer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTag(t *testing.T) {
	tenantID := uuid.New()

	t.Run("normalizes name to lowercase", func(t *testing.T) {
		tag, err := NewTag(tenantID, "VIP-Customer", "#ff8800")

		require.NoError(t, err)
		assert.Equal(t, "vip-customer", tag.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		tag, err := NewTag(tenantID, "", "")

		assert.Error(t, err)
		assert.Nil(t, tag)
	})

	t.Run("rejects invalid characters", func(t *testing.T) {
		tag, err := NewTag(tenantID, "has spaces", "")

		assert.Error(t, err)
		assert.Nil(t, tag)
	})

	t.Run("rejects malformed color", func(t *testing.T) {
		tag, err := NewTag(tenantID, "vip", "orange")

		assert.Error(t, err)
		assert.Nil(t, tag)
	})
}

func TestNewTagAssignment(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()
	tagID := uuid.New()
	adminID := uuid.New()

	assignment := NewTagAssignment(tenantID, customerID, tagID, adminID)

	assert.Equal(t, customerID, assignment.CustomerID)
	assert.Equal(t, tagID, assignment.TagID)
	assert.Equal(t, adminID, assignment.AssignedBy)
	assert.NotEqual(t, uuid.Nil, assignment.ID)
}
