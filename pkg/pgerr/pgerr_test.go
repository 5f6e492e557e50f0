package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	exclusion := &pq.Error{Code: CodeExclusionViolation, Constraint: "bookings_no_overlap"}
	wrapped := fmt.Errorf("insert booking: %w", exclusion)

	assert.Equal(t, CodeExclusionViolation, Code(wrapped))
	assert.Equal(t, "bookings_no_overlap", Constraint(wrapped))
	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsSerializationFailure(wrapped))

	serialization := fmt.Errorf("commit: %w", &pq.Error{Code: CodeSerializationFailure})
	assert.True(t, IsSerializationFailure(serialization))
	assert.True(t, IsConflict(serialization))

	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: CodeForeignKeyViolation}))
	assert.True(t, IsCheckViolation(&pq.Error{Code: CodeCheckViolation}))

	plain := errors.New("connection refused")
	assert.Empty(t, Code(plain))
	assert.False(t, IsConflict(plain))
}
