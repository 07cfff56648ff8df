// Copyright (c) 2026 Dugout. All rights reserved.

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dugoutlab/dugout/pkg/uuid"
)

func TestNew_IsSortableAndValid(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first, second)
	assert.Equal(t, byte('7'), first[14])
}

func TestValid(t *testing.T) {
	assert.False(t, uuid.Valid("not-a-uuid"))
	assert.False(t, uuid.Valid(""))
	assert.True(t, uuid.Valid("0190a6e2-7c1a-7b3e-9f00-1234567890ab"))
}
