package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndWrap(t *testing.T) {
	t.Run("New carries code and message", func(t *testing.T) {
		err := New(CodeNotFound, "speaker not found")
		assert.Equal(t, "speaker not found", err.Error())
		assert.Equal(t, CodeNotFound, CodeOf(err))
	})

	t.Run("Wrap keeps the cause in the chain", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(cause, CodeUnavailable, "failed to load speaker")

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "connection refused")
		assert.Equal(t, CodeUnavailable, CodeOf(err))
	})

	t.Run("Wrap of nil is nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "should vanish"))
	})
}

func TestHasCode(t *testing.T) {
	t.Run("finds codes anywhere in the chain", func(t *testing.T) {
		inner := New(CodeConflict, "active request exists")
		outer := Wrap(inner, CodeUnavailable, "create failed")

		assert.True(t, HasCode(outer, CodeUnavailable))
		assert.True(t, HasCode(outer, CodeConflict))
		assert.False(t, HasCode(outer, CodeNotFound))
	})

	t.Run("sees through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("request failed: %w", New(CodeTimeout, "deadline exceeded"))
		assert.True(t, HasCode(err, CodeTimeout))
	})

	t.Run("nil and plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(nil, CodeInternal))
		assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	})
}

func TestCodeOfAndMessageOf(t *testing.T) {
	t.Run("outermost code wins", func(t *testing.T) {
		err := Wrap(New(CodeConflict, "inner"), CodeUnavailable, "outer")
		assert.Equal(t, CodeUnavailable, CodeOf(err))
		assert.Equal(t, "outer", MessageOf(err))
	})

	t.Run("unclassified errors default to internal", func(t *testing.T) {
		plain := errors.New("something broke")
		assert.Equal(t, CodeInternal, CodeOf(plain))
		assert.Equal(t, "something broke", MessageOf(plain))
	})
}

func TestNewf(t *testing.T) {
	err := Newf(CodeValidation, "at most %d intentions allowed", 3)
	require.Error(t, err)
	assert.Equal(t, "at most 3 intentions allowed", err.Error())
	assert.True(t, HasCode(err, CodeValidation))
}
