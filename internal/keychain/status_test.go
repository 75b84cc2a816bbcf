package keychain

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, "No error.", StatusMessage(StatusSuccess))
	assert.Equal(t, "The specified item already exists in the keychain.", StatusDuplicateItem.String())
	assert.Equal(t, "code: -1234", StatusMessage(Status(-1234)))
}

func TestStatusMessage_AllKnownCodesHaveText(t *testing.T) {
	for s, msg := range statusMessages {
		assert.NotEmpty(t, msg, "status %d", s)
		assert.NotContains(t, StatusMessage(s), "code:")
	}
}

func TestStatusError(t *testing.T) {
	cause := stderrors.New("dbus: connection refused")
	err := newStatusError("find", StatusNotAvailable, cause)
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StatusNotAvailable, se.Status)
	assert.Equal(t, "find", se.Op)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "-25291")
	assert.Contains(t, err.Error(), "connection refused")

	assert.NoError(t, newStatusError("find", StatusSuccess, nil))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, StatusSuccess, StatusOf(nil))
	assert.Equal(t, StatusItemNotFound, StatusOf(newStatusError("remove", StatusItemNotFound, nil)))

	wrapped := fmt.Errorf("outer: %w", newStatusError("add", StatusDuplicateItem, nil))
	assert.Equal(t, StatusDuplicateItem, StatusOf(wrapped))

	assert.Equal(t, StatusIO, StatusOf(stderrors.New("plain")))
}
