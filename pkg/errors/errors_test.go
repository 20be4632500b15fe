package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := Wrap(cause, CodeInternal, "connection reset")

	assert.EqualError(t, err, "connection reset")
	require.True(t, stderrors.Is(err, cause))
	assert.True(t, Is(err, CodeInternal))
}

func TestIsMatchesOutermostCode(t *testing.T) {
	err := Newf(CodeNotFound, "policy %s does not exist", "POL-1")

	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeBadRequest))
	assert.EqualError(t, err, "policy POL-1 does not exist")
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(stderrors.New("boom")))
	assert.Equal(t, CodeBadRequest, CodeOf(New(CodeBadRequest, "nope")))
}
