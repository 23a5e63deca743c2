package txerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/roswire/transcoder/txerr"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCodeNotMessage(t *testing.T) {
	a := txerr.Newf(txerr.Truncated, "short read at offset %d", 12)
	assert.True(t, errors.Is(a, txerr.ErrTruncated))
	assert.False(t, errors.Is(a, txerr.ErrOverflow))
}

func TestIsThroughWrapping(t *testing.T) {
	wrapped := pkgerrors.Wrap(txerr.ErrUnknownType, "resolving Any payload")
	assert.True(t, errors.Is(wrapped, txerr.ErrUnknownType))
}

func TestErrorMessageIncludesCode(t *testing.T) {
	err := txerr.New(txerr.Overflow, "fixed buffer of 16 bytes exceeded")
	assert.Equal(t, "overflow: fixed buffer of 16 bytes exceeded", err.Error())
}

func TestCodeStringCoversAllSentinels(t *testing.T) {
	for _, e := range []txerr.Error{
		txerr.ErrTruncated, txerr.ErrMalformedVarint, txerr.ErrUnsupportedFeature,
		txerr.ErrAlreadyPopulated, txerr.ErrUnknownType, txerr.ErrOverflow, txerr.ErrAllocation,
	} {
		assert.NotEqual(t, "unknown", fmt.Sprint(e.Code()))
	}
}
