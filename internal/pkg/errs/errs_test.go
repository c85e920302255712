//go:build unit

package errs_test

import (
	"errors"
	"io"
	"testing"

	"travel-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codeError struct{ code string }

func (e *codeError) Error() string { return "code " + e.code }

func TestWrapKeepsNil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "load booking"))
	assert.NoError(t, errs.Wrapf(nil, "load booking %s", "WW-20261015-4821"))
}

func TestMark(t *testing.T) {
	sentinel := errors.New("commit failed")

	marked := errs.Mark(io.ErrUnexpectedEOF, sentinel)
	assert.True(t, errs.Is(marked, sentinel))
	assert.True(t, errs.Is(marked, io.ErrUnexpectedEOF))

	assert.Equal(t, sentinel, errs.Mark(nil, sentinel))
}

func TestAs(t *testing.T) {
	err := errs.Wrap(&codeError{code: "23505"}, "insert booking")

	got, ok := errs.As[*codeError](err)
	require.True(t, ok)
	assert.Equal(t, "23505", got.code)

	_, ok = errs.As[*codeError](errs.New("plain"))
	assert.False(t, ok)
}

func TestExtractStackLines(t *testing.T) {
	err := errs.Wrap(errs.New("pool closed"), "count bookings")

	lines := errs.ExtractStackLines(err, 3)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "count bookings")
	assert.Nil(t, errs.ExtractStackLines(nil, 3))
}
