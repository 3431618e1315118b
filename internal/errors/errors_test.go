package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = New("sentinel")

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestWrapKeepsIdentity(t *testing.T) {
	wrapped := Wrapf(Wrap(errSentinel, "inner"), "outer %d", 1)

	assert.True(t, Is(wrapped, errSentinel))
	assert.Equal(t, "outer 1: inner: sentinel", wrapped.Error())
	assert.Contains(t, fmt.Sprintf("%+v", wrapped), "errors_test.go")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, WithStack(nil))
}

func TestAsFindsTypedError(t *testing.T) {
	err := WithStack(Wrap(&codedError{code: "E1"}, "context"))

	var target *codedError
	assert.True(t, As(err, &target))
	assert.Equal(t, "E1", target.code)
	assert.Equal(t, "context: E1", err.Error())
}

func TestErrorf(t *testing.T) {
	assert.EqualError(t, Errorf("value %q", "x"), `value "x"`)
}
