package assertions_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/prysmaticlabs/slashing-oracle/testing/assert"
	"github.com/prysmaticlabs/slashing-oracle/testing/require"
	"github.com/sirupsen/logrus/hooks/test"
)

// tbMock records failures instead of failing the running test.
type tbMock struct {
	errMsg   string
	fatalMsg string
}

func (tb *tbMock) Errorf(format string, args ...interface{}) {
	tb.errMsg = fmt.Sprintf(format, args...)
}

func (tb *tbMock) Fatalf(format string, args ...interface{}) {
	tb.fatalMsg = fmt.Sprintf(format, args...)
}

func TestAssert_Equal(t *testing.T) {
	tests := []struct {
		name        string
		expected    interface{}
		actual      interface{}
		msg         []interface{}
		expectedErr string
	}{
		{
			name:     "equal values",
			expected: 42,
			actual:   42,
		},
		{
			name:        "non-equal values",
			expected:    42,
			actual:      41,
			expectedErr: "Values are not equal, want: 42 (int), got: 41 (int)",
		},
		{
			name:        "custom error message",
			expected:    42,
			actual:      41,
			msg:         []interface{}{"Custom values are not equal"},
			expectedErr: "Custom values are not equal, want: 42 (int), got: 41 (int)",
		},
		{
			name:        "custom error message with params",
			expected:    42,
			actual:      41,
			msg:         []interface{}{"Custom values are not equal (for slot %d)", 12},
			expectedErr: "Custom values are not equal (for slot 12), want: 42 (int), got: 41 (int)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := &tbMock{}
			assert.Equal(tb, tt.expected, tt.actual, tt.msg...)
			if !strings.Contains(tb.errMsg, tt.expectedErr) {
				t.Errorf("got: %q, want: %q", tb.errMsg, tt.expectedErr)
			}
			tb = &tbMock{}
			require.Equal(tb, tt.expected, tt.actual, tt.msg...)
			if !strings.Contains(tb.fatalMsg, tt.expectedErr) {
				t.Errorf("got: %q, want: %q", tb.fatalMsg, tt.expectedErr)
			}
		})
	}
}

func TestAssert_DeepEqual(t *testing.T) {
	tb := &tbMock{}
	assert.DeepEqual(tb, []uint64{1, 2}, []uint64{1, 2})
	if tb.errMsg != "" {
		t.Errorf("Unexpected error: %s", tb.errMsg)
	}
	assert.DeepEqual(tb, []uint64{1, 2}, []uint64{1, 3})
	if !strings.Contains(tb.errMsg, "Values are not equal") {
		t.Errorf("Expected failure, got: %q", tb.errMsg)
	}
}

func TestAssert_NoErrorAndErrorContains(t *testing.T) {
	tb := &tbMock{}
	assert.NoError(tb, nil)
	if tb.errMsg != "" {
		t.Errorf("Unexpected error: %s", tb.errMsg)
	}
	assert.NoError(tb, errors.New("boom"), "Could not do thing")
	if !strings.Contains(tb.errMsg, "Could not do thing: boom") {
		t.Errorf("Unexpected message: %q", tb.errMsg)
	}

	tb = &tbMock{}
	assert.ErrorContains(tb, "boom", errors.New("big boom"))
	if tb.errMsg != "" {
		t.Errorf("Unexpected error: %s", tb.errMsg)
	}
	assert.ErrorContains(tb, "boom", nil)
	if !strings.Contains(tb.errMsg, "Expected error not returned") {
		t.Errorf("Unexpected message: %q", tb.errMsg)
	}
}

func TestAssert_ErrorIs(t *testing.T) {
	sentinel := errors.New("sentinel")
	tb := &tbMock{}
	assert.ErrorIs(tb, fmt.Errorf("wrapped: %w", sentinel), sentinel)
	if tb.errMsg != "" {
		t.Errorf("Unexpected error: %s", tb.errMsg)
	}
	assert.ErrorIs(tb, errors.New("other"), sentinel)
	if !strings.Contains(tb.errMsg, "is not sentinel") {
		t.Errorf("Unexpected message: %q", tb.errMsg)
	}
}

func TestAssert_NotNil(t *testing.T) {
	tb := &tbMock{}
	var nilPtr *tbMock
	assert.NotNil(tb, nilPtr)
	if !strings.Contains(tb.errMsg, "Unexpected nil value") {
		t.Errorf("Unexpected message: %q", tb.errMsg)
	}
	tb = &tbMock{}
	assert.NotNil(tb, &tbMock{})
	if tb.errMsg != "" {
		t.Errorf("Unexpected error: %s", tb.errMsg)
	}
}

func TestAssert_LogsContain(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.WithField("prefix", "oracle").Info("Attester double vote slashing")

	tb := &tbMock{}
	assert.LogsContain(tb, hook, "double vote")
	if tb.errMsg != "" {
		t.Errorf("Unexpected error: %s", tb.errMsg)
	}
	assert.LogsDoNotContain(tb, hook, "surround")
	if tb.errMsg != "" {
		t.Errorf("Unexpected error: %s", tb.errMsg)
	}
	assert.LogsContain(tb, hook, "surround")
	if !strings.Contains(tb.errMsg, "Expected log not found") {
		t.Errorf("Unexpected message: %q", tb.errMsg)
	}
}
