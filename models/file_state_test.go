// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFileState_Equal_Data verifies that Data states compare by byte
// content.
func TestFileState_Equal_Data(t *testing.T) {
	tests := []struct {
		name     string
		a, b     FileState
		expected bool
	}{
		{
			name:     "same content",
			a:        DataState([]byte(`{"a":1}`)),
			b:        DataState([]byte(`{"a":1}`)),
			expected: true,
		},
		{
			name:     "different content",
			a:        DataState([]byte(`{"a":1}`)),
			b:        DataState([]byte(`{"a":2}`)),
			expected: false,
		},
		{
			name:     "empty vs nil content",
			a:        DataState([]byte{}),
			b:        DataState(nil),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
			assert.Equal(t, tt.expected, tt.b.Equal(tt.a))
		})
	}
}

// TestFileState_Equal_ReadError verifies the deliberately coarse equality of
// read errors: two ReadError states are equal even when their causes differ,
// so a changing cause never produces a downstream transition.
func TestFileState_Equal_ReadError(t *testing.T) {
	permission := ReadErrorState(errors.New("permission denied"))
	disk := ReadErrorState(errors.New("input/output error"))

	assert.True(t, permission.Equal(disk))
	assert.True(t, permission.Equal(permission))
}

// TestFileState_Equal_Tags verifies tag-only equality of the remaining
// variants and inequality across variants.
func TestFileState_Equal_Tags(t *testing.T) {
	assert.True(t, TooLargeState().Equal(TooLargeState()))
	assert.True(t, UnreadableState().Equal(UnreadableState()))

	assert.False(t, TooLargeState().Equal(UnreadableState()))
	assert.False(t, UnreadableState().Equal(DataState(nil)))
	assert.False(t, DataState([]byte("x")).Equal(ReadErrorState(errors.New("x"))))
}

// TestFileState_Accessors verifies the variant tag and payload accessors.
func TestFileState_Accessors(t *testing.T) {
	cause := errors.New("boom")

	data := DataState([]byte("payload"))
	assert.Equal(t, FileStateData, data.Kind())
	assert.Equal(t, []byte("payload"), data.Data())
	assert.NoError(t, data.Cause())

	readErr := ReadErrorState(cause)
	assert.Equal(t, FileStateReadError, readErr.Kind())
	assert.Nil(t, readErr.Data())
	assert.ErrorIs(t, readErr.Cause(), cause)

	assert.Equal(t, FileStateTooLarge, TooLargeState().Kind())
	assert.Equal(t, FileStateUnreadable, UnreadableState().Kind())
}

// TestFileState_DataIsACopy verifies that mutating the slice returned by
// Data leaves the state's content and equality untouched.
func TestFileState_DataIsACopy(t *testing.T) {
	original := DataState([]byte("payload"))
	twin := DataState([]byte("payload"))

	leaked := original.Data()
	leaked[0] = 'X'

	assert.Equal(t, []byte("payload"), original.Data())
	assert.True(t, original.Equal(twin))
}

// TestFileStateKind_String verifies the log labels of all variant tags.
func TestFileStateKind_String(t *testing.T) {
	assert.Equal(t, "data", FileStateData.String())
	assert.Equal(t, "too_large", FileStateTooLarge.String())
	assert.Equal(t, "unreadable", FileStateUnreadable.String())
	assert.Equal(t, "read_error", FileStateReadError.String())
	assert.Equal(t, "unknown", FileStateKind(42).String())
}
