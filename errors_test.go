// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fixedhash

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

// errorRecorder is an ErrorHandler that remembers every kind it receives.
type errorRecorder struct {
	kinds []ErrorKind
}

func (r *errorRecorder) handle(kind ErrorKind) {
	r.kinds = append(r.kinds, kind)
}

// take returns the recorded kinds and resets the recorder.
func (r *errorRecorder) take() []ErrorKind {
	kinds := r.kinds
	r.kinds = nil
	return kinds
}

func TestErrorKindString(t *testing.T) {
	testCases := []struct {
		kind     ErrorKind
		expected string
	}{
		{OutOfBound, "out of bound"},
		{OutOfSpace, "out of space"},
		{KeyNotFound, "key not found"},
		{DuplicateKey, "duplicate key"},
		{IsEmpty, "is empty"},
		{ErrorKind(0), "unknown error"},
		{ErrorKind(200), "unknown error"},
	}
	for _, c := range testCases {
		t.Run(c.expected, func(t *testing.T) {
			require.Equal(t, c.expected, c.kind.String())
			require.Equal(t, c.expected, c.kind.Error())
		})
	}
}

func TestErrorKindIs(t *testing.T) {
	err := errors.Wrap(OutOfSpace, "inserting")
	require.True(t, errors.Is(err, OutOfSpace))
	require.False(t, errors.Is(err, DuplicateKey))
}

func TestErrorKindRedact(t *testing.T) {
	require.EqualValues(t, "duplicate key", redact.Sprintf("%v", DuplicateKey).Redact())
	require.EqualValues(t, "out of space", redact.Sprint(OutOfSpace).Redact())

	// The value PanicOnError panics with.
	err := errors.WithStack(KeyNotFound)
	require.EqualValues(t, "key not found", redact.Sprint(err).Redact())
	require.EqualValues(t, "key not found", redact.Sprintf("%v", err).Redact())
}

func TestPanicOnError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	m := NewMap[int, int](2, IdentityHasher[int]{},
		WithErrorHandler[int, int](PanicOnError(logger)))
	require.True(t, m.Add(1, 1))

	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			require.True(t, errors.Is(err, DuplicateKey))
		}()
		m.Add(1, 2)
		t.Fatal("expected panic")
	}()

	require.Contains(t, buf.String(), "collection error")
	require.Contains(t, buf.String(), "kind=\"duplicate key\"")

	// The failed Add did not mutate the map.
	v, ok := m.Get(1)
	require.True(t, ok)
	require.EqualValues(t, 1, v)
	require.EqualValues(t, 1, m.Len())
}

func TestIgnoreErrors(t *testing.T) {
	m := NewMap[int, string](1, IdentityHasher[int]{},
		WithErrorHandler[int, string](nil))
	require.True(t, m.Add(1, "a"))
	require.False(t, m.Add(2, "b"))
	require.EqualValues(t, "", m.Index(3))
	_, _, ok := m.Bucket(5)
	require.False(t, ok)
	require.EqualValues(t, 1, m.Len())
}
