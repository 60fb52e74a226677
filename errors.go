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
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// ErrorKind classifies a violated precondition. Containers never return or
// panic with an ErrorKind themselves; they pass it to the ErrorHandler they
// were constructed with and then continue with a benign default (false, the
// zero value, or no mutation).
//
// ErrorKind implements error so that it can be matched with errors.Is after
// a handler wraps it. Kinds never carry user data and are not redacted.
type ErrorKind uint8

const (
	// OutOfBound is reported when an index lies outside [0, capacity).
	OutOfBound ErrorKind = iota + 1
	// OutOfSpace is reported when an insertion finds no free bucket.
	OutOfSpace
	// KeyNotFound is reported by Map.Index for a missing key.
	KeyNotFound
	// DuplicateKey is reported by Add for a key that is already present.
	DuplicateKey
	// IsEmpty is reserved for sequence containers (queues, lists) that share
	// this error vocabulary. The hash containers never report it.
	IsEmpty
)

var _ redact.SafeFormatter = ErrorKind(0)
var _ errors.SafeFormatter = ErrorKind(0)

// Error implements the error interface.
func (k ErrorKind) Error() string {
	return k.String()
}

func (k ErrorKind) String() string {
	switch k {
	case OutOfBound:
		return "out of bound"
	case OutOfSpace:
		return "out of space"
	case KeyNotFound:
		return "key not found"
	case DuplicateKey:
		return "duplicate key"
	case IsEmpty:
		return "is empty"
	default:
		return "unknown error"
	}
}

// SafeFormat implements redact.SafeFormatter.
func (k ErrorKind) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(k.String()))
}

// SafeFormatError implements errors.SafeFormatter so that a kind wrapped by
// errors.WithStack or errors.Wrap keeps its message after redaction.
func (k ErrorKind) SafeFormatError(p errors.Printer) (next error) {
	p.Print(redact.SafeString(k.String()))
	return nil
}

// ErrorHandler receives every contract violation detected by a container.
// It is invoked synchronously, exactly once per violation, before the
// failing operation returns. A handler may panic to abort the operation; it
// must not call back into the container that reported the error.
type ErrorHandler func(kind ErrorKind)

// IgnoreErrors is the default ErrorHandler. Violations are silently dropped
// and callers observe only the benign return values.
func IgnoreErrors(ErrorKind) {}

// PanicOnError returns an ErrorHandler that logs the violation to logger and
// then panics with the ErrorKind wrapped with a stack trace. It is the
// strict policy for programs that would rather stop than continue with
// degraded semantics. A nil logger uses slog.Default().
func PanicOnError(logger *slog.Logger) ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(kind ErrorKind) {
		logger.Error("collection error", slog.String("kind", kind.String()))
		panic(errors.WithStack(kind))
	}
}

// defaultErrorHandler returns h, or IgnoreErrors if h is nil.
func defaultErrorHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		return IgnoreErrors
	}
	return h
}
