// Copyright (C) 2024 Willcharlton, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package diag implements the two error channels the emitter uses:
// recoverable compile-time errors (returned as *Error) and internal
// consistency failures (reported by panicking with *BugError).
package diag

import (
	"fmt"

	"github.com/google/uuid"
)

// Session tags every diagnostic produced while compiling the scopes of
// a single driver invocation, so a multi-scope compile can correlate
// errors back to one run.
type Session struct {
	ID uuid.UUID
}

// NewSession starts a fresh diagnostic session.
func NewSession() Session {
	return Session{ID: uuid.New()}
}

// Error is a recoverable compile-time error tied to a source line. The
// emitter returns it for too many labels and too many cell variables;
// operand immediates are not range-checked, so a value too wide for
// its encoded field is truncated and produces no Error. It is returned
// up the call chain, never panicked.
type Error struct {
	Session uuid.UUID
	Line    int
	Msg     string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// Errf builds a *Error tied to the given source line.
func (s Session) Errf(line int, format string, args ...any) *Error {
	return &Error{Session: s.ID, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// BugError marks an internal consistency failure: something that must
// not occur on any syntactically valid input (label offset drift
// between passes, non-zero stack at end_pass, a duplicate label
// assignment, a write past the end of the buffer, operand-stack
// underflow). These are compiler bugs, not user-facing errors.
type BugError struct {
	Session uuid.UUID
	Msg     string
}

func (b *BugError) Error() string {
	return "compiler bug: " + b.Msg
}

// Bug reports an internal consistency failure by panicking with a
// *BugError. Callers at the top of a compile (the driver, tests) are
// expected to recover and turn this into a fatal report; the emitter
// itself never recovers its own bugs.
func (s Session) Bug(format string, args ...any) {
	panic(&BugError{Session: s.ID, Msg: fmt.Sprintf(format, args...)})
}
