// Copyright 2026 Blink Labs Software
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

package xdr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEOF is returned when a read would pass the end of the
	// input data
	ErrUnexpectedEOF = errors.New("unexpected end of XDR data")

	// ErrLengthExceedsData is returned when a length prefix declares more
	// bytes than remain in the input data
	ErrLengthExceedsData = errors.New(
		"declared length exceeds available data",
	)

	// ErrInvalidBool is returned when a boolean field holds a value other
	// than 0 or 1
	ErrInvalidBool = errors.New("boolean value is not 0 or 1")

	// ErrInvalidOptionalFlag is returned when an optional presence flag
	// holds a value other than 0 or 1
	ErrInvalidOptionalFlag = errors.New("optional flag is not 0 or 1")

	// ErrInvalidUtf8 is returned when a string field is not valid UTF-8
	ErrInvalidUtf8 = errors.New("string is not valid UTF-8")

	// ErrTrailingBytes is returned by Unmarshal when input data remains
	// after decoding completes
	ErrTrailingBytes = errors.New("trailing bytes after XDR value")
)

// UnknownDiscriminantError is returned when a union discriminant does not
// match any declared arm. It carries the union type name and the offending
// value for diagnostics.
type UnknownDiscriminantError struct {
	Union        string
	Discriminant int32
}

func (e *UnknownDiscriminantError) Error() string {
	return fmt.Sprintf(
		"unknown discriminant %d for union %s",
		e.Discriminant,
		e.Union,
	)
}

// unknownDiscriminant is a helper for building the error from a decode site
func unknownDiscriminant(union string, discriminant int32) error {
	return &UnknownDiscriminantError{
		Union:        union,
		Discriminant: discriminant,
	}
}
