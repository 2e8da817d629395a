// MIT License
//
// Copyright 2024 The SignxLit Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package sp

import (
	"fmt"
	"regexp"
	"strconv"
)

var idRegexp = regexp.MustCompile(`^0x[0-9a-fA-F]{1,16}$`)

// FormatID returns id as a 0x prefixed, zero padded, 16 digit hex string.
func FormatID(id uint64) string {
	return fmt.Sprintf("0x%016x", id)
}

// ValidID reports whether id is a 0x prefixed hex string that fits in a
// uint64.
func ValidID(id string) bool {
	return idRegexp.MatchString(id)
}

// ParseID parses a 0x prefixed hex id of any width up to 16 digits.
func ParseID(id string) (uint64, error) {
	if !ValidID(id) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return strconv.ParseUint(id[2:], 16, 64)
}
