// Copyright 2024 Google LLC
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

package fmterr

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// stackOf returns the deepest stack trace recorded in an error chain.
func stackOf(err error) (errors.StackTrace, bool) {
	var found errors.StackTrace
	for err != nil {
		if st, ok := err.(interface{ StackTrace() errors.StackTrace }); ok {
			found = st.StackTrace()
		}
		err = errors.Unwrap(err)
	}
	return found, found != nil
}

// format prints an error. The %+v verb appends the stack trace
// of the place where the error was created.
func format(err error, s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, err.Error())
			if st, ok := stackOf(err); ok {
				fmt.Fprintf(s, "\nerror created at:%+v", st)
			}
			return
		}
		io.WriteString(s, err.Error())
	case 's':
		io.WriteString(s, err.Error())
	case 'q':
		fmt.Fprintf(s, "%q", err.Error())
	}
}
