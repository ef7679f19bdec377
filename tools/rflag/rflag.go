// Copyright 2025 Google LLC
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

// Package rflag provides flag types for the command line tools.
package rflag

import (
	"flag"
	"strings"
)

type stringList struct {
	list *[]string
}

func (sl *stringList) String() string {
	if sl.list == nil {
		return ""
	}
	return strings.Join(*sl.list, ",")
}

// Set appends comma separated values to the list.
func (sl *stringList) Set(values string) error {
	*sl.list = append(*sl.list, Split(values)...)
	return nil
}

// Split returns the non empty values of a comma separated list.
func Split(values string) []string {
	var list []string
	for _, value := range strings.Split(values, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		list = append(list, value)
	}
	return list
}

// StringListVar defines a flag accepting comma separated values in a flag set.
// The flag can be repeated.
func StringListVar(fs *flag.FlagSet, name, doc string) *[]string {
	var list []string
	fs.Var(&stringList{&list}, name, doc)
	return &list
}

// StringList defines a flag accepting comma separated values.
func StringList(name, doc string) *[]string {
	return StringListVar(flag.CommandLine, name, doc)
}
