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

package lower

import "strings"

// Family of built-in functions sharing a lowering rule.
type Family int

// Built-in families.
const (
	// NotBuiltin is the family of user functions.
	NotBuiltin Family = iota
	// Print writes to the standard output or error: print, println, eprint, eprintln.
	Print
	// Math functions: abs, min, max, pow, sqrt, ...
	Math
	// Trig are trigonometric functions.
	Trig
	// Input reads a line from the standard input.
	Input
	// Assert checks a condition at runtime.
	Assert
	// Convert converts a value: int, float, str, bool, char.
	Convert
	// Range constructs a range.
	Range
	// Collection constructs a collection: Vec::new, HashMap::new, HashSet::from, ...
	Collection
	// Time reads the clock or sleeps.
	Time
	// Env reads or writes the environment of the process.
	Env
	// FS accesses the filesystem.
	FS
	// Path manipulates filesystem paths.
	Path
	// JSON parses and serializes JSON values.
	JSON
	// HTTP sends HTTP requests.
	HTTP
	// SIMD are numeric helpers prefixed by trueno_.
	SIMD
	// Process controls the current process.
	Process
	// DataFrameFn are dataframe functions: col, DataFrame::new, DataFrame::from_csv.
	DataFrameFn
)

var familyNames = map[Family]string{
	NotBuiltin:  "user",
	Print:       "print",
	Math:        "math",
	Trig:        "trig",
	Input:       "input",
	Assert:      "assert",
	Convert:     "convert",
	Range:       "range",
	Collection:  "collection",
	Time:        "time",
	Env:         "env",
	FS:          "fs",
	Path:        "path",
	JSON:        "json",
	HTTP:        "http",
	SIMD:        "simd",
	Process:     "process",
	DataFrameFn: "dataframe",
}

func (f Family) String() string {
	return familyNames[f]
}

// SIMDPrefix is the prefix of numeric helpers lowered to the SIMD bridge.
const SIMDPrefix = "trueno_"

// Builtins maps names to the family of built-in functions they belong to.
// Qualified names are written with ::.
type Builtins map[string]Family

// Family returns the family of a function name.
func (b Builtins) Family(name string) Family {
	if f, ok := b[name]; ok {
		return f
	}
	if strings.HasPrefix(name, SIMDPrefix) && len(name) > len(SIMDPrefix) {
		return SIMD
	}
	return NotBuiltin
}

// DefaultBuiltins returns the table of built-in functions.
func DefaultBuiltins() Builtins {
	b := Builtins{}
	add := func(f Family, names ...string) {
		for _, name := range names {
			b[name] = f
		}
	}
	add(Print, "print", "println", "eprint", "eprintln")
	add(Math, "abs", "min", "max", "pow", "sqrt", "cbrt", "exp", "ln", "log", "log10", "log2",
		"floor", "ceil", "round", "trunc", "signum", "hypot")
	add(Trig, "sin", "cos", "tan", "asin", "acos", "atan", "atan2", "sinh", "cosh", "tanh")
	add(Input, "input", "readline")
	add(Assert, "assert", "assert_eq", "assert_ne", "debug_assert", "debug_assert_eq", "debug_assert_ne")
	add(Convert, "int", "float", "str", "bool", "char")
	add(Range, "range")
	add(Collection, "Vec::new", "Vec::with_capacity", "HashMap::new", "HashSet::new", "HashSet::from",
		"vec")
	add(Time, "sleep", "timestamp", "now")
	add(Env, "env_var", "env_args", "env_set_var", "env_current_dir")
	add(FS, "fs_read", "read_file", "fs_write", "write_file", "fs_exists", "file_exists",
		"fs_remove", "fs_create_dir")
	add(Path, "path_join", "path_extension", "path_filename", "path_parent")
	add(JSON, "json_parse", "json_stringify")
	add(HTTP, "http_get", "http_post")
	add(Process, "exit", "process_id")
	add(DataFrameFn, "col", "DataFrame::new", "DataFrame::from_csv")
	return b
}
