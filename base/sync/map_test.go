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

package sync_test

import (
	"fmt"
	"sync"
	"testing"

	csync "github.com/paiml/ruchy-sub001/base/sync"
)

func TestLoadOrCompute(t *testing.T) {
	var m csync.Map[string, int]
	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}
	for range 3 {
		v, err := m.LoadOrCompute("answer", compute)
		if err != nil {
			t.Fatal(err)
		}
		if v != 42 {
			t.Errorf("got %d but want 42", v)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times but want 1", calls)
	}
	if _, err := m.LoadOrCompute("bad", func() (int, error) { return 0, fmt.Errorf("failed") }); err == nil {
		t.Errorf("expected an error")
	}
	if _, ok := m.Load("bad"); ok {
		t.Errorf("failed computation has been stored")
	}
}

func TestConcurrentLoadOrCompute(t *testing.T) {
	var m csync.Map[int, string]
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.LoadOrCompute(i%4, func() (string, error) {
				return fmt.Sprint(i % 4), nil
			}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if got := m.Size(); got != 4 {
		t.Errorf("got %d entries but want 4", got)
	}
}
