// Copyright 2026 Google LLC
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

package population

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/googlecloudplatform/randpop/common"
)

type call struct {
	op   Op
	path string
}

// recordingFileSystem remembers every mutation and fails the ones failFn
// returns an error for. It touches no disk.
type recordingFileSystem struct {
	mu     sync.Mutex
	calls  []call
	failFn func(op Op, path string) error
	// blockFn, if set, runs before failFn and may wait on ctx.
	blockFn func(ctx context.Context, path string)
}

func (r *recordingFileSystem) do(ctx context.Context, op Op, path string) error {
	r.mu.Lock()
	r.calls = append(r.calls, call{op: op, path: path})
	r.mu.Unlock()
	if r.blockFn != nil {
		r.blockFn(ctx, path)
	}
	if r.failFn != nil {
		if err := r.failFn(op, path); err != nil {
			return &os.PathError{Op: string(op), Path: path, Err: err}
		}
	}
	return nil
}

func (r *recordingFileSystem) Mkdir(ctx context.Context, path string, _ os.FileMode) error {
	return r.do(ctx, OpMkdir, path)
}

func (r *recordingFileSystem) CreateFile(ctx context.Context, path string, _ os.FileMode) error {
	return r.do(ctx, OpCreateFile, path)
}

func (r *recordingFileSystem) paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.path)
	}
	return out
}

// countingMetrics tallies what the policy reports.
type countingMetrics struct {
	mu      sync.Mutex
	ops     map[string]int64
	errs    map[common.FSOpsErrorCategory]int64
	latency int
	active  int64
	peak    int64
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{
		ops:  make(map[string]int64),
		errs: make(map[common.FSOpsErrorCategory]int64),
	}
}

func (c *countingMetrics) OpsCount(_ context.Context, inc int64, fsOp string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ops[fsOp] += inc
}

func (c *countingMetrics) OpsLatency(_ context.Context, _ time.Duration, _ string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latency++
}

func (c *countingMetrics) OpsErrorCount(_ context.Context, inc int64, attrs common.FSOpsErrorCategory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs[attrs] += inc
}

func (c *countingMetrics) ActiveWorkers(_ context.Context, inc int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active += inc
	c.peak = max(c.peak, c.active)
}
