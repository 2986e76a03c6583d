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
	"strconv"

	"github.com/googlecloudplatform/randpop/cfg"
)

// materializer populates one worker's subtree depth-first. Paths are built
// in a single buffer owned by the worker: each level appends its segment
// before an attempt and truncates it afterwards.
type materializer struct {
	policy      *failurePolicy
	filesPerDir uint64
	dirsPerDir  uint64

	buf []byte

	filesCreated uint64
	dirsCreated  uint64
}

func newMaterializer(policy *failurePolicy, root string, filesPerDir, dirsPerDir uint64) *materializer {
	buf := make([]byte, 0, min(policy.maxPathLength, cfg.DefaultMaxPathLength))
	return &materializer{
		policy:      policy,
		filesPerDir: filesPerDir,
		dirsPerDir:  dirsPerDir,
		buf:         append(buf, root...),
	}
}

func (m *materializer) push(prefix string, i uint64) (mark int) {
	mark = len(m.buf)
	m.buf = append(m.buf, '/')
	m.buf = append(m.buf, prefix...)
	m.buf = strconv.AppendUint(m.buf, i, 10)
	return
}

func (m *materializer) pop(mark int) {
	m.buf = m.buf[:mark]
}

// materialize fills the directory currently in the buffer: filesPerDir files,
// then, unless remaining is zero, dirsPerDir subdirectories each populated
// with remaining-1. A subdirectory is descended into even if creating it
// failed, so that every entry below it is attempted and reported.
func (m *materializer) materialize(ctx context.Context, remaining uint64) error {
	for i := uint64(0); i < m.filesPerDir; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		mark := m.push("file.", i)
		ok, err := m.policy.Attempt(ctx, OpCreateFile, string(m.buf))
		m.pop(mark)
		if err != nil {
			return err
		}
		if ok {
			m.filesCreated++
		}
	}
	if remaining == 0 {
		return nil
	}

	for i := uint64(0); i < m.dirsPerDir; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		mark := m.push("dir.", i)
		ok, err := m.policy.Attempt(ctx, OpMkdir, string(m.buf))
		if err != nil {
			return err
		}
		if ok {
			m.dirsCreated++
		}
		err = m.materialize(ctx, remaining-1)
		m.pop(mark)
		if err != nil {
			return err
		}
	}
	return nil
}
