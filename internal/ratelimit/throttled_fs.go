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

package ratelimit

import (
	"context"
	"os"

	"github.com/googlecloudplatform/randpop/internal/fsops"
)

// NewThrottledFileSystem creates a file system that limits the rate at which
// it calls the wrapped file system using opThrottle. Every mkdir or file
// creation costs one token.
func NewThrottledFileSystem(
	opThrottle Throttle,
	wrapped fsops.FileSystem) (fs fsops.FileSystem) {
	fs = &throttledFileSystem{
		opThrottle: opThrottle,
		wrapped:    wrapped,
	}
	return
}

type throttledFileSystem struct {
	opThrottle Throttle
	wrapped    fsops.FileSystem
}

func (fs *throttledFileSystem) Mkdir(ctx context.Context, path string, mode os.FileMode) (err error) {
	// Wait for permission to call through.
	err = fs.opThrottle.Wait(ctx, 1)
	if err != nil {
		return
	}

	// Call through.
	err = fs.wrapped.Mkdir(ctx, path, mode)
	return
}

func (fs *throttledFileSystem) CreateFile(ctx context.Context, path string, mode os.FileMode) (err error) {
	// Wait for permission to call through.
	err = fs.opThrottle.Wait(ctx, 1)
	if err != nil {
		return
	}

	// Call through.
	err = fs.wrapped.CreateFile(ctx, path, mode)
	return
}
