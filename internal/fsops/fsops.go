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

// Package fsops exposes the single-entry filesystem primitives used to
// populate a tree: mkdir, create-and-close, and the process umask.
//
// Each primitive is one system call with a pass/fail outcome. Retrying and
// backing off, if any, is left to the filesystem underneath.
package fsops

import (
	"context"
	"os"

	"golang.org/x/sys/unix"
)

// FileSystem is the set of mutations a tree population needs. The context is
// consulted by wrappers (throttling, tracing) only; the underlying calls are
// not cancelable once issued.
type FileSystem interface {
	// Mkdir creates a single directory. It does not create parents and fails
	// with EEXIST if path is already present.
	Mkdir(ctx context.Context, path string, mode os.FileMode) error

	// CreateFile creates a new empty regular file and closes it right away.
	// Like Mkdir, it fails with EEXIST if path is already present.
	CreateFile(ctx context.Context, path string, mode os.FileMode) error
}

// OSFileSystem talks to the kernel directly.
type OSFileSystem struct{}

func NewOSFileSystem() FileSystem {
	return &OSFileSystem{}
}

func (*OSFileSystem) Mkdir(ctx context.Context, path string, mode os.FileMode) error {
	if err := ignoringEINTR(func() error {
		return unix.Mkdir(path, uint32(mode.Perm()))
	}); err != nil {
		return &os.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return nil
}

func (*OSFileSystem) CreateFile(ctx context.Context, path string, mode os.FileMode) error {
	var fd int
	err := ignoringEINTR(func() (err error) {
		fd, err = unix.Open(path, unix.O_CREAT|unix.O_EXCL|unix.O_WRONLY|unix.O_CLOEXEC, uint32(mode.Perm()))
		return
	})
	if err != nil {
		return &os.PathError{Op: "creat", Path: path, Err: err}
	}
	if err = unix.Close(fd); err != nil {
		return &os.PathError{Op: "close", Path: path, Err: err}
	}
	return nil
}

// SetUmask sets the process file creation mask and returns the previous one.
// The mask is process wide, not per goroutine.
func SetUmask(mask os.FileMode) (old os.FileMode) {
	return os.FileMode(unix.Umask(int(mask.Perm())))
}

// ignoringEINTR retries fn while it is interrupted by a signal. Go installs
// its signal handlers with SA_RESTART, but slow filesystems such as FUSE
// mounts can still surface EINTR.
func ignoringEINTR(fn func() error) error {
	for {
		err := fn()
		if err != unix.EINTR {
			return err
		}
	}
}
