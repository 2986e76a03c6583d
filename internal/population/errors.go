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
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	// ErrConfiguration marks settings that cannot produce a valid run.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnreachableDepth is wrapped by the ErrConfiguration returned from
	// ComputeDepth when no depth can reach the target.
	ErrUnreachableDepth = errors.New("target unreachable with zero branching")

	// ErrResourceAllocation is returned when per-worker bookkeeping cannot be
	// allocated.
	ErrResourceAllocation = errors.New("resource allocation error")

	// ErrSpawn is returned when a worker could not be started.
	ErrSpawn = errors.New("worker spawn error")

	// ErrCreation is matched by every *CreationError.
	ErrCreation = errors.New("creation error")

	// ErrJoin is matched by every *JoinError.
	ErrJoin = errors.New("worker join error")
)

// Op names a single filesystem mutation.
type Op string

const (
	OpCreateFile Op = "creat"
	OpMkdir      Op = "mkdir"
)

// CreationError is a failed mkdir or file creation.
type CreationError struct {
	Op   Op
	Path string
	Err  error
}

func (e *CreationError) Error() string {
	if errno := e.Errno(); errno != 0 {
		return fmt.Sprintf("%s failed on %s: %s (%d)", e.Op, e.Path, errno.Error(), int(errno))
	}
	return fmt.Sprintf("%s failed on %s: %v", e.Op, e.Path, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

func (e *CreationError) Is(target error) bool {
	return target == ErrCreation
}

// Errno returns the system error number behind the failure, or 0 if the
// failure did not come from a system call.
func (e *CreationError) Errno() unix.Errno {
	var errno unix.Errno
	if errors.As(e.Err, &errno) {
		return errno
	}
	return 0
}

// JoinError reports a worker that terminated abnormally. It never aborts the
// run.
type JoinError struct {
	WorkerID string
	Cause    any
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("worker %s terminated abnormally: %v", e.WorkerID, e.Cause)
}

func (e *JoinError) Is(target error) bool {
	return target == ErrJoin
}
