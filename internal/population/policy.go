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
	"errors"
	"os"
	"time"

	"github.com/googlecloudplatform/randpop/common"
	"github.com/googlecloudplatform/randpop/internal/fsops"
	"github.com/googlecloudplatform/randpop/internal/logger"
	"golang.org/x/sys/unix"
)

// failurePolicy is the single point through which a worker mutates the
// filesystem. It decides whether a failed creation ends the worker or is
// recorded and skipped.
//
// A policy belongs to exactly one worker and is not safe for concurrent use.
type failurePolicy struct {
	fs                fsops.FileSystem
	metrics           common.MetricHandle
	continueOnFailure bool
	fileMode          os.FileMode
	dirMode           os.FileMode
	maxPathLength     int

	// Failures tolerated so far, in attempt order.
	failures []*CreationError
}

// Attempt performs op on path. It returns ok when the entry was created. A
// non-nil fatal error means the caller must stop: either the failure is not
// tolerated or ctx was cancelled.
func (p *failurePolicy) Attempt(ctx context.Context, op Op, path string) (ok bool, fatal error) {
	start := time.Now()
	var err error
	if len(path) >= p.maxPathLength {
		// No room for the terminating NUL the kernel expects.
		err = &os.PathError{Op: string(op), Path: path, Err: unix.ENAMETOOLONG}
	} else {
		switch op {
		case OpCreateFile:
			err = p.fs.CreateFile(ctx, path, p.fileMode)
		case OpMkdir:
			err = p.fs.Mkdir(ctx, path, p.dirMode)
		}
	}
	metricOp := metricOpName(op)
	p.metrics.OpsLatency(ctx, time.Since(start), metricOp)

	if err == nil {
		p.metrics.OpsCount(ctx, 1, metricOp)
		return true, nil
	}
	// A throttle wait cut short by cancellation is not a creation failure.
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return false, ctxErr
	}

	cerr := &CreationError{Op: op, Path: path, Err: err}
	logger.Errorf("%v", cerr)
	p.metrics.OpsErrorCount(ctx, 1, common.FSOpsErrorCategory{
		FSOps:         metricOp,
		ErrorCategory: errorCategory(cerr.Errno()),
	})
	if !p.continueOnFailure {
		return false, cerr
	}
	p.failures = append(p.failures, cerr)
	return false, nil
}

func metricOpName(op Op) string {
	if op == OpMkdir {
		return common.OpMkDir
	}
	return common.OpCreateFile
}

func errorCategory(errno unix.Errno) string {
	switch errno {
	case unix.EEXIST:
		return common.ErrCategoryExists
	case unix.ENOENT, unix.ENOTDIR:
		return common.ErrCategoryNotFound
	case unix.ENOSPC:
		return common.ErrCategoryNoSpace
	case unix.EACCES, unix.EPERM, unix.EROFS:
		return common.ErrCategoryPermission
	case unix.ENAMETOOLONG:
		return common.ErrCategoryNameTooLong
	case unix.EDQUOT:
		return common.ErrCategoryQuota
	case unix.EIO:
		return common.ErrCategoryIO
	case unix.EINTR:
		return common.ErrCategoryInterrupted
	case unix.EMLINK:
		return common.ErrCategoryTooManyLinks
	default:
		return common.ErrCategoryOther
	}
}
