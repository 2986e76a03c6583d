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
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/googlecloudplatform/randpop/internal/fsops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func newTestMaterializer(fs fsops.FileSystem, root string, files, dirs uint64, continueOnFailure bool) *materializer {
	p := &failurePolicy{
		fs:                fs,
		metrics:           newCountingMetrics(),
		continueOnFailure: continueOnFailure,
		fileMode:          0644,
		dirMode:           0755,
		maxPathLength:     4096,
	}
	return newMaterializer(p, root, files, dirs)
}

func TestMaterialize_Order(t *testing.T) {
	rfs := &recordingFileSystem{}
	m := newTestMaterializer(rfs, "r", 1, 2, false)

	err := m.materialize(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []call{
		{OpCreateFile, "r/file.0"},
		{OpMkdir, "r/dir.0"},
		{OpCreateFile, "r/dir.0/file.0"},
		{OpMkdir, "r/dir.1"},
		{OpCreateFile, "r/dir.1/file.0"},
	}, rfs.calls)
	assert.Equal(t, "r", string(m.buf))
}

func TestMaterialize_LeafHasNoSubdirectories(t *testing.T) {
	rfs := &recordingFileSystem{}
	m := newTestMaterializer(rfs, "r", 3, 5, false)

	err := m.materialize(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"r/file.0", "r/file.1", "r/file.2"}, rfs.paths())
}

func TestMaterialize_OnDisk(t *testing.T) {
	root := t.TempDir()
	m := newTestMaterializer(fsops.NewOSFileSystem(), root, 2, 2, false)

	err := m.materialize(context.Background(), 2)

	require.NoError(t, err)
	var dirs, files int
	require.NoError(t, filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs++
		} else {
			files++
		}
		return nil
	}))
	// Root plus 2 + 4 subdirectories, two files in each.
	assert.Equal(t, 7, dirs)
	assert.Equal(t, 14, files)
	assert.Equal(t, uint64(6), m.dirsCreated)
	assert.Equal(t, uint64(14), m.filesCreated)
	assert.FileExists(t, filepath.Join(root, "dir.1", "dir.0", "file.1"))
}

func TestMaterialize_FailFastStopsImmediately(t *testing.T) {
	rfs := &recordingFileSystem{failFn: func(_ Op, path string) error {
		if path == "r/dir.0/file.1" {
			return unix.EIO
		}
		return nil
	}}
	m := newTestMaterializer(rfs, "r", 2, 2, false)

	err := m.materialize(context.Background(), 2)

	var cerr *CreationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "r/dir.0/file.1", cerr.Path)
	paths := rfs.paths()
	assert.Equal(t, "r/dir.0/file.1", paths[len(paths)-1])
	assert.Equal(t, []string{"r/file.0", "r/file.1", "r/dir.0", "r/dir.0/file.0", "r/dir.0/file.1"}, paths)
}

func TestMaterialize_ContinueOnFailureDescendsIntoFailedDirectory(t *testing.T) {
	rfs := &recordingFileSystem{failFn: func(_ Op, path string) error {
		if path == "r/dir.0" {
			return unix.EACCES
		}
		return nil
	}}
	m := newTestMaterializer(rfs, "r", 1, 2, true)

	err := m.materialize(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []string{"r/file.0", "r/dir.0", "r/dir.0/file.0", "r/dir.1", "r/dir.1/file.0"}, rfs.paths())
	require.Len(t, m.policy.failures, 1)
	assert.Equal(t, "r/dir.0", m.policy.failures[0].Path)
	assert.Equal(t, uint64(1), m.dirsCreated)
	assert.Equal(t, uint64(3), m.filesCreated)
}

func TestMaterialize_StopsOnCancelledContext(t *testing.T) {
	rfs := &recordingFileSystem{}
	m := newTestMaterializer(rfs, "r", 2, 2, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.materialize(ctx, 2)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rfs.calls)
}
