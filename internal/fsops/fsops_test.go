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

package fsops

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestMkdirCreatesDirectoryWithMode(t *testing.T) {
	old := SetUmask(0)
	defer SetUmask(old)
	p := filepath.Join(t.TempDir(), "dir.0")

	err := NewOSFileSystem().Mkdir(context.Background(), p, 0755)

	require.NoError(t, err)
	fi, err := os.Stat(p)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
	assert.Equal(t, os.FileMode(0755), fi.Mode().Perm())
}

func TestMkdirExistingDirectoryReturnsEEXIST(t *testing.T) {
	p := t.TempDir()

	err := NewOSFileSystem().Mkdir(context.Background(), p, 0755)

	var pathErr *os.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, p, pathErr.Path)
	assert.True(t, errors.Is(err, unix.EEXIST))
	assert.True(t, errors.Is(err, os.ErrExist))
}

func TestMkdirMissingParentReturnsENOENT(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing", "dir.0")

	err := NewOSFileSystem().Mkdir(context.Background(), p, 0755)

	assert.True(t, errors.Is(err, unix.ENOENT))
}

func TestCreateFileCreatesEmptyFileWithMode(t *testing.T) {
	old := SetUmask(0)
	defer SetUmask(old)
	p := filepath.Join(t.TempDir(), "file.0")

	err := NewOSFileSystem().CreateFile(context.Background(), p, 0644)

	require.NoError(t, err)
	fi, err := os.Stat(p)
	require.NoError(t, err)
	assert.True(t, fi.Mode().IsRegular())
	assert.Equal(t, int64(0), fi.Size())
	assert.Equal(t, os.FileMode(0644), fi.Mode().Perm())
}

func TestCreateFileExistingFileReturnsEEXIST(t *testing.T) {
	p := filepath.Join(t.TempDir(), "file.0")
	require.NoError(t, os.WriteFile(p, []byte("contents"), 0644))

	err := NewOSFileSystem().CreateFile(context.Background(), p, 0644)

	assert.True(t, errors.Is(err, unix.EEXIST))
	content, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(content))
}

func TestCreateFileOverDirectoryFails(t *testing.T) {
	p := t.TempDir()

	err := NewOSFileSystem().CreateFile(context.Background(), p, 0644)

	assert.True(t, errors.Is(err, unix.EEXIST))
}

func TestSetUmaskReturnsPrevious(t *testing.T) {
	old := SetUmask(0027)
	defer SetUmask(old)

	prev := SetUmask(0)

	assert.Equal(t, os.FileMode(0027), prev)
}
