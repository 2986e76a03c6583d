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

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type UtilTest struct {
	suite.Suite
}

func TestUtilSuite(t *testing.T) {
	suite.Run(t, new(UtilTest))
}

////////////////////////////////////////////////////////////////////////
// Tests
////////////////////////////////////////////////////////////////////////

func (ts *UtilTest) TestResolveFilePathStartingWithTilda() {
	resolvedPath, err := GetResolvedPath("~/randpop")

	assert.Equal(ts.T(), nil, err)
	homeDir, err := os.UserHomeDir()
	assert.Equal(ts.T(), nil, err)
	assert.Equal(ts.T(), filepath.Join(homeDir, "randpop"), resolvedPath)
}

func (ts *UtilTest) TestResolveFilePathStartingWithDot() {
	resolvedPath, err := GetResolvedPath("./randpop")

	assert.Equal(ts.T(), nil, err)
	currentWorkingDir, err := os.Getwd()
	assert.Equal(ts.T(), nil, err)
	assert.Equal(ts.T(), filepath.Join(currentWorkingDir, "randpop"), resolvedPath)
}

func (ts *UtilTest) TestResolveFilePathStartingWithDoubleDot() {
	resolvedPath, err := GetResolvedPath("../randpop")

	assert.Equal(ts.T(), nil, err)
	currentWorkingDir, err := os.Getwd()
	assert.Equal(ts.T(), nil, err)
	assert.Equal(ts.T(), filepath.Join(currentWorkingDir, "../randpop"), resolvedPath)
}

func (ts *UtilTest) TestResolveAbsoluteAndEmptyPaths() {
	for _, input := range []string{"", "/mnt/fs/randpop"} {
		resolvedPath, err := GetResolvedPath(input)

		assert.NoError(ts.T(), err)
		assert.Equal(ts.T(), input, resolvedPath)
	}
}

func (ts *UtilTest) TestStringify() {
	input := struct {
		Files int
		Dirs  int
		root  string
	}{Files: 14, Dirs: 7, root: "ignored"}

	actual, err := Stringify(input)

	assert.NoError(ts.T(), err)
	assert.Equal(ts.T(), `{"Files":14,"Dirs":7}`, actual)
}

func (ts *UtilTest) TestStringifyShouldReturnErrorForUnsupportedType() {
	_, err := Stringify(make(chan int))

	assert.Error(ts.T(), err)
}

func (ts *UtilTest) TestYAMLStringify() {
	input := struct {
		Count   uint64 `yaml:"count"`
		Threads uint64 `yaml:"threads"`
	}{Count: 1000, Threads: 4}

	actual, err := YAMLStringify(input)

	assert.NoError(ts.T(), err)
	assert.Equal(ts.T(), "count: 1000\nthreads: 4\n", actual)
}
