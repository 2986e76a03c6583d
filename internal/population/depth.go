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
	"fmt"
	"math"
	"math/bits"
)

// ComputeDepth returns the smallest depth d >= 1 for which a tree with
// filesPerDir files in every directory and dirsPerDir subdirectories in every
// non-leaf directory holds at least goal entries, counted as
//
//	(filesPerDir + dirsPerDir) * (1 + dirsPerDir + ... + dirsPerDir^(d-1))
//
// A goal of zero needs depth 1. With no branching the count never grows past
// the first level, so a larger goal yields an error wrapping
// ErrUnreachableDepth. Arithmetic saturates at math.MaxUint64.
func ComputeDepth(goal, filesPerDir, dirsPerDir uint64) (uint64, error) {
	if goal == 0 {
		return 1, nil
	}
	perDir := addSat(filesPerDir, dirsPerDir)
	if perDir >= goal {
		return 1, nil
	}
	if dirsPerDir == 0 || perDir == 0 {
		return 0, fmt.Errorf("%w: %w (goal %d, files %d, dirs %d)",
			ErrConfiguration, ErrUnreachableDepth, goal, filesPerDir, dirsPerDir)
	}
	if dirsPerDir == 1 {
		// Linear growth: one directory per level.
		return goal/perDir + min(goal%perDir, 1), nil
	}

	// dirsPerDir >= 2 at least doubles the level width, so this runs at most
	// 64 times before saturating.
	depth := uint64(1)
	width := uint64(1)
	dirs := uint64(1)
	for mulSat(perDir, dirs) < goal {
		width = mulSat(width, dirsPerDir)
		dirs = addSat(dirs, width)
		depth++
	}
	return depth, nil
}

func addSat(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

func mulSat(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
