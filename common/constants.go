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

package common

// File system operation names used as metric and span attributes.
const (
	OpMkDir      = "MkDir"
	OpCreateFile = "CreateFile"
)

// Error categories reported alongside OpsErrorCount. Errnos without a
// category of their own are reported as ErrCategoryOther.
const (
	ErrCategoryExists       = "already exists"
	ErrCategoryNotFound     = "not found"
	ErrCategoryNoSpace      = "no space"
	ErrCategoryPermission   = "permission denied"
	ErrCategoryNameTooLong  = "name too long"
	ErrCategoryQuota        = "quota exceeded"
	ErrCategoryIO           = "input/output error"
	ErrCategoryOther        = "other"
	ErrCategoryInterrupted  = "interrupted"
	ErrCategoryTooManyLinks = "too many links"
)
