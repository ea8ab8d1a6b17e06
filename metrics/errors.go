// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import "github.com/pkg/errors"

var (
	ErrLengthMismatch     = errors.New("series lengths do not match")
	ErrInsufficientData   = errors.New("not enough observations")
	ErrNotSquare          = errors.New("covariance matrix dimension does not match weights")
	ErrInvalidConfidence  = errors.New("confidence level must be in (0, 1)")
	ErrInvalidMomentOrder = errors.New("moment order must be >= 0")
	ErrUnknownMethod      = errors.New("unknown estimation method")
)
