// Copyright 2025 Poiesic Systems
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


// Package linkcheck checks that the URLs referenced by catalog resources are
// reachable.
//
// Each URL is requested with HEAD, following redirects, on a bounded worker
// pool. A URL is valid when the final response is 2xx or 3xx, invalid when it
// is malformed, uses a scheme other than http/https or answers with any other
// status, and an error when the request itself fails. Failed requests are
// retried with exponential backoff before being reported as errors.
//
//	checker, err := linkcheck.NewChecker(linkcheck.WithPoolSize(8))
//	if err != nil {
//		return err
//	}
//	defer checker.Release()
//	report, err := checker.CheckResources(ctx, ds.Resources())
package linkcheck
