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


// Package bookmarks moves bookmarks in and out of the store as portable JSON
// documents.
//
// The export format (version "1.0") is:
//
//	{
//	  "version": "1.0",
//	  "exportDate": "2024-01-01T00:00:00Z",
//	  "bookmarkCount": 2,
//	  "bookmarks": [
//	    {"resourceId": "whitepages", "timestamp": 1704067200000, "bookmarkedAt": "2024-01-01T00:00:00Z"}
//	  ],
//	  "resources": [ ...full resource records, optional... ]
//	}
//
// Import validates a document in a fixed order and reports the first problem
// found, then merges it with the existing bookmarks.
package bookmarks
