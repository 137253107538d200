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


// Package server exposes the catalog and per-user state over a JSON HTTP API.
//
// Routes, all under /api:
//
//	GET    /health
//	GET    /categories              ?q=
//	GET    /categories/:slug
//	GET    /resources               ?category= &cost= &type= &riskLevel= &region= &authRequired= &apiAvailable= &sort= &order=
//	GET    /resources/:id
//	GET    /search                  ?q= &type= &categories= &regions= &riskLevels= &costs= &region= &riskLevel= &cost= &sort= &order=
//	GET    /bookmarks
//	DELETE /bookmarks
//	POST   /bookmarks/:id
//	DELETE /bookmarks/:id
//	GET    /bookmarks/export        ?resources=true
//	POST   /bookmarks/import
//	GET    /history
//	POST   /history
//	DELETE /history
//	DELETE /history/:query
//	GET    /presets
//	POST   /presets
//	GET    /presets/:id
//	DELETE /presets/:id
//
// /search accepts the same parameters as the search page: unknown sort
// fields disable sorting and any order other than desc sorts ascending.
package server
