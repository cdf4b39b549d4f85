// Copyright 2025 Quercia Labs
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


// Package storage provides the storage abstraction for the ingestion run
// catalog.
//
// The catalog is an optional bookkeeping component: the pipeline works
// without one, and whether a catalog exists is a configuration fact decided
// at startup, never a runtime degradation. The knowledge base itself is NOT
// stored here; it is a plain JSON record written by the kb package.
//
// This package defines the repository interface that decouples the catalog
// from its backing store, allowing different backends (BadgerDB, in-memory)
// to be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the CatalogRepository
// interface to enforce abstraction:
//
//	catalog, err := badger.NewCatalogRepository(backend)  // storage.CatalogRepository
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support.
package storage
