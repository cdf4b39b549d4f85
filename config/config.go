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


// Package config reads ingestion settings from a TOML file. Every field
// mirrors an ingest command-line flag; flags given explicitly on the command
// line take precedence over file values.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// File holds the settings a TOML config file may provide. Zero values mean
// "not set"; callers fall back to flag values or defaults.
type File struct {
	Input         string `toml:"input"`
	Output        string `toml:"output"`
	ChunkSize     int    `toml:"chunk_size"`
	Overlap       int    `toml:"overlap"`
	BatchSize     int    `toml:"batch_size"`
	Model         string `toml:"model"`
	EmbeddingHost string `toml:"embedding_host"`
	Catalog       string `toml:"catalog"`
}

// Load parses the TOML file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &f, nil
}
