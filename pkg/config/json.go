// Copyright 2025 walteh LLC
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

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *JSONParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(filename)), ".json")
}

// jsonConfig lets browser be written as one command string as well as a list.
type jsonConfig struct {
	Config
	Browser json.RawMessage `json:"browser,omitempty"`
}

// 📝 Parse parses the config from JSON bytes
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var raw jsonConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	if decoder.More() {
		return nil, errors.New("parsing JSON: unexpected data after the config object")
	}

	cfg := raw.Config
	browser, err := parseBrowser(raw.Browser)
	if err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	cfg.Browser = browser

	return &cfg, nil
}

// parseBrowser accepts ["open", "-a", "Safari"] or "open -a Safari".
func parseBrowser(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var args []string
	if err := json.Unmarshal(raw, &args); err == nil {
		return args, nil
	}

	var command string
	if err := json.Unmarshal(raw, &command); err != nil {
		return nil, errors.Errorf("browser must be a string or a list of strings, got %s", raw)
	}
	return strings.Fields(command), nil
}
