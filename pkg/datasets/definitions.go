/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package datasets defines the three portal exports and the transforms that
// turn each raw export into the published CSV: column selection, localized
// renames and the derived usage ratio.
package datasets

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Dataset names, which double as the published file names (<name>.csv).
const (
	Licenses   = "licenses"
	BackupSets = "backupsets"
	Groups     = "groups"
)

// Names lists the datasets in refresh order.
var Names = []string{Licenses, BackupSets, Groups}

// Source column names referenced by the transforms. They must match the
// embedded definitions file.
const (
	colUsage        = "Usage"
	colStatus       = "Status"
	colQuota        = "Quota (GB)"
	colExternalized = "Externalized storage (GB)"
	colUsedSpace    = "Used space (GB)"
)

// ratioHeader is the derived column appended by the licenses and groups
// transforms.
const ratioHeader = "Ratio"

//go:embed datasets.yaml
var definitionsYAML []byte

// ColumnMapping maps a portal column to its localized output name.
type ColumnMapping struct {
	Source string `yaml:"source"`
	Output string `yaml:"output"`
}

// Definition describes one export: where to fetch it and which columns to
// keep, in order.
type Definition struct {
	Name       string          `yaml:"name"`
	ExportPath string          `yaml:"exportPath"`
	Columns    []ColumnMapping `yaml:"columns"`
}

// SourceIndex returns the position of a source column within the kept
// subset. An error here means the embedded definitions and the transform
// code have drifted apart.
func (d Definition) SourceIndex(source string) (int, error) {
	for i, col := range d.Columns {
		if col.Source == source {
			return i, nil
		}
	}
	return 0, fmt.Errorf("dataset %q has no column %q in its definition", d.Name, source)
}

type definitionsFile struct {
	Datasets []Definition `yaml:"datasets"`
}

// LoadDefinitions parses the embedded definitions and verifies all three
// datasets are present.
func LoadDefinitions() (map[string]Definition, error) {
	var file definitionsFile
	if err := yaml.Unmarshal(definitionsYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse embedded dataset definitions: %w", err)
	}

	defs := make(map[string]Definition, len(file.Datasets))
	for _, d := range file.Datasets {
		defs[d.Name] = d
	}
	for _, name := range Names {
		if _, ok := defs[name]; !ok {
			return nil, fmt.Errorf("dataset %q missing from embedded definitions", name)
		}
	}
	return defs, nil
}
