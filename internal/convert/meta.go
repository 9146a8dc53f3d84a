// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdftext/pkg/types"
)

// WriteMeta writes the conversion record as YAML to path.
func WriteMeta(conv *types.Conversion, path string) error {
	data, err := yaml.Marshal(conv)
	if err != nil {
		return fmt.Errorf("marshaling conversion record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing conversion record %s: %w", path, err)
	}
	return nil
}
