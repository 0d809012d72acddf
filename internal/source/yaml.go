package source

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte, path string) ([]Record, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return selectList(doc, path)
}
