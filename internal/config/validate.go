package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ValidateYAMLSyntax checks if the YAML file has valid syntax. It streams
// through the document with yaml.Decoder, so errors come back with line
// information.
func ValidateYAMLSyntax(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("YAML syntax error in %s: %w", path, err)
		}
	}
}
