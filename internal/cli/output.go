package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", outputText, "output format: text, json or yaml")
}

func writeStructured(writer io.Writer, format string, value any, text func(io.Writer) error) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", outputText:
		return text(writer)
	case outputJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case outputYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func valueOrUnknown(value *string) string {
	if value == nil {
		return "unknown"
	}
	return *value
}
