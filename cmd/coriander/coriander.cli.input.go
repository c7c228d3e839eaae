package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// resolveTemplate takes the template from the first positional argument or
// from --template-file. It returns the remaining positional arguments.
func resolveTemplate(cmd *cobra.Command, args []string, templateFile string) (string, []string, error) {
	if templateFile != "" {
		data, err := readInput(templateFile, cmd.InOrStdin())
		if err != nil {
			return "", nil, inputError(ErrMsgReadFileFailed, err)
		}
		return strings.TrimRight(string(data), "\r\n"), args, nil
	}
	if len(args) == 0 {
		return "", nil, usageError(ErrMsgMissingTemplate, nil)
	}
	return args[0], args[1:], nil
}

// resolveMessage takes the message from args; "-" reads it from stdin with
// the trailing newline removed.
func resolveMessage(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 {
		return "", usageError(ErrMsgMissingMessage, nil)
	}
	if args[0] != InputSourceStdin {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", inputError(ErrMsgReadStdinFailed, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// loadData decodes generation data from an inline JSON string or a YAML/JSON
// file. YAML is a superset of JSON, so one decoder serves both.
func loadData(inline, filePath string) (map[string]any, error) {
	var raw []byte
	switch {
	case filePath != "":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		raw = data
	case inline != "":
		raw = []byte(inline)
	default:
		return map[string]any{}, nil
	}

	var result map[string]any
	if err := yaml.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = map[string]any{}
	}
	return result, nil
}

// validateFormat checks an output format flag.
func validateFormat(format string) error {
	switch format {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return usageError(ErrMsgInvalidFormat, nil)
	}
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return runtimeError(ErrMsgMarshalFailed, err)
		}
		if err := encoder.Close(); err != nil {
			return runtimeError(ErrMsgWriteOutputFailed, err)
		}
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(v); err != nil {
			return runtimeError(ErrMsgMarshalFailed, err)
		}
	}
	return nil
}
