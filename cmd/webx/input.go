package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	webextract "github.com/BUZDOLAPCI/webpage-extract"
)

// resolveInput turns the command input into the string handed to the
// extraction service: file contents with --file, stdin for "-", and the
// argument itself otherwise (a URL or inline HTML).
func resolveInput(deps *Dependencies, input, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	}
	if input == "-" {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	if input == "" {
		return "", fmt.Errorf("no input: pass a URL, raw HTML, '-' for stdin, or --file")
	}
	return input, nil
}

// writeResponse prints the envelope to stdout. A failed extraction also
// returns an error so the process exits non-zero.
func writeResponse(w io.Writer, resp *webextract.Response, pretty bool) error {
	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(resp, "", "  ")
	} else {
		out, err = json.Marshal(resp)
	}
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(out)); err != nil {
		return err
	}

	if !resp.OK {
		return fmt.Errorf("extraction failed: %s: %s", resp.Error.Code, resp.Error.Message)
	}
	return nil
}
