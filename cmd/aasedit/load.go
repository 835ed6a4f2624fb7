package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/aasedit/pkg/document"
	"github.com/aretw0/aasedit/pkg/domain"
	"github.com/spf13/cobra"
)

// readDocument reads the file named by args[0], or stdin for "-" or no
// argument. The --from flag overrides extension-based detection.
func readDocument(cmd *cobra.Command, args []string) ([]byte, document.Encoding, error) {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}

	enc := document.JSON
	if path != "-" {
		enc = document.EncodingFromPath(path)
	}
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		parsed, err := document.ParseEncoding(from)
		if err != nil {
			return nil, "", err
		}
		enc = parsed
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, enc, nil
}

// loadEnvironment decodes a document without validating it, so invalid
// documents can still be inspected.
func loadEnvironment(cmd *cobra.Command, args []string) (*domain.Environment, error) {
	data, enc, err := readDocument(cmd, args)
	if err != nil {
		return nil, err
	}
	raw, err := document.Parse(data, enc)
	if err != nil {
		return nil, err
	}
	return document.Normalize(raw)
}
