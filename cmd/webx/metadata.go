package main

import (
	"github.com/BUZDOLAPCI/webpage-extract/extract"
)

// Run executes the metadata command.
func (c *MetadataCmd) Run(deps *Dependencies) error {
	input, err := resolveInput(deps, c.Input, c.File)
	if err != nil {
		return err
	}

	svc := &extract.Service{
		Fetcher:  deps.Fetcher,
		Metadata: deps.Metadata,
		Timeout:  c.Timeout,
	}
	return writeResponse(deps.Stdout, svc.ExtractMetadata(deps.Ctx, input), c.Pretty)
}
