package main

import (
	"github.com/BUZDOLAPCI/webpage-extract/extract"
)

// Run executes the tables command.
func (c *TablesCmd) Run(deps *Dependencies) error {
	input, err := resolveInput(deps, c.Input, c.File)
	if err != nil {
		return err
	}

	svc := &extract.Service{
		Fetcher: deps.Fetcher,
		Tables:  deps.Tables,
		Timeout: c.Timeout,
	}
	return writeResponse(deps.Stdout, svc.ExtractTables(deps.Ctx, input), c.Pretty)
}
