package main

import (
	"github.com/BUZDOLAPCI/webpage-extract/extract"
)

// Run executes the markdown command.
func (c *MarkdownCmd) Run(deps *Dependencies) error {
	input, err := resolveInput(deps, c.Input, c.File)
	if err != nil {
		return err
	}

	engine := deps.Markdown
	if c.Engine == "readability" {
		engine = deps.Readability
	}

	svc := &extract.Service{
		Fetcher:  deps.Fetcher,
		Markdown: engine,
		Timeout:  c.Timeout,
	}
	return writeResponse(deps.Stdout, svc.ExtractMarkdown(deps.Ctx, input), c.Pretty)
}
