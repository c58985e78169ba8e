package services

import (
	"context"
	"io"
)

// PageAssembler defines the interface for producing the complete oshi page
type PageAssembler interface {
	// Assemble reads the data source, renders every oshi in order and writes the
	// document to w. Nothing is written unless the whole page rendered successfully.
	Assemble(ctx context.Context, w io.Writer) error
}
