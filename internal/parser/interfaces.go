package parser

import "io"

// Parser defines a generic interface for decoding a data document into records
type Parser[T any] interface {
	Parse(source string, body io.Reader) ([]T, error)
}
