package parser

import "io"

// Parser defines a generic interface for parsing HTML content into a list of values
type Parser[T any] interface {
	ParseHtml(body io.Reader) ([]T, error)
}

// SingleResultParser defines a generic interface for parsing HTML content into a single value
type SingleResultParser[T any] interface {
	ParseHtml(body io.Reader) (T, error)
}
