package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"

	"github.com/luqmanhadi/oshikatsu/internal/apperrors"
	"github.com/luqmanhadi/oshikatsu/internal/config"
	"github.com/luqmanhadi/oshikatsu/internal/models"
)

// DefaultContentType is assumed when the source does not declare one. Without a
// declared charset, an ASCII-only prefix would be sniffed as windows-1252.
const DefaultContentType = "application/json; charset=utf-8"

var errNotArray = errors.New("top-level value is not a JSON array")

// OshiParser decodes the oshi data document
type OshiParser struct {
	contentType string
}

// NewOshiParser creates a parser. contentType is the declared media type of the
// document, if known, and is only consulted for its charset parameter.
func NewOshiParser(contentType string) *OshiParser {
	if _, params, err := mime.ParseMediaType(contentType); err != nil || params["charset"] == "" {
		contentType = DefaultContentType
	}
	return &OshiParser{contentType: contentType}
}

// Parse reads the whole document and decodes it as an array of oshi records.
// Anything other than a single JSON array, including trailing data, is rejected.
func (p *OshiParser) Parse(source string, body io.Reader) ([]models.Oshi, error) {
	logger := config.GetLogger()

	reader, err := NewUTF8Reader(body, p.contentType)
	if err != nil {
		return nil, apperrors.NewMalformedDataError(source, fmt.Errorf("failed to detect charset: %w", err))
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.NewDataSourceError(source, err)
	}

	var list []models.Oshi
	if err := json.Unmarshal(data, &list); err != nil {
		logger.Debug().Err(err).Str("source", source).Msg("Failed to decode oshi data")
		return nil, apperrors.NewMalformedDataError(source, err)
	}
	// null decodes into a nil slice without error
	if list == nil {
		return nil, apperrors.NewMalformedDataError(source, errNotArray)
	}

	logger.Debug().Str("source", source).Int("records", len(list)).Msg("Decoded oshi data")
	return list, nil
}
