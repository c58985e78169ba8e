package source

import (
	"context"
	"os"

	"github.com/luqmanhadi/oshikatsu/internal/apperrors"
	"github.com/luqmanhadi/oshikatsu/internal/config"
	"github.com/luqmanhadi/oshikatsu/internal/models"
	"github.com/luqmanhadi/oshikatsu/internal/parser"
)

// FileSource reads the data document from the local filesystem
type FileSource struct {
	path   string
	parser parser.Parser[models.Oshi]
}

// NewFileSource creates a source reading path on every Load
func NewFileSource(path string) *FileSource {
	return &FileSource{
		path:   path,
		parser: parser.NewOshiParser(""),
	}
}

func (s *FileSource) Name() string {
	return s.path
}

// Load opens and decodes the file. A missing or unreadable file yields
// *apperrors.ErrDataSource, undecodable content *apperrors.ErrMalformedData.
func (s *FileSource) Load(ctx context.Context) (list []models.Oshi, err error) {
	defer func() { recordRead("file", err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := config.GetLogger()
	logger.Debug().Str("path", s.path).Msg("Reading oshi data file")

	f, err := os.Open(s.path)
	if err != nil {
		return nil, apperrors.NewDataSourceError(s.path, err)
	}
	defer f.Close()

	return s.parser.Parse(s.path, f)
}
