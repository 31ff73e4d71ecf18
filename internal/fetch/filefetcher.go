package fetch

import (
	"context"
	"log/slog"
	"os"

	"github.com/jakopako/pinpoint/internal/log"
)

// The FileFetcher reads page content from the local filesystem, mainly
// useful for saved pages and for the compare command.
type FileFetcher struct {
	*FetcherConfig
}

func NewFileFetcher(fc *FetcherConfig) *FileFetcher {
	return &FileFetcher{FetcherConfig: fc}
}

func (f *FileFetcher) Fetch(ctx context.Context, path string) (string, error) {
	logger := log.LoggerFromContext(ctx)
	logger.Debug("reading page", slog.String("fetcher", "file"), slog.String("path", path))
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (f *FileFetcher) Cancel() {}
