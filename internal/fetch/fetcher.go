// Package fetch loads page content for selector generation. Pages can be
// fetched statically, rendered in a headless browser or read from disk.
package fetch

import (
	"context"
	"fmt"
)

// A Fetcher retrieves the HTML content of a page.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) (string, error)
	// Cancel releases resources held by the fetcher.
	Cancel()
}

// FetcherType selects a fetcher implementation.
type FetcherType string

const (
	StaticFetcherType  FetcherType = "static"
	DynamicFetcherType FetcherType = "dynamic"
	FileFetcherType    FetcherType = "file"
)

// MockPage is a canned page for the mock fetcher, used in tests.
type MockPage struct {
	Url     string `yaml:"url"`
	Content string `yaml:"content"`
}

// FetcherConfig defines the parameters to make a new fetcher.
type FetcherConfig struct {
	Type           FetcherType `yaml:"type"`
	UserAgent      string      `yaml:"user_agent" env:"PINPOINT_USER_AGENT" env-default:"Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0"`
	PageLoadWaitMS int         `yaml:"page_load_wait_ms"`
	MockPages      []MockPage  `yaml:"mock_pages,omitempty"`
}

// DefaultFetcherType returns the fetcher used when none is configured.
func DefaultFetcherType() FetcherType {
	return StaticFetcherType
}

// NewFetcher creates a fetcher based on the given configuration.
func NewFetcher(fc *FetcherConfig) (Fetcher, error) {
	switch fc.Type {
	case StaticFetcherType, "":
		return NewStaticFetcher(fc), nil
	case DynamicFetcherType:
		return NewDynamicFetcher(fc), nil
	case FileFetcherType:
		return NewFileFetcher(fc), nil
	default:
		return nil, fmt.Errorf("fetcher type not implemented: %s", fc.Type)
	}
}
