package fetch

import (
	"context"
	"errors"
)

// The MockFetcher serves canned pages in tests.
type MockFetcher struct {
	*FetcherConfig
	pagesMap map[string]string
}

func NewMockFetcher(fc *FetcherConfig) *MockFetcher {
	mf := &MockFetcher{
		FetcherConfig: fc,
		pagesMap:      map[string]string{},
	}
	for _, p := range fc.MockPages {
		mf.pagesMap[p.Url] = p.Content
	}
	return mf
}

func (mf *MockFetcher) Fetch(ctx context.Context, urlStr string) (string, error) {
	if p, ok := mf.pagesMap[urlStr]; ok {
		return p, nil
	}
	return "", errors.New("page not found")
}

func (mf *MockFetcher) Cancel() {}
