package storage

import (
	"context"
	"errors"
	"fmt"

	"imageprocessor/internal/domain"
)

// ObjectGetter retrieves raw object bytes.
type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

// Fetcher resolves image URLs against an object store.
type Fetcher struct {
	getter ObjectGetter
}

// NewFetcher wires a Fetcher to the given backend.
func NewFetcher(getter ObjectGetter) *Fetcher {
	return &Fetcher{getter: getter}
}

// Fetch downloads the object referenced by imageURL. Parse failures are
// reported as domain.ErrMalformedURL, everything else as domain.ErrFetch.
func (f *Fetcher) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	if f == nil || f.getter == nil {
		return nil, fmt.Errorf("%w: failed to download image: no object store configured", domain.ErrFetch)
	}
	loc, err := ParseObjectURL(imageURL)
	if err != nil {
		return nil, err
	}
	data, err := f.getter.GetObject(ctx, loc.Bucket, loc.Key)
	if err != nil {
		if errors.Is(err, domain.ErrFetch) {
			return nil, err
		}
		return nil, &FetchError{Location: loc, Err: err}
	}
	return data, nil
}

// FetchError carries the original storage failure.
type FetchError struct {
	Location ObjectLocation
	Err      error
}

func (e *FetchError) Error() string {
	return "failed to download image: " + e.Err.Error()
}

func (e *FetchError) Unwrap() []error { return []error{domain.ErrFetch, e.Err} }
