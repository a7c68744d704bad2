package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"imageprocessor/internal/domain"
)

type stubGetter struct {
	data   []byte
	err    error
	calls  int
	bucket string
	key    string
}

func (s *stubGetter) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	s.calls++
	s.bucket = bucket
	s.key = key
	return s.data, s.err
}

func TestFetcherPassesParsedLocation(t *testing.T) {
	getter := &stubGetter{data: []byte("jpeg")}
	f := NewFetcher(getter)

	data, err := f.Fetch(context.Background(), "https://bucket.host/key1/key2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "jpeg" {
		t.Fatalf("data = %q", data)
	}
	if getter.bucket != "bucket" || getter.key != "key1/key2" {
		t.Fatalf("getter called with bucket=%q key=%q", getter.bucket, getter.key)
	}
}

func TestFetcherMalformedURLSkipsStore(t *testing.T) {
	getter := &stubGetter{}
	f := NewFetcher(getter)

	_, err := f.Fetch(context.Background(), "https://bucket")
	if !errors.Is(err, domain.ErrMalformedURL) {
		t.Fatalf("error = %v, want ErrMalformedURL", err)
	}
	if getter.calls != 0 {
		t.Fatalf("store should not be called for malformed url")
	}
}

func TestFetcherWrapsStoreError(t *testing.T) {
	cause := errors.New("Access Denied")
	f := NewFetcher(&stubGetter{err: cause})

	_, err := f.Fetch(context.Background(), "https://bucket.host/key")
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("error should wrap ErrFetch: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("error should keep the original cause: %v", err)
	}
	if !strings.Contains(err.Error(), "failed to download image: Access Denied") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Location.Bucket != "bucket" {
		t.Fatalf("expected FetchError with location, got %#v", err)
	}
}

func TestFetcherWithoutStore(t *testing.T) {
	var f *Fetcher
	if _, err := f.Fetch(context.Background(), "https://bucket.host/key"); !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("error = %v, want ErrFetch", err)
	}
}
