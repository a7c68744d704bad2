package storage

import (
	"fmt"
	"strings"

	"imageprocessor/internal/domain"
)

// ObjectLocation identifies a single object inside a bucket.
type ObjectLocation struct {
	Bucket string
	Key    string
}

// ParseObjectURL extracts bucket and key from virtual-hosted style locators
// such as https://bucket.s3.amazonaws.com/photos/cat.jpg. The bucket is the
// first label of the host; the key is everything after it. s3://bucket/key
// parses the same way.
func ParseObjectURL(raw string) (ObjectLocation, error) {
	trimmed := strings.TrimSpace(raw)
	parts := strings.Split(trimmed, "/")
	if len(parts) < 4 {
		return ObjectLocation{}, fmt.Errorf("%w: %q", domain.ErrMalformedURL, raw)
	}
	host := parts[2]
	bucket, _, _ := strings.Cut(host, ".")
	key := strings.Join(parts[3:], "/")
	if bucket == "" || key == "" {
		return ObjectLocation{}, fmt.Errorf("%w: %q", domain.ErrMalformedURL, raw)
	}
	return ObjectLocation{Bucket: bucket, Key: key}, nil
}

// URL renders the location in the virtual-hosted form understood by ParseObjectURL.
func (l ObjectLocation) URL() string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", l.Bucket, l.Key)
}
