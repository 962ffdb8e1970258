package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// pageParams reads keyset pagination query parameters: after (optional UUID)
// and limit (optional int, service applies its own clamp).
func pageParams(r *http.Request) (uuid.UUID, int, error) {
	afterID := uuid.Nil
	if v := r.URL.Query().Get("after"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, 0, fmt.Errorf("invalid after parameter")
		}
		afterID = id
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return uuid.Nil, 0, fmt.Errorf("invalid limit parameter")
		}
		limit = n
	}

	return afterID, limit, nil
}

// bucketParams reads repeated ?bucket=YYYY-M query parameters.
func bucketParams(r *http.Request) ([]domain.Bucket, error) {
	var buckets []domain.Bucket
	for _, v := range r.URL.Query()["bucket"] {
		parts := strings.SplitN(v, "-", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid bucket %q, expected YYYY-M", v)
		}
		year, err := strconv.Atoi(parts[0])
		if err != nil || year <= 0 {
			return nil, fmt.Errorf("invalid bucket %q, expected YYYY-M", v)
		}
		month, err := strconv.Atoi(parts[1])
		if err != nil || month < 1 || month > 12 {
			return nil, fmt.Errorf("invalid bucket %q, expected YYYY-M", v)
		}
		buckets = append(buckets, domain.Bucket{Year: year, Month: month})
	}
	return buckets, nil
}

// bucketRequest is the JSON body form of a month bucket.
type bucketRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func toBuckets(reqs []bucketRequest) []domain.Bucket {
	buckets := make([]domain.Bucket, 0, len(reqs))
	for _, b := range reqs {
		buckets = append(buckets, domain.Bucket{Year: b.Year, Month: b.Month})
	}
	return buckets
}
