package httputil

import (
	"fmt"
	"net/http"
	"time"
)

// WriteCacheable writes body with an ETag derived from contentHash and
// a max-age Cache-Control header. When the request carries a matching
// If-None-Match, it responds 304 without a body.
//
// Artifact endpoints use this so live-updating clients can poll the
// cloud cheaply: an unchanged submission list yields an unchanged
// layout hash and therefore a 304.
func WriteCacheable(w http.ResponseWriter, r *http.Request, contentType, contentHash string, maxAge time.Duration, body []byte) {
	etag := fmt.Sprintf("%q", contentHash)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(maxAge.Seconds())))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
