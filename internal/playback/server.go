package playback

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
)

// ServeBlob writes media bytes from the project library, honoring a Range
// header. Content-Type is derived from the original filename.
func ServeBlob(w http.ResponseWriter, r *http.Request, filename string, data []byte) {
	size := int64(len(data))
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Type", contentType)

	br, err := ParseRange(r.Header.Get("Range"), size)
	if err == ErrUnsatisfiable {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		http.Error(w, "Range Not Satisfiable", http.StatusRequestedRangeNotSatisfiable)
		return
	}
	// An unparseable Range header degrades to a full response.
	if err != nil || br == nil {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", size))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	w.Header().Set("Content-Length", fmt.Sprintf("%d", br.ContentLength()))
	w.Header().Set("Content-Range", br.ContentRange(size))
	w.WriteHeader(http.StatusPartialContent)
	w.Write(data[br.Start : br.End+1])
}
