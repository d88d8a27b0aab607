package http

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/absensi-nh/absensi-backend-go/internal/handler/http/response"
)

const maxUploadSize = 10 << 20 // 10MB

// decodeMultipart parses a multipart form carrying a JSON payload in the
// "data" field plus an optional file. It writes the error response itself
// and reports whether decoding succeeded. The returned close func is non-nil
// when a file was attached.
func decodeMultipart(w http.ResponseWriter, r *http.Request, dst any, fileField string) (multipart.File, *multipart.FileHeader, func(), bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return nil, nil, nil, false
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return nil, nil, nil, false
	}

	if err := json.Unmarshal([]byte(dataJSON), dst); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return nil, nil, nil, false
	}

	file, fileHeader, err := r.FormFile(fileField)
	if err != nil {
		if err == http.ErrMissingFile {
			// Field-level validation decides whether the file was required
			return nil, nil, func() {}, true
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return nil, nil, nil, false
	}

	return file, fileHeader, func() { _ = file.Close() }, true
}
