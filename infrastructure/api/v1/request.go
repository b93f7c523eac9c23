package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/infrastructure/almanacfile"
	"github.com/helixml/rangemap/infrastructure/api/middleware"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 8 << 20

// isJSON reports whether the request body is JSON. Anything else is read as
// a raw almanac document.
func isJSON(req *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func readBody(w http.ResponseWriter, req *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

func decodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode body: %w", middleware.ErrBadRequest, err)
	}
	return nil
}

// parseAlmanac parses the document in the named format.
func parseAlmanac(text, format string) (almanac.Almanac, error) {
	if text == "" {
		return almanac.Almanac{}, fmt.Errorf("%w: almanac is empty", middleware.ErrBadRequest)
	}
	f, err := almanacfile.ParseFormat(format)
	if err != nil {
		return almanac.Almanac{}, err
	}
	return almanacfile.Parse([]byte(text), f)
}

// firstNonEmpty returns a when set, otherwise b.
func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func queryBool(req *http.Request, name string) (bool, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", middleware.ErrBadRequest, name, err)
	}
	return v, nil
}

func queryUint(req *http.Request, name string) (uint64, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", middleware.ErrBadRequest, name)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", middleware.ErrBadRequest, name, err)
	}
	return v, nil
}
