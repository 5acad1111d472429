package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// respond writes v as JSON. A nil slice renders as [] rather than null so
// list endpoints always return arrays.
func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondList writes a slice as JSON, mapping nil to an empty array.
func respondList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	respond(w, http.StatusOK, items)
}

// respondError writes the {"detail": ...} error envelope the frontend
// expects.
func respondError(w http.ResponseWriter, status int, detail string) {
	respond(w, status, map[string]string{"detail": detail})
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// typos surface as 400s instead of silent drops.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// storeError logs the failure and reports a generic 500; row-level not-found
// conditions are handled at the call sites that expect them.
func (s *Server) storeError(w http.ResponseWriter, err error, op string) {
	s.log.Error("store operation failed", zap.String("op", op), zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal error")
}

// pathID parses a numeric {name} path segment.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id, err == nil && id > 0
}

// queryInt parses an optional integer query parameter; 0 means absent.
func queryInt(r *http.Request, name string) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
