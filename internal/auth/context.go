package auth

import (
	"strconv"
	"strings"

	"github.com/fekuna/omnipos-workshop-service/internal/dispatch"
)

const UserIDHeader = "X-User-Id"

// UserIDFromRequest returns the caller id sent by the frontend, or nil when the
// header is absent or malformed.
func UserIDFromRequest(req *dispatch.Request) *int64 {
	raw := strings.TrimSpace(req.Header(UserIDHeader))
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// Actor picks the explicit id from the payload, falling back to the header.
func Actor(explicit *int64, req *dispatch.Request) *int64 {
	if explicit != nil && *explicit > 0 {
		return explicit
	}
	return UserIDFromRequest(req)
}
