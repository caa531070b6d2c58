package auth

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
)

const XSharerUserIDHeader = "X-Sharer-User-Id"

type userIDKey struct{}

var ErrNoUser = errors.New("sharer user id is not set")

func SetAuthContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func GetUserID(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	if !ok {
		return 0, ErrNoUser
	}
	return id, nil
}

// SetAuthHeader copies the caller identity from ctx onto an outgoing request.
func SetAuthHeader(req *http.Request) {
	if id, err := GetUserID(req.Context()); err == nil {
		req.Header.Set(XSharerUserIDHeader, strconv.FormatInt(id, 10))
	}
}
