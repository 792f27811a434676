package ports

import "context"

// SessionCache is a best-effort lookup table from token hash to user id,
// used as a fast path when resolving logout requests. The user record's
// stored token hash remains the authority; cache failures must degrade to a
// repository lookup, never to a request failure.
type SessionCache interface {
	Put(ctx context.Context, tokenHash, userID string) error
	Get(ctx context.Context, tokenHash string) (userID string, ok bool, err error)
	Delete(ctx context.Context, tokenHash string) error
}
