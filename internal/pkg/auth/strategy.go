package auth

import "time"

// Strategy issues and verifies auth tokens carrying the user identity and
// role. The role lets middleware authorize admin surfaces without a user
// lookup per request.
type Strategy interface {
	IssueToken(userID int64, role string) (string, error)
	ParseToken(token string) (int64, string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
