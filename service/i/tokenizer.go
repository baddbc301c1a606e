package i

import (
	"time"
)

// Tokenizer issues the bearer tokens that identify maze owners. Tokens
// carry the "userID" claim the maze routes use to attribute new mazes.
type Tokenizer interface {
	// Generate signs claims into a token that expires after expTime.
	Generate(claims map[string]interface{}, expTime time.Duration) (string, error)

	// Decode verifies a token and returns its claims.
	Decode(token string) (map[string]interface{}, error)
}
