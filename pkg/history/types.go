package history

import (
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// CommitRecord is the caller-facing summary of one commit that changed a file.
// Records are values; nothing in this package mutates one after creation.
type CommitRecord struct {
	Hash         string    // Full 40-character commit hash
	Author       string    // Author display name
	AuthoredAt   time.Time // Author timestamp
	ShortMessage string    // First line of the commit message
}

// When renders the author timestamp in local time.
func (r CommitRecord) When() string {
	return r.AuthoredAt.Local().Format("2006-01-02 15:04:05")
}

// ShortHash returns the first 7 characters of the hash.
func (r CommitRecord) ShortHash() string {
	if len(r.Hash) <= 7 {
		return r.Hash
	}
	return r.Hash[:7]
}

func newRecord(c *object.Commit) CommitRecord {
	return CommitRecord{
		Hash:         c.Hash.String(),
		Author:       c.Author.Name,
		AuthoredAt:   c.Author.When,
		ShortMessage: firstLine(c.Message),
	}
}

func firstLine(msg string) string {
	for i, ch := range msg {
		if ch == '\n' || ch == '\r' {
			return msg[:i]
		}
	}
	return msg
}
