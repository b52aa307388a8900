package render

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is the Synapse web frontend.
const DefaultBaseURL = "https://www.synapse.org"

// LinkBuilder composes Slack mrkdwn hyperlinks for Synapse entities. It is
// pure text composition; IDs are never validated against the backend.
type LinkBuilder struct {
	// BaseURL overrides DefaultBaseURL (e.g. for a staging stack).
	BaseURL string
}

func (b LinkBuilder) base() string {
	if b.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(b.BaseURL, "/")
}

// User links to a user profile page.
func (b LinkBuilder) User(id, name string) string {
	return fmt.Sprintf("<%s/Profile:%s|%s>", b.base(), id, name)
}

// Project links to a project entity page.
func (b LinkBuilder) Project(id, name string) string {
	return b.entity(id, name)
}

// Folder links to a folder entity page.
func (b LinkBuilder) Folder(id, name string) string {
	return b.entity(id, name)
}

// File links to a file entity page.
func (b LinkBuilder) File(id, name string) string {
	return b.entity(id, name)
}

// entity builds a Synapse entity link. Warehouse IDs are bare numbers; the
// frontend wants them syn-prefixed.
func (b LinkBuilder) entity(id, name string) string {
	if !strings.HasPrefix(id, "syn") {
		id = "syn" + id
	}
	return fmt.Sprintf("<%s/Synapse:%s|%s>", b.base(), id, name)
}
