// Package model defines domain entities exchanged with the blog API.
package model

import "time"

// TokenPair collects the access/refresh tokens issued by login and registration.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// User is the account snapshot cached between sessions.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Blog post status values. Transitions are unconstrained (draft <-> published).
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Blog is a single post. Slug is server-assigned from the title and immutable
// once set.
type Blog struct {
	ID            int64     `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Subtitle      string    `json:"subtitle,omitempty"`
	Content       string    `json:"content"`
	Status        string    `json:"status"`
	Author        int64     `json:"author"`
	PublishedDate time.Time `json:"published_date"`
}

// OwnedBy reports whether userID authored the post. This is a UX convenience;
// the server independently rejects foreign mutations.
func (b Blog) OwnedBy(userID int64) bool { return b.Author == userID }

// Comment is a comment on a post or a reply to another comment. Replies carry
// a non-nil Reply pointing at the parent comment; nesting is one level deep.
type Comment struct {
	ID        int64     `json:"id"`
	Comment   string    `json:"comment"`
	User      int64     `json:"user"`
	Blog      int64     `json:"blog,omitempty"`
	Reply     *int64    `json:"reply,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one page of a server-paginated listing. Metadata is server-driven:
// the client never recomputes totals or slices locally.
type Page[T any] struct {
	Results     []T     `json:"results"`
	Count       int     `json:"count"`
	TotalPages  int     `json:"total_pages"`
	CurrentPage int     `json:"current_page"`
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
}

// HasNext reports whether the server advertised a following page.
func (p Page[T]) HasNext() bool { return p.Next != nil }

// HasPrevious reports whether the server advertised a preceding page.
func (p Page[T]) HasPrevious() bool { return p.Previous != nil }

// EmptyPage is the sentinel returned by list operations when the underlying
// call fails: a well-formed zero page echoing the requested page number.
func EmptyPage[T any](page int) Page[T] {
	return Page[T]{Results: []T{}, CurrentPage: page}
}
