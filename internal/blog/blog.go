// Package blog exposes typed operations over the blog, comment and reply
// endpoints. Failures never propagate as errors: mutations return their
// zero sentinel (nil entity, false for delete) and reads return well-formed
// empty values, so callers handle "nothing there" as a normal state. The
// request executor has already surfaced the failure notification.
package blog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/httpapi"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/model"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/notify"
)

// Input carries the author-editable fields. ID is set for updates only;
// slug is never sent, the server derives it from the title.
type Input struct {
	ID       int64  `json:"id,omitempty"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Content  string `json:"content"`
	Status   string `json:"status"`
}

// Client is the blog resource client.
type Client struct {
	api    *httpapi.Client
	notify notify.Notifier
	log    *zap.Logger
}

func NewClient(api *httpapi.Client, n notify.Notifier, log *zap.Logger) *Client {
	return &Client{api: api, notify: n, log: log}
}

// ListAll returns one page of the public feed, or an empty page on failure.
func (c *Client) ListAll(ctx context.Context, page int) model.Page[model.Blog] {
	return c.listPage(ctx, fmt.Sprintf("/blogs/?page=%d", page), page)
}

// ListMine returns one page of the caller's own posts, or an empty page on
// failure.
func (c *Client) ListMine(ctx context.Context, page int) model.Page[model.Blog] {
	return c.listPage(ctx, fmt.Sprintf("/blogs/user/?page=%d", page), page)
}

func (c *Client) listPage(ctx context.Context, path string, page int) model.Page[model.Blog] {
	env := c.api.Get(ctx, path, true)
	if !env.Success {
		return model.EmptyPage[model.Blog](page)
	}
	var p model.Page[model.Blog]
	if err := env.Decode(&p); err != nil {
		c.log.Error("decode blog page", zap.String("path", path), zap.Error(err))
		return model.EmptyPage[model.Blog](page)
	}
	if p.Results == nil {
		p.Results = []model.Blog{}
	}
	if p.CurrentPage == 0 {
		p.CurrentPage = page
	}
	return p
}

// GetBySlug returns the post, or nil when missing or on failure.
func (c *Client) GetBySlug(ctx context.Context, slug string) *model.Blog {
	env := c.api.Get(ctx, "/blogs/"+slug+"/", true)
	if !env.Success {
		return nil
	}
	var b model.Blog
	if err := env.Decode(&b); err != nil {
		c.log.Error("decode blog", zap.String("slug", slug), zap.Error(err))
		return nil
	}
	return &b
}

// Create publishes a new post. Returns the created entity or nil.
func (c *Client) Create(ctx context.Context, in Input) *model.Blog {
	return c.mutate(ctx, "/blogs/create/", in, "Blog created successfully!")
}

// Update replaces the editable fields of an existing post. Returns the
// updated entity or nil.
func (c *Client) Update(ctx context.Context, in Input) *model.Blog {
	return c.mutate(ctx, "/blogs/update/", in, "Blog updated successfully!")
}

func (c *Client) mutate(ctx context.Context, path string, in Input, okMsg string) *model.Blog {
	env := c.api.Post(ctx, path, in, true)
	if !env.Success {
		return nil
	}
	var b model.Blog
	if err := env.Decode(&b); err != nil {
		c.log.Error("decode blog", zap.String("path", path), zap.Error(err))
		return nil
	}
	c.notify.Success(okMsg)
	return &b
}

// Delete removes a post by id. Returns false on any failure; no success
// notification fires in that case.
func (c *Client) Delete(ctx context.Context, id int64) bool {
	env := c.api.Post(ctx, "/blogs/delete/", map[string]int64{"id": id}, true)
	if !env.Success {
		return false
	}
	c.notify.Success("Blog deleted successfully!")
	return true
}

// AddComment attaches a comment to a post. Returns the created comment or
// nil.
func (c *Client) AddComment(ctx context.Context, blogID int64, text string) *model.Comment {
	return c.addComment(ctx, fmt.Sprintf("/blogs/comment/%d/", blogID), text, "Comment added successfully!")
}

// AddReply attaches a reply to a comment. Replies nest exactly one level.
func (c *Client) AddReply(ctx context.Context, commentID int64, text string) *model.Comment {
	return c.addComment(ctx, fmt.Sprintf("/blogs/reply/%d/", commentID), text, "Reply added successfully!")
}

func (c *Client) addComment(ctx context.Context, path, text, okMsg string) *model.Comment {
	env := c.api.Post(ctx, path, map[string]string{"comment": text}, true)
	if !env.Success {
		return nil
	}
	var cm model.Comment
	if err := env.Decode(&cm); err != nil {
		c.log.Error("decode comment", zap.String("path", path), zap.Error(err))
		return nil
	}
	c.notify.Success(okMsg)
	return &cm
}

// Comments lists a post's comments, empty on failure.
func (c *Client) Comments(ctx context.Context, blogID int64) []model.Comment {
	return c.listComments(ctx, fmt.Sprintf("/blogs/comment/%d/", blogID))
}

// Replies lists a comment's replies, empty on failure.
func (c *Client) Replies(ctx context.Context, commentID int64) []model.Comment {
	return c.listComments(ctx, fmt.Sprintf("/blogs/reply/%d/", commentID))
}

func (c *Client) listComments(ctx context.Context, path string) []model.Comment {
	env := c.api.Get(ctx, path, true)
	if !env.Success {
		return []model.Comment{}
	}
	var out []model.Comment
	if err := env.Decode(&out); err != nil {
		c.log.Error("decode comments", zap.String("path", path), zap.Error(err))
		return []model.Comment{}
	}
	if out == nil {
		out = []model.Comment{}
	}
	return out
}
