package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/blog"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/model"
	"github.com/Rafid13iit/BS23-Assignment-01-Blog-Project/internal/pagination"
)

// readContent reads post content from a file, or stdin when path is "-".
func readContent(p string) (string, error) {
	if p == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(p)
	return string(b), err
}

// printPage renders one page of posts plus its position line.
func printPage(p *pagination.Pager[model.Blog]) {
	for _, b := range p.Items() {
		fmt.Printf("%-8d %-30s %-10s %s\n", b.ID, b.Slug, b.Status, b.Title)
	}
	meta := p.Meta()
	fmt.Printf("page %d of %d (%d posts)\n", p.CurrentPage(), meta.TotalPages, meta.Count)
}

// resolveOwned fetches a post by slug and exits unless the current user
// authored it. The server enforces ownership authoritatively; this check
// only fails fast with a clearer message.
func (a *app) resolveOwned(ctx context.Context, slug string) *model.Blog {
	b := a.blogs.GetBySlug(ctx, slug)
	if b == nil {
		fmt.Fprintln(os.Stderr, "post not found:", slug)
		os.Exit(1)
	}
	if u := a.session.Snapshot().User; u == nil || !b.OwnedBy(u.ID) {
		fmt.Fprintln(os.Stderr, "not your post:", slug)
		os.Exit(1)
	}
	return b
}

// blogCmd handles the content subcommands.
func (a *app) blogCmd(ctx context.Context, cmd string, args []string) {
	switch cmd {

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		_ = fs.Parse(args)
		printPage(pagination.New(ctx, a.blogs.ListAll, *page))

	case "mine":
		fs := flag.NewFlagSet("mine", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		_ = fs.Parse(args)
		a.requireLogin(ctx)
		printPage(pagination.New(ctx, a.blogs.ListMine, *page))

	case "show":
		fs := flag.NewFlagSet("show", flag.ExitOnError)
		slug := fs.String("slug", "", "post slug")
		_ = fs.Parse(args)
		if *slug == "" {
			fmt.Fprintln(os.Stderr, "need -slug")
			os.Exit(1)
		}
		b := a.blogs.GetBySlug(ctx, *slug)
		if b == nil {
			fmt.Fprintln(os.Stderr, "post not found:", *slug)
			os.Exit(1)
		}
		printJSON(b)

	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		title := fs.String("title", "", "title")
		subtitle := fs.String("subtitle", "", "subtitle")
		content := fs.String("content", "", "content file ('-' for stdin)")
		publish := fs.Bool("publish", false, "publish immediately")
		_ = fs.Parse(args)
		if *title == "" || *content == "" {
			fmt.Fprintln(os.Stderr, "need -title and -content")
			os.Exit(1)
		}
		body, err := readContent(*content)
		if err != nil {
			fail(err)
		}
		a.requireLogin(ctx)
		status := model.StatusDraft
		if *publish {
			status = model.StatusPublished
		}
		b := a.blogs.Create(ctx, blog.Input{
			Title:    *title,
			Subtitle: *subtitle,
			Content:  body,
			Status:   status,
		})
		if b == nil {
			os.Exit(1)
		}
		printJSON(b)

	case "update":
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		slug := fs.String("slug", "", "post slug")
		title := fs.String("title", "", "new title")
		subtitle := fs.String("subtitle", "", "new subtitle")
		content := fs.String("content", "", "new content file ('-' for stdin)")
		publish := fs.Bool("publish", false, "set status published")
		draft := fs.Bool("draft", false, "set status draft")
		_ = fs.Parse(args)
		if *slug == "" {
			fmt.Fprintln(os.Stderr, "need -slug")
			os.Exit(1)
		}
		a.requireLogin(ctx)
		cur := a.resolveOwned(ctx, *slug)

		// Full-replace semantics: unset flags keep the current values.
		in := blog.Input{
			ID:       cur.ID,
			Title:    cur.Title,
			Subtitle: cur.Subtitle,
			Content:  cur.Content,
			Status:   cur.Status,
		}
		if *title != "" {
			in.Title = *title
		}
		if *subtitle != "" {
			in.Subtitle = *subtitle
		}
		if *content != "" {
			body, err := readContent(*content)
			if err != nil {
				fail(err)
			}
			in.Content = body
		}
		if *publish {
			in.Status = model.StatusPublished
		}
		if *draft {
			in.Status = model.StatusDraft
		}
		b := a.blogs.Update(ctx, in)
		if b == nil {
			os.Exit(1)
		}
		printJSON(b)

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		slug := fs.String("slug", "", "post slug")
		_ = fs.Parse(args)
		if *slug == "" {
			fmt.Fprintln(os.Stderr, "need -slug")
			os.Exit(1)
		}
		a.requireLogin(ctx)
		cur := a.resolveOwned(ctx, *slug)
		exitUnless(a.blogs.Delete(ctx, cur.ID))

	case "comments":
		fs := flag.NewFlagSet("comments", flag.ExitOnError)
		id := fs.Int64("blog", 0, "blog id")
		_ = fs.Parse(args)
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -blog")
			os.Exit(1)
		}
		printJSON(a.blogs.Comments(ctx, *id))

	case "comment":
		fs := flag.NewFlagSet("comment", flag.ExitOnError)
		id := fs.Int64("blog", 0, "blog id")
		text := fs.String("text", "", "comment text")
		_ = fs.Parse(args)
		if *id == 0 || *text == "" {
			fmt.Fprintln(os.Stderr, "need -blog and -text")
			os.Exit(1)
		}
		a.requireLogin(ctx)
		cm := a.blogs.AddComment(ctx, *id, *text)
		if cm == nil {
			os.Exit(1)
		}
		printJSON(cm)

	case "replies":
		fs := flag.NewFlagSet("replies", flag.ExitOnError)
		id := fs.Int64("comment", 0, "comment id")
		_ = fs.Parse(args)
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -comment")
			os.Exit(1)
		}
		printJSON(a.blogs.Replies(ctx, *id))

	case "reply":
		fs := flag.NewFlagSet("reply", flag.ExitOnError)
		id := fs.Int64("comment", 0, "comment id")
		text := fs.String("text", "", "reply text")
		_ = fs.Parse(args)
		if *id == 0 || *text == "" {
			fmt.Fprintln(os.Stderr, "need -comment and -text")
			os.Exit(1)
		}
		a.requireLogin(ctx)
		cm := a.blogs.AddReply(ctx, *id, *text)
		if cm == nil {
			os.Exit(1)
		}
		printJSON(cm)
	}
}
