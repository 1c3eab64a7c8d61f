package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sentinellock/sentinel-web/internal/domain/model"
	"github.com/sentinellock/sentinel-web/internal/util"
)

var errContentAdminUnavailable = errors.New("content admin is not configured: set BACKEND_URL or DB_ENABLED")

func runPosts(cmdCtx *commandContext, _ []string) error {
	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.Blog == nil {
			return errContentAdminUnavailable
		}
		posts, err := rt.Services.Blog.List(cmdCtx.Ctx)
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			return writeln(cmdCtx.Out, "No blog posts")
		}
		now := cmdCtx.Now()
		tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
		if err := writeln(tw, "ID\tSTATUS\tUPDATED\tSLUG\tTITLE"); err != nil {
			return fmt.Errorf("write posts header: %w", err)
		}
		for _, p := range posts {
			status := "draft"
			if p.Published {
				status = "published"
			}
			if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n",
				p.ID, status, util.FormatAge(p.UpdatedAt, now), p.Slug, util.Truncate(p.Title, 48)); err != nil {
				return fmt.Errorf("write post row: %w", err)
			}
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("flush posts table: %w", err)
		}
		return writef(cmdCtx.Out, "Total: %d\n", len(posts))
	})
}

type postFlags struct {
	id      string
	input   model.PostInput
	content string
	tags    string
}

func parsePostFlags(cmdCtx *commandContext, args []string) (postFlags, error) {
	fs := flag.NewFlagSet("post-save", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.ErrOut)
	var pf postFlags
	var excerpt, image, metaTitle, metaDesc string
	fs.StringVar(&pf.id, "id", "", "Update this post instead of creating one")
	fs.StringVar(&pf.input.Title, "title", "", "Post title (required)")
	fs.StringVar(&pf.input.Slug, "slug", "", "URL slug (derived from the title when empty)")
	fs.StringVar(&pf.content, "content", "", "File with the post body, - for stdin (required)")
	fs.StringVar(&excerpt, "excerpt", "", "Short summary")
	fs.StringVar(&image, "image", "", "Featured image URL")
	fs.StringVar(&metaTitle, "meta-title", "", "SEO title")
	fs.StringVar(&metaDesc, "meta-description", "", "SEO description")
	fs.StringVar(&pf.tags, "tags", "", "Comma separated tags")
	fs.BoolVar(&pf.input.Published, "publish", false, "Publish now instead of saving a draft")
	if err := fs.Parse(args); err != nil {
		return pf, err
	}
	if pf.content == "" {
		return pf, errors.New("usage: sentinel-admin post-save [-id <id>] -title <title> -content <file|-> [flags]")
	}
	pf.input.Excerpt = &excerpt
	pf.input.FeaturedImageURL = &image
	pf.input.MetaTitle = &metaTitle
	pf.input.MetaDescription = &metaDesc
	pf.input.Tags = model.SplitList(pf.tags)
	return pf, nil
}

func runPostSave(cmdCtx *commandContext, args []string) error {
	pf, err := parsePostFlags(cmdCtx, args)
	if err != nil {
		return err
	}
	body, err := readInput(cmdCtx, pf.content)
	if err != nil {
		return err
	}
	pf.input.Content = string(body)

	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.Blog == nil {
			return errContentAdminUnavailable
		}
		author := ""
		if id := rt.Services.Session.Identity(); id != nil {
			author = id.ID
		}
		var post model.Post
		if pf.id == "" {
			post, err = rt.Services.Blog.Create(cmdCtx.Ctx, author, pf.input)
		} else {
			post, err = rt.Services.Blog.Update(cmdCtx.Ctx, pf.id, author, pf.input)
		}
		if err != nil {
			return err
		}
		return writef(cmdCtx.Out, "Saved post %s (%s)\n", post.ID, post.Slug)
	})
}

func runPostPublish(cmdCtx *commandContext, args []string) error {
	return setPostPublished(cmdCtx, args, true)
}

func runPostUnpublish(cmdCtx *commandContext, args []string) error {
	return setPostPublished(cmdCtx, args, false)
}

func setPostPublished(cmdCtx *commandContext, args []string, published bool) error {
	verb := "unpublish"
	if published {
		verb = "publish"
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: sentinel-admin post-%s <id>", verb)
	}
	return withAdmin(cmdCtx, func(rt *cliRuntime) error {
		if rt.Services.Blog == nil {
			return errContentAdminUnavailable
		}
		post, err := rt.Services.Blog.SetPublished(cmdCtx.Ctx, args[0], published)
		if err != nil {
			return err
		}
		return writef(cmdCtx.Out, "Post %s %sed\n", post.Slug, verb)
	})
}

func runPostDelete(cmdCtx *commandContext, args []string) error {
	return runDelete(cmdCtx, args, "post", func(rt *cliRuntime) (deleter, error) {
		if rt.Services.Blog == nil {
			return nil, errContentAdminUnavailable
		}
		return rt.Services.Blog, nil
	})
}

// readInput reads path, or stdin when path is "-".
func readInput(cmdCtx *commandContext, path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(cmdCtx.In)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
