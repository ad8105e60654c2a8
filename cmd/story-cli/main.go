package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/scenah/story-cli/feed"
	"github.com/scenah/story-cli/imageupload"
	"github.com/scenah/story-cli/logger"
	"github.com/scenah/story-cli/model"
	"github.com/scenah/story-cli/session"
	"github.com/scenah/story-cli/store"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitDataError    = 3
	ExitAuthError    = 4
)

func main() {
	app := &cli.App{
		Name:    "story-cli",
		Usage:   "A personal blog: public story browser plus a password-gated editor",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Value:   getDefaultDBPath(),
				Usage:   "Database file path",
				EnvVars: []string{"STORY_CLI_DB"},
			},
			&cli.StringFlag{
				Name:    "admin-password",
				Usage:   "Override the editor password",
				EnvVars: []string{"STORY_CLI_PASSWORD"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "stories",
				Usage: "List published stories",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "category",
						Aliases: []string{"c"},
						Usage:   "Only stories in this category (exact match)",
					},
					&cli.StringFlag{
						Name:    "since",
						Aliases: []string{"s"},
						Usage:   "Only stories published since duration (e.g., 7d, 2w, 3m, 1y)",
					},
				},
				Action: listStories,
			},
			{
				Name:      "search",
				Usage:     "Search stories by title, excerpt, content, or tag",
				ArgsUsage: "<query>",
				Action:    searchStories,
			},
			{
				Name:      "show",
				Usage:     "Show a published story",
				ArgsUsage: "<story-id>",
				Action:    showStory,
			},
			{
				Name:   "categories",
				Usage:  "List all categories",
				Action: listCategories,
			},
			{
				Name:   "tags",
				Usage:  "List all tags",
				Action: listTags,
			},
			{
				Name:      "likes",
				Usage:     "Show the like count for a story",
				ArgsUsage: "<story-id>",
				Action:    showLikes,
			},
			{
				Name:      "like",
				Usage:     "Toggle your like on a story",
				ArgsUsage: "<story-id>",
				Action:    toggleLike,
			},
			{
				Name:   "drafts",
				Usage:  "List drafts (editor only)",
				Action: listDrafts,
			},
			{
				Name:      "show-draft",
				Usage:     "Show a draft (editor only)",
				ArgsUsage: "<draft-id>",
				Action:    showDraft,
			},
			{
				Name:   "new",
				Usage:  "Publish a new story (editor only)",
				Flags:  editorFlags(),
				Action: newStory,
			},
			{
				Name:   "draft",
				Usage:  "Save a new draft (editor only)",
				Flags:  editorFlags(),
				Action: newDraft,
			},
			{
				Name:      "edit",
				Usage:     "Update a published story (editor only)",
				ArgsUsage: "<story-id>",
				Flags:     editorFlags(),
				Action:    editStory,
			},
			{
				Name:      "edit-draft",
				Usage:     "Update a draft (editor only)",
				ArgsUsage: "<draft-id>",
				Flags:     editorFlags(),
				Action:    editDraft,
			},
			{
				Name:      "delete",
				Usage:     "Delete a published story (editor only)",
				ArgsUsage: "<story-id>",
				Action:    deleteStory,
			},
			{
				Name:      "delete-draft",
				Usage:     "Delete a draft (editor only)",
				ArgsUsage: "<draft-id>",
				Action:    deleteDraft,
			},
			{
				Name:      "publish",
				Usage:     "Publish a draft (editor only)",
				ArgsUsage: "<draft-id>",
				Action:    publishDraft,
			},
			{
				Name:      "login",
				Usage:     "Log in to the editor",
				ArgsUsage: "<password>",
				Action:    login,
			},
			{
				Name:   "logout",
				Usage:  "Log out of the editor",
				Action: logout,
			},
			{
				Name:   "whoami",
				Usage:  "Show editor session status",
				Action: whoami,
			},
			{
				Name:      "import",
				Usage:     "Import posts from an RSS/Atom feed as drafts (editor only)",
				ArgsUsage: "<feed-url>",
				Action:    importFeed,
			},
			{
				Name:  "export",
				Usage: "Export published stories as RSS",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (default: stdout)",
					},
					&cli.StringFlag{
						Name:  "site-title",
						Value: "Stories",
						Usage: "Feed title",
					},
					&cli.StringFlag{
						Name:  "site-link",
						Usage: "Site base URL for story links",
					},
				},
				Action: exportFeed,
			},
			{
				Name:      "image",
				Usage:     "Convert an image file to an embeddable data URI (editor only)",
				ArgsUsage: "<file>",
				Action:    processImage,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneralError)
	}
}

// editorFlags are the content fields the editor form supplies. The store
// owns ids and timestamps; read time is derived from content when omitted.
func editorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Story title"},
		&cli.StringFlag{Name: "excerpt", Aliases: []string{"e"}, Usage: "Short excerpt for listings"},
		&cli.StringFlag{Name: "content", Usage: "Story content"},
		&cli.StringFlag{Name: "content-file", Aliases: []string{"f"}, Usage: "Read story content from a file (- for stdin)"},
		&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Story category"},
		&cli.StringSliceFlag{Name: "tag", Usage: "Story tag (repeatable)"},
		&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Usage: "Cover image URL or data URI"},
	}
}

func getDefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "story-cli.db"
	}
	return filepath.Join(home, ".config", "story-cli", "story-cli.db")
}

// env bundles everything a command needs: the opened key-value database and
// the components built on top of it.
type env struct {
	kv      *store.SQLiteKV
	content *store.Store
	likes   *store.Likes
	guard   *session.Guard
	log     zerolog.Logger
}

// openEnv opens the database and runs the one-time bootstrap: seeding the
// bundled stories into an empty store and default like counts for stories
// that have none.
func openEnv(c *cli.Context) (*env, error) {
	dbPath := c.String("db")

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	log := logger.New()
	kv, err := store.OpenKV(dbPath, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	e := &env{
		kv:      kv,
		content: store.New(kv, log),
		likes:   store.NewLikes(kv, log),
		guard:   session.NewGuard(kv, c.String("admin-password")),
		log:     log,
	}
	e.content.Migrate()
	e.likes.SeedDefaults(e.content.Stories())
	return e, nil
}

func (e *env) Close() error {
	return e.kv.Close()
}

// requireAuth gates editor commands the way the site gates editor views.
func (e *env) requireAuth() error {
	if !e.guard.IsAuthenticated() {
		return cli.Exit("Not logged in. Run: story-cli login <password>", ExitAuthError)
	}
	return nil
}

func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// inputFromFlags assembles editor input from command flags. When base is
// non-nil (editing), unset flags keep the existing values.
func inputFromFlags(c *cli.Context, base *model.StoryInput) (model.StoryInput, error) {
	in := model.StoryInput{Tags: []string{}}
	if base != nil {
		in = *base
	}

	if c.IsSet("title") {
		in.Title = c.String("title")
	}
	if c.IsSet("excerpt") {
		in.Excerpt = c.String("excerpt")
	}
	if c.IsSet("content") {
		in.Content = c.String("content")
	}
	if c.IsSet("content-file") {
		content, err := readContentFile(c.String("content-file"))
		if err != nil {
			return in, err
		}
		in.Content = content
	}
	if c.IsSet("category") {
		in.Category = c.String("category")
	}
	if c.IsSet("tag") {
		in.Tags = c.StringSlice("tag")
	}
	if c.IsSet("image") {
		in.Image = c.String("image")
	}

	in.ReadTime = model.EstimateReadTime(in.Content)
	return in, nil
}

func readContentFile(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	return string(data), nil
}

func listStories(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	var stories []model.Story
	if category := c.String("category"); category != "" {
		stories = e.content.StoriesByCategory(category)
	} else {
		stories = e.content.Stories()
	}

	if since := c.String("since"); since != "" {
		cutoff, err := store.SinceDate(since)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Invalid --since flag: %v", err), ExitUsageError)
		}
		stories = store.FilterSince(stories, cutoff)
	}

	return outputJSON(map[string]interface{}{
		"count":   len(stories),
		"stories": stories,
	})
}

func searchStories(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli search <query>", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	matched := e.content.SearchStories(c.Args().Get(0))
	return outputJSON(map[string]interface{}{
		"count":   len(matched),
		"stories": matched,
	})
}

func showStory(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli show <story-id>", ExitUsageError)
	}
	id, err := parseID(c.Args().Get(0))
	if err != nil {
		return cli.Exit("Invalid story ID", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	story, ok := e.content.StoryByID(id)
	if !ok {
		return cli.Exit(fmt.Sprintf("Story %d not found", id), ExitDataError)
	}
	return outputJSON(story)
}

func listCategories(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	return outputJSON(e.content.Categories())
}

func listTags(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	return outputJSON(e.content.Tags())
}

func showLikes(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli likes <story-id>", ExitUsageError)
	}
	id, err := parseID(c.Args().Get(0))
	if err != nil {
		return cli.Exit("Invalid story ID", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	return outputJSON(map[string]interface{}{
		"story_id": id,
		"likes":    e.likes.Count(id),
		"liked":    e.likes.HasLiked(id),
	})
}

func toggleLike(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli like <story-id>", ExitUsageError)
	}
	id, err := parseID(c.Args().Get(0))
	if err != nil {
		return cli.Exit("Invalid story ID", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	count, liked := e.likes.Toggle(id)
	return outputJSON(map[string]interface{}{
		"story_id": id,
		"likes":    count,
		"liked":    liked,
	})
}

func listDrafts(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if err := e.requireAuth(); err != nil {
		return err
	}

	drafts := e.content.Drafts()
	return outputJSON(map[string]interface{}{
		"count":  len(drafts),
		"drafts": drafts,
	})
}

func showDraft(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli show-draft <draft-id>", ExitUsageError)
	}
	id, err := parseID(c.Args().Get(0))
	if err != nil {
		return cli.Exit("Invalid draft ID", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if err := e.requireAuth(); err != nil {
		return err
	}

	draft, ok := e.content.DraftByID(id)
	if !ok {
		return cli.Exit(fmt.Sprintf("Draft %d not found", id), ExitDataError)
	}
	return outputJSON(draft)
}

func newStory(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if err := e.requireAuth(); err != nil {
		return err
	}

	in, err := inputFromFlags(c, nil)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	if err := in.Validate(); err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	story := e.content.CreateStory(in)
	return outputJSON(map[string]interface{}{
		"success": true,
		"story":   story,
	})
}

func newDraft(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if err := e.requireAuth(); err != nil {
		return err
	}

	in, err := inputFromFlags(c, nil)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	if err := in.ValidateDraft(); err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	draft := e.content.CreateDraft(in)
	return outputJSON(map[string]interface{}{
		"success": true,
		"draft":   draft,
	})
}

func editStory(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli edit <story-id>", ExitUsageError)
	}
	id, err := parseID(c.Args().Get(0))
	if err != nil {
		return cli.Exit("Invalid story ID", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if err := e.requireAuth(); err != nil {
		return err
	}

	existing, ok := e.content.StoryByID(id)
	if !ok {
		return cli.Exit(fmt.Sprintf("Story %d not found", id), ExitDataError)
	}

	base := model.StoryInput{
		Title:    existing.Title,
		Excerpt:  existing.Excerpt,
		Content:  existing.Content,
		Category: existing.Category,
		Tags:     existing.Tags,
		Image:    existing.Image,
	}
	in, err := inputFromFlags(c, &base)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	if err := in.Validate(); err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	story, err := e.content.UpdateStory(id, in)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to update story: %v", err), ExitDataError)
	}
	return outputJSON(map[string]interface{}{
		"success": true,
		"story":   story,
	})
}

func editDraft(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli edit-draft <draft-id>", ExitUsageError)
	}
	id, err := parseID(c.Args().Get(0))
	if err != nil {
		return cli.Exit("Invalid draft ID", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if err := e.requireAuth(); err != nil {
		return err
	}

	existing, ok := e.content.DraftByID(id)
	if !ok {
		return cli.Exit(fmt.Sprintf("Draft %d not found", id), ExitDataError)
	}

	base := model.StoryInput{
		Title:    existing.Title,
		Excerpt:  existing.Excerpt,
		Content:  existing.Content,
		Category: existing.Category,
		Tags:     existing.Tags,
		Image:    existing.Image,
	}
	in, err := inputFromFlags(c, &base)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	if err := in.ValidateDraft(); err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	draft, err := e.content.UpdateDraft(id, in)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to update draft: %v", err), ExitDataError)
	}
	return outputJSON(map[string]interface{}{
		"success": true,
		"draft":   draft,
	})
}

func deleteStory(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli delete <story-id>", ExitUsageError)
	}
	id, err := parseID(c.Args().Get(0))
	if err != nil {
		return cli.Exit("Invalid story ID", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if err := e.requireAuth(); err != nil {
		return err
	}

	e.content.DeleteStory(id)
	return outputJSON(map[string]interface{}{
		"success":  true,
		"story_id": id,
	})
}

func deleteDraft(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli delete-draft <draft-id>", ExitUsageError)
	}
	id, err := parseID(c.Args().Get(0))
	if err != nil {
		return cli.Exit("Invalid draft ID", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if err := e.requireAuth(); err != nil {
		return err
	}

	e.content.DeleteDraft(id)
	return outputJSON(map[string]interface{}{
		"success":  true,
		"draft_id": id,
	})
}

func publishDraft(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli publish <draft-id>", ExitUsageError)
	}
	id, err := parseID(c.Args().Get(0))
	if err != nil {
		return cli.Exit("Invalid draft ID", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if err := e.requireAuth(); err != nil {
		return err
	}

	story, err := e.content.PublishDraft(id)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to publish draft: %v", err), ExitDataError)
	}
	return outputJSON(map[string]interface{}{
		"success": true,
		"story":   story,
	})
}

func login(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli login <password>", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if !e.guard.Login(c.Args().Get(0)) {
		return cli.Exit("Invalid password. Please try again.", ExitAuthError)
	}
	return outputJSON(map[string]interface{}{
		"success": true,
	})
}

func logout(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	e.guard.Logout()
	return outputJSON(map[string]interface{}{
		"success": true,
	})
}

func whoami(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	return outputJSON(map[string]interface{}{
		"authenticated": e.guard.IsAuthenticated(),
	})
}

func importFeed(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli import <feed-url>", ExitUsageError)
	}

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if err := e.requireAuth(); err != nil {
		return err
	}

	importer := feed.NewImporter()
	inputs, err := importer.Fetch(c.Args().Get(0))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to import feed: %v", err), ExitDataError)
	}

	imported := 0
	skipped := 0
	for _, in := range inputs {
		if err := in.ValidateDraft(); err != nil {
			skipped++
			continue
		}
		e.content.CreateDraft(in)
		imported++
	}

	return outputJSON(map[string]interface{}{
		"success":  true,
		"imported": imported,
		"skipped":  skipped,
		"total":    len(inputs),
	})
}

func exportFeed(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	stories := e.content.Stories()
	site := feed.Site{
		Title:       c.String("site-title"),
		Link:        c.String("site-link"),
		Description: "Published stories",
	}

	outputPath := c.String("output")
	var writer io.Writer
	if outputPath == "" {
		writer = os.Stdout
	} else {
		file, err := os.Create(outputPath)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Failed to create output file: %v", err), ExitDataError)
		}
		defer file.Close()
		writer = file
	}

	if err := feed.Generate(writer, site, stories); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to generate RSS: %v", err), ExitDataError)
	}

	if outputPath != "" {
		return outputJSON(map[string]interface{}{
			"success": true,
			"file":    outputPath,
			"count":   len(stories),
		})
	}
	return nil
}

func processImage(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: story-cli image <file>", ExitUsageError)
	}
	path := c.Args().Get(0)

	e, err := openEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer e.Close()

	if err := e.requireAuth(); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to read image: %v", err), ExitDataError)
	}

	return outputJSON(imageupload.Process(filepath.Base(path), data))
}
