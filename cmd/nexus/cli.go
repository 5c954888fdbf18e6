package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/urfave/cli/v2"

	"github.com/nikbrunner/nexus/internal/favicon"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/pageinfo"
	"github.com/nikbrunner/nexus/internal/picker"
	"github.com/nikbrunner/nexus/internal/search"
	"github.com/nikbrunner/nexus/internal/tui"
)

// errNothingAdded is returned by add when the title or url is empty.
var errNothingAdded = errors.New("nothing added: title and url must be non-empty")

// ProgramRunner runs a bubbletea model to completion.
type ProgramRunner func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error)

// cliOptions holds the side effects the commands use. Zero values use the
// real browser and terminal.
type cliOptions struct {
	OpenURL    func(url string) error
	RunProgram ProgramRunner
}

func runProgram(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	return tea.NewProgram(m, opts...).Run()
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(opts cliOptions) *cli.App {
	if opts.OpenURL == nil {
		opts.OpenURL = tui.OpenInBrowser
	}
	if opts.RunProgram == nil {
		opts.RunProgram = runProgram
	}

	s := &session{}
	app := &cli.App{
		Name:      "nexus",
		Usage:     "Terminal bookmark manager",
		Version:   Version,
		ArgsUsage: "[query]",
		Description: "Without arguments nexus opens the interactive grid.\n" +
			"With a query it opens the best match in the browser.",
		Flags:  globalFlags(),
		Before: s.setup,
		After: func(_ *cli.Context) error {
			return s.close()
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return quickOpen(c, s, opts, strings.Join(c.Args().Slice(), " "))
			}
			return runTUI(s, opts)
		},
		Commands: []*cli.Command{
			addCmd(s),
			rmCmd(s),
			lsCmd(s),
			openCmd(s, opts),
			iconCmd(s),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Config file (default ~/.config/nexus/config.json)"},
		&cli.StringFlag{Name: "data-dir", Usage: "Directory holding the bookmark data"},
		&cli.StringFlag{Name: "backend", Usage: "Storage backend: json|sqlite|memory"},
		&cli.BoolFlag{Name: "ephemeral", Usage: "Keep bookmarks in memory only"},
		&cli.BoolFlag{Name: "discard-corrupt", Usage: "Back up and discard unreadable stored data instead of failing"},
		&cli.StringFlag{Name: "log-level", Usage: "Set logging level: debug|info|warn|error"},
	}
}

// runTUI runs the full interactive grid.
func runTUI(s *session, opts cliOptions) error {
	if err := s.useLogFile(); err != nil {
		return err
	}

	st, err := s.openStore()
	if err != nil {
		return err
	}

	resolver := favicon.NewResolver(s.cfg.FaviconTemplate, s.cfg.FaviconSize)
	params := tui.AppParams{
		Store:    st,
		Logger:   s.logger,
		Resolver: &resolver,
		OpenURL:  opts.OpenURL,
	}
	if !s.cfg.DisableIcons {
		params.Icons = favicon.NewFetcher(s.cfg.IconConcurrency, iconTimeout(s))
	}

	if _, err := opts.RunProgram(tui.NewApp(params), tea.WithAltScreen()); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

func iconTimeout(s *session) time.Duration {
	return time.Duration(s.cfg.IconTimeoutSeconds) * time.Second
}

// quickOpen performs a fuzzy search and opens the selected bookmark.
func quickOpen(c *cli.Context, s *session, opts cliOptions, query string) error {
	st, err := s.openStore()
	if err != nil {
		return err
	}

	results := search.FuzzySearchBookmarks(st.Bookmarks(), query)
	if len(results) == 0 {
		fmt.Fprintf(c.App.Writer, "No bookmarks found for '%s'\n", query)
		return nil
	}

	var selected *model.Bookmark
	if len(results) == 1 {
		// Single result - select it directly
		selected = results[0].Bookmark
	} else {
		// Multiple results - show picker
		final, err := opts.RunProgram(picker.New(results, query))
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}
		p, ok := final.(picker.Picker)
		if !ok || p.Cancelled() {
			return nil
		}
		selected = p.SelectedBookmark()
	}

	if selected == nil {
		return nil
	}

	fmt.Fprintf(c.App.Writer, "Opening: %s\n", selected.Title)
	return opts.OpenURL(selected.URL)
}

// addCmd creates the add command.
func addCmd(s *session) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a bookmark and print its id",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Bookmark title"},
			&cli.BoolFlag{Name: "fetch-title", Usage: "Use the page title when --title is empty"},
		},
		Action: func(c *cli.Context) error {
			st, err := s.openStore()
			if err != nil {
				return err
			}

			rawURL := c.Args().First()
			title := c.String("title")
			if strings.TrimSpace(title) == "" && c.Bool("fetch-title") && strings.TrimSpace(rawURL) != "" {
				client := &http.Client{Timeout: 10 * time.Second}
				fetched, err := pageinfo.FetchTitle(c.Context, client, model.NormalizeURL(rawURL))
				if err != nil {
					s.logger.Warn("title lookup failed", "url", rawURL, "error", err)
				} else {
					title = fetched
				}
			}

			b, added, err := st.Add(title, rawURL)
			if err != nil {
				return err
			}
			if !added {
				return errNothingAdded
			}

			fmt.Fprintln(c.App.Writer, b.ID)
			return nil
		},
	}
}

// rmCmd creates the rm command.
func rmCmd(s *session) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Remove a bookmark by id or unique id prefix",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("id is required")
			}

			st, err := s.openStore()
			if err != nil {
				return err
			}

			b, err := st.Resolve(c.Args().First())
			if err != nil {
				return err
			}
			if _, err := st.Remove(b.ID); err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "Removed %s\n", b.Title)
			return nil
		},
	}
}

// lsCmd creates the ls command.
func lsCmd(s *session) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "List bookmarks, optionally filtered by a substring of title or url",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
		},
		Action: func(c *cli.Context) error {
			st, err := s.openStore()
			if err != nil {
				return err
			}

			bookmarks := search.Filter(st.Bookmarks(), strings.Join(c.Args().Slice(), " "))

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(bookmarks)
			}

			if len(bookmarks) == 0 {
				fmt.Fprintln(c.App.Writer, "No bookmarks found.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "Title", "Host")
			for _, b := range bookmarks {
				t.Row(shortID(b.ID), b.Title, b.Host())
			}
			fmt.Fprintln(c.App.Writer, t.Render())
			return nil
		},
	}
}

// openCmd creates the open command.
func openCmd(s *session, opts cliOptions) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Fuzzy search bookmarks and open the selection in the browser",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("query is required")
			}
			return quickOpen(c, s, opts, strings.Join(c.Args().Slice(), " "))
		},
	}
}

// iconCmd creates the icon command.
func iconCmd(s *session) *cli.Command {
	return &cli.Command{
		Name:      "icon",
		Usage:     "Print the favicon address for a url, or for every bookmark",
		ArgsUsage: "[url]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "check", Usage: "Download each icon and report whether it loads"},
		},
		Action: func(c *cli.Context) error {
			resolver := favicon.NewResolver(s.cfg.FaviconTemplate, s.cfg.FaviconSize)
			w := c.App.Writer

			if c.NArg() > 0 {
				iconURL, ok := resolver.Resolve(c.Args().First())
				if !ok {
					fmt.Fprintln(w, favicon.ErrNoIcon.Error())
					return nil
				}
				fmt.Fprintln(w, iconURL)
				if c.Bool("check") {
					fetcher := favicon.NewFetcher(1, iconTimeout(s))
					if _, err := fetcher.Load(c.Context, iconURL); err != nil {
						fmt.Fprintln(w, "failed: "+err.Error())
						return nil
					}
					fmt.Fprintln(w, "ok")
				}
				return nil
			}

			st, err := s.openStore()
			if err != nil {
				return err
			}

			bookmarks := st.Bookmarks()
			iconURLs := make([]string, len(bookmarks))
			for i, b := range bookmarks {
				iconURLs[i], _ = resolver.Resolve(b.URL)
			}

			status := make([]string, len(bookmarks))
			if c.Bool("check") {
				fetcher := favicon.NewFetcher(s.cfg.IconConcurrency, iconTimeout(s))
				var pending []string
				for _, u := range iconURLs {
					if u != "" {
						pending = append(pending, u)
					}
				}
				outcome := make(map[string]error, len(pending))
				for _, r := range fetcher.LoadAll(c.Context, pending, nil) {
					outcome[r.IconURL] = r.Err
				}
				for i, u := range iconURLs {
					if u == "" {
						continue
					}
					if err := outcome[u]; err != nil {
						status[i] = "failed: " + err.Error()
					} else {
						status[i] = "ok"
					}
				}
			}

			for i, b := range bookmarks {
				addr := iconURLs[i]
				if addr == "" {
					addr = favicon.ErrNoIcon.Error()
				}
				line := fmt.Sprintf("%s\t%s\t%s", shortID(b.ID), b.Title, addr)
				if status[i] != "" {
					line += "\t" + status[i]
				}
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
