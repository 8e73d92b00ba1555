package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"text/tabwriter"

	"github.com/Akashdeep-Patra/lazylist/internal/app"
	"github.com/Akashdeep-Patra/lazylist/internal/common"
	"github.com/Akashdeep-Patra/lazylist/internal/config"
	"github.com/Akashdeep-Patra/lazylist/internal/feed"
	"github.com/Akashdeep-Patra/lazylist/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	// A TUI spends most of its time waiting on terminal input and feed
	// I/O. Two OS threads cover rendering and message dispatch; an
	// explicit GOMAXPROCS is respected.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(runtime.NumCPU(), 2))
	}

	// Loaded records are the only sizeable allocation; keep RSS low.
	debug.SetMemoryLimit(64 * 1024 * 1024) // 64 MiB
}

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lzl:", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lzl [file]",
		Short: "Scroll through large feeds, loading and rendering as you go",
		Long: `lzl is a keyboard-first terminal list viewer that renders a few rows
up front and grows the window page by page as you scroll. When the
rendered rows run out it asks the source for the next batch.

Sources are a text file, the output of a shell command (--command), or a
synthetic feed (--generate). Lines of the form "category: text" can be
grouped into sections (--sections).`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"lzl %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())
	rootCmd.AddCommand(buildCountCmd())

	addSourceFlags(rootCmd)
	flags := rootCmd.Flags()
	flags.BoolP("sections", "s", false, "Group lines into sections by category")
	flags.Bool("body-scroll", false, "Scroll the whole screen instead of the list box")
	flags.Int("page-size", 10, "Rows revealed per growth step")
	flags.Int("initial", 10, "Rows rendered before any scrolling")
	flags.Bool("no-watch", false, "Do not reload when the file changes")
	flags.String("log-file", "", "Write logs to this file")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")

	return rootCmd
}

// addSourceFlags registers the flags that pick a feed.
func addSourceFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("command", "c", "", "Read the output of a shell command")
	flags.IntP("generate", "g", 0, "Use a synthetic feed of N records")
	flags.String("delimiter", ":", "Separator between category and text")
	cmd.MarkFlagsMutuallyExclusive("command", "generate")
}

// buildVersionCmd creates the `lzl version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Printf("lzl %s\n", version)
			fmt.Printf("  commit:  %s\n", commit)
			fmt.Printf("  built:   %s\n", date)
			fmt.Printf("  go:      %s\n", runtime.Version())
			fmt.Printf("  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `lzl completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for lzl.

Examples:
  # Bash (add to ~/.bashrc)
  lzl completion bash > /etc/bash_completion.d/lzl

  # Zsh (add to ~/.zshrc before compinit)
  lzl completion zsh > "${fpath[1]}/_lzl"

  # Fish
  lzl completion fish > ~/.config/fish/completions/lzl.fish

  # PowerShell
  lzl completion powershell > lzl.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}

// buildCountCmd creates `lzl count`, which pages through a whole source
// and prints how many records each category holds.
func buildCountCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "count [file]",
		Short: "Load a whole feed and print record counts per category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			svc, err := sourceFromFlags(cmd, args, cfg)
			if err != nil {
				return err
			}
			records, err := feed.LoadAll(svc, cfg.FetchSize)
			if err != nil {
				return err
			}
			return printCounts(os.Stdout, svc.Name(), records, jsonOutput)
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output counts as JSON")

	return cmd
}

type categoryCount struct {
	Category string `json:"category"`
	Records  int    `json:"records"`
}

func printCounts(w io.Writer, name string, records []feed.Record, jsonOutput bool) error {
	groups := feed.GroupByCategory(records)
	counts := make([]categoryCount, len(groups))
	for i, g := range groups {
		counts[i] = categoryCount{Category: g.Category, Records: len(g.Records)}
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"source":     name,
			"total":      len(records),
			"categories": counts,
		})
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%d\t\n", name, len(records))
	for _, c := range counts {
		fmt.Fprintf(tw, "  %s\t%d\t\n", c.Category, c.Records)
	}
	return tw.Flush()
}

// sourceFromFlags builds the feed named by --command, --generate or the
// file argument, wrapped in a short-lived page cache.
func sourceFromFlags(cmd *cobra.Command, args []string, cfg *config.Config) (feed.Service, error) {
	command, _ := cmd.Flags().GetString("command")
	generate, _ := cmd.Flags().GetInt("generate")

	picked := 0
	for _, set := range []bool{command != "", generate > 0, len(args) > 0} {
		if set {
			picked++
		}
	}
	switch {
	case picked == 0:
		return nil, errors.New("no source: pass a file, --command or --generate")
	case picked > 1:
		return nil, errors.New("pick one source: a file, --command or --generate")
	}

	var (
		inner feed.Service
		err   error
	)
	switch {
	case generate > 0:
		inner = feed.NewGeneratedService(generate)
	case command != "":
		inner, err = feed.Open("!"+command, "", cfg.SectionDelimiter)
	default:
		inner, err = feed.Open(args[0], "", cfg.SectionDelimiter)
	}
	if err != nil {
		return nil, err
	}
	return feed.NewCachedService(inner, cfg.CacheTTL), nil
}

// newLogger writes to cfg.LogFile, or discards everything when unset.
// The returned close func must be called on exit.
func newLogger(cfg *config.Config) (*log.Logger, func(), error) {
	if cfg.LogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "lzl",
	})
	return logger, func() { _ = f.Close() }, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	svc, err := sourceFromFlags(cmd, args, cfg)
	if err != nil {
		return err
	}

	wd, _ := os.Getwd()
	opener := func(source string) (feed.Service, error) {
		inner, err := feed.Open(source, wd, cfg.SectionDelimiter)
		if err != nil {
			return nil, err
		}
		return feed.NewCachedService(inner, cfg.CacheTTL), nil
	}

	opts := []app.Option{app.WithOpener(opener), app.WithLogger(logger)}
	if sections, _ := cmd.Flags().GetBool("sections"); sections {
		opts = append(opts, app.WithMode(common.ModeSections))
	}
	model := app.New(svc, cfg, opts...)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Reload when the backing file changes. Command and generated feeds
	// have nothing to watch.
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	if path := svc.Path(); path != "" && !noWatch {
		watchCh, stop, watchErr := watcher.Watch(path, cfg.WatchDebounce, logger.WithPrefix("watch"))
		if watchErr != nil {
			logger.Warn("watch disabled", "path", path, "err", watchErr)
		} else {
			defer stop()
			go func() {
				for range watchCh {
					p.Send(common.RefreshMsg{})
				}
			}()
		}
	}

	logger.Info("starting", "version", version, "source", svc.Name())
	_, err = p.Run()
	return err
}
