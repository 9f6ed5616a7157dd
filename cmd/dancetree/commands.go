package main

import (
	"cmp"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/dancefloor/internal/assign"
	"github.com/llehouerou/dancefloor/internal/config"
	"github.com/llehouerou/dancefloor/internal/dancetree"
	"github.com/llehouerou/dancefloor/internal/library"
	"github.com/llehouerou/dancefloor/internal/logging"
	"github.com/llehouerou/dancefloor/internal/state"
)

var (
	exportOutput string
	checkMusic   string
	checkNoCache bool
	verbose      bool
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace the dance tree with FILE",
	Long:  "Validate FILE strictly (unknown fields are rejected) and make it the dance tree. The current tree is kept when FILE is invalid.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dance tree as JSON",
	RunE:  runExport,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Scan the music directory and report tracks without a dance",
	RunE:  runCheck,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	checkCmd.Flags().StringVar(&checkMusic, "music", "", "Music directory (default: music_dir from config)")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "Read every file instead of using the scan cache")
	checkCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log scan details to stderr")
}

// openStore loads the configured tree file.
func openStore() (*dancetree.Store, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	path := treeFile
	if path == "" {
		path = cfg.TreeFile
	}
	store, err := dancetree.NewStore(path)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Load(); err != nil {
		return nil, nil, fmt.Errorf("load dance tree: %w", err)
	}
	return store, cfg, nil
}

func runImport(_ *cobra.Command, args []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if err := store.Import(f); err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}
	if err := store.Save(); err != nil {
		return fmt.Errorf("save dance tree: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Imported %d dances into %s\n", len(store.Tree().Leaves()), store.Path())
	return nil
}

func runExport(_ *cobra.Command, _ []string) error {
	store, _, err := openStore()
	if err != nil {
		return err
	}
	if exportOutput == "" {
		return store.Export(os.Stdout)
	}
	f, err := os.Create(exportOutput)
	if err != nil {
		return err
	}
	if err := store.Export(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runCheck(cmd *cobra.Command, _ []string) error {
	store, cfg, err := openStore()
	if err != nil {
		return err
	}
	root := checkMusic
	if root == "" {
		root = cfg.MusicDir
	}
	if root == "" {
		return fmt.Errorf("no music directory: pass --music or set music_dir")
	}

	logger := zerolog.Nop()
	if verbose {
		logger = logging.Setup(cfg.GetLogLevel(), logging.Console(os.Stderr))
	}

	opts := []library.Option{library.WithLogger(logger)}
	if !checkNoCache {
		mgr, err := state.Open()
		if err != nil {
			return fmt.Errorf("open state: %w", err)
		}
		defer mgr.Close()
		opts = append(opts, library.WithCache(mgr))
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Scanning %s...\n", root)
	res, err := library.New(opts...).Scan(ctx, root, nil)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	result := assign.Rebuild(store.Tree(), cfg.SynonymGroups(), res.Tracks, logger)
	printReport(res, result)
	return nil
}

func printReport(res *library.ScanResult, result assign.Result) {
	fmt.Printf("Files found:  %s (%s cached, %s skipped)\n",
		humanize.Comma(int64(res.Stats.Found)),
		humanize.Comma(int64(res.Stats.Cached)),
		humanize.Comma(int64(res.Stats.Skipped)))
	fmt.Printf("Assigned:     %s\n", humanize.Comma(int64(result.Assigned)))
	fmt.Printf("Unassigned:   %s\n", humanize.Comma(int64(result.Unassigned)))

	if len(result.Missing) == 0 {
		return
	}
	names := make([]string, 0, len(result.Missing))
	for name := range result.Missing {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if d := cmp.Compare(result.Missing[b], result.Missing[a]); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})
	fmt.Println("\nDances not in the tree:")
	for _, name := range names {
		label := name
		if label == "" {
			label = "(empty)"
		}
		fmt.Printf("  %6d  %s\n", result.Missing[name], label)
	}
}
