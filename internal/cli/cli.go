package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"mclang-tool/internal/ai"
	"mclang-tool/internal/analyzer"
	"mclang-tool/internal/archive"
	"mclang-tool/internal/cache"
	"mclang-tool/internal/config"
	"mclang-tool/internal/filewalker"
	"mclang-tool/internal/parser"
	"mclang-tool/internal/report"
	"mclang-tool/internal/textutil"
	"mclang-tool/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "mclang-tool",
		Short: "Readability analysis and AI simplification for Minecraft lang files",
		Long: `Extracts player-facing text from Minecraft .lang files (directly or out of
.mcworld/.mctemplate archives), scores its reading difficulty with classic
readability formulas, and optionally rewrites it for a target age with a
local Ollama model.`,
	}

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(stripCmd())
	rootCmd.AddCommand(improveCmd())
	rootCmd.AddCommand(quizCmd())
	rootCmd.AddCommand(clearCacheCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Score the reading difficulty of lang-file text",
		Long: `Analyzes a .lang file, every .lang file under a directory, or the best
language file inside a .mcworld/.mctemplate archive.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			allFiles, _ := cmd.Flags().GetBool("all-files")
			playerFacing, _ := cmd.Flags().GetBool("player-facing-only")
			retainRatio, _ := cmd.Flags().GetFloat64("retain-ratio")
			return runAnalyze(args[0], asJSON, allFiles, playerFacing, retainRatio)
		},
	}

	cmd.Flags().Bool("json", false, "Emit the result as JSON")
	cmd.Flags().Bool("all-files", false, "Analyze every discovered lang file, not just the best candidate")
	cmd.Flags().Bool("player-facing-only", false, "Restrict analysis to known player-facing key namespaces")
	cmd.Flags().Float64("retain-ratio", 0, "Override the cleaner's minimum retain ratio (0 = configured default)")

	return cmd
}

func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <archive>",
		Short: "Extract a .mcworld/.mctemplate archive and list its lang files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0])
		},
	}
}

func stripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip <lang-file>",
		Short: "Remove non-player-facing entries from a lang file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			return runStrip(args[0], output)
		},
	}

	cmd.Flags().String("output", "", "Output path (default: <name>_stripped.lang)")
	return cmd
}

func improveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "improve <lang-file>",
		Short: "Rewrite player-facing text for a target age using Ollama",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			age, _ := cmd.Flags().GetInt("age")
			model, _ := cmd.Flags().GetString("model")
			autoAccept, _ := cmd.Flags().GetBool("yes")
			return runImprove(args[0], age, model, autoAccept)
		},
	}

	cmd.Flags().Int("age", 0, "Target reader age (default: configured TARGET_AGE)")
	cmd.Flags().String("model", "", "Ollama model name (default: configured OLLAMA_MODEL)")
	cmd.Flags().Bool("yes", false, "Accept every AI proposal without prompting")
	return cmd
}

func quizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz <lang-file>",
		Short: "Generate a comprehension quiz from the game narrative",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			age, _ := cmd.Flags().GetInt("age")
			model, _ := cmd.Flags().GetString("model")
			return runQuiz(args[0], age, model)
		},
	}

	cmd.Flags().Int("age", 0, "Target student age (default: configured TARGET_AGE)")
	cmd.Flags().String("model", "", "Ollama model name (default: configured OLLAMA_MODEL)")
	return cmd
}

func clearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Remove all cached archive extractions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			extractor, err := archive.NewExtractor(cfg.CacheDir)
			if err != nil {
				return err
			}
			if err := extractor.ClearCache(); err != nil {
				return err
			}
			log.Info().Str("dir", cfg.CacheDir).Msg("Cache cleared")
			return nil
		},
	}
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// isArchive reports whether path looks like a world archive.
func isArchive(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mcworld", ".mctemplate", ".zip":
		return true
	}
	return false
}

// resolveLangFiles turns an archive, directory, or file argument into the
// ordered list of lang files to work on.
func resolveLangFiles(cfg *config.Config, path string) ([]filewalker.LangFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}

	if !info.IsDir() && isArchive(path) {
		extractor, err := archive.NewExtractor(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		dir, err := extractor.Extract(path)
		if err != nil {
			return nil, err
		}
		return filewalker.FindLangFiles(dir)
	}

	if info.IsDir() {
		return filewalker.FindLangFiles(path)
	}

	return []filewalker.LangFile{{Path: path, Size: info.Size()}}, nil
}

func newAnalyzer(cfg *config.Config, playerFacingOnly bool, retainRatio float64) *analyzer.Analyzer {
	var opts []analyzer.Option
	if ratio := retainRatio; ratio > 0 {
		opts = append(opts, analyzer.WithMinRetainRatio(ratio))
	} else if cfg.CleanRetainRatio > 0 {
		opts = append(opts, analyzer.WithMinRetainRatio(cfg.CleanRetainRatio))
	}
	if playerFacingOnly || cfg.PlayerFacingOnly {
		opts = append(opts, analyzer.WithPlayerFacingOnly())
	}
	return analyzer.New(opts...)
}

// runAnalyze handles the `analyze` command.
func runAnalyze(path string, asJSON, allFiles, playerFacingOnly bool, retainRatio float64) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	files, err := resolveLangFiles(cfg, path)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .lang files found under %s", path)
	}

	if !allFiles {
		files = files[:1]
		if !filewalker.IsEnglish(filepath.Base(files[0].Path)) {
			log.Warn().Str("file", files[0].Path).Msg("File may not be English; formulas assume English text")
		}
	}

	a := newAnalyzer(cfg, playerFacingOnly, retainRatio)

	pool := worker.NewPool(cfg.WorkerCount,
		func(ctx context.Context, lf filewalker.LangFile) (*analyzer.Result, error) {
			content, err := os.ReadFile(lf.Path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", lf.Path, err)
			}
			return a.Analyze(content)
		},
	)

	tasks := pool.Execute(ctx, files)

	failures := 0
	for _, task := range tasks {
		if task.Err != nil {
			failures++
			log.Error().Err(task.Err).Str("file", task.Input.Path).Msg("Analysis failed")
			continue
		}

		if len(tasks) > 1 {
			fmt.Printf("\n--- %s ---\n", task.Input.Path)
		}
		if asJSON {
			if err := report.WriteJSON(os.Stdout, task.Result); err != nil {
				return err
			}
		} else {
			if err := report.WriteText(os.Stdout, task.Result); err != nil {
				return err
			}
		}
	}

	if failures == len(tasks) {
		return fmt.Errorf("all %d analyses failed", failures)
	}
	return nil
}

// runExtract handles the `extract` command.
func runExtract(archivePath string) error {
	cfg := config.Load()

	extractor, err := archive.NewExtractor(cfg.CacheDir)
	if err != nil {
		return err
	}

	dir, err := extractor.Extract(archivePath)
	if err != nil {
		return err
	}

	files, err := filewalker.FindLangFiles(dir)
	if err != nil {
		return err
	}

	fmt.Printf("Extracted to: %s\n\n", dir)
	if len(files) == 0 {
		fmt.Println("No .lang files found.")
		return nil
	}

	fmt.Println("Lang files (best candidate first):")
	for i, lf := range files {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Printf("  %s %s (%.2f KB)\n", marker, lf.Path, float64(lf.Size)/1024)
	}
	return nil
}

// runStrip handles the `strip` command.
func runStrip(langPath, outputPath string) error {
	content, err := os.ReadFile(langPath)
	if err != nil {
		return fmt.Errorf("read lang file: %w", err)
	}

	doc, err := parser.ParseDocument(content)
	if err != nil {
		return err
	}

	stripped, removed := analyzer.Strip(doc)

	if outputPath == "" {
		ext := filepath.Ext(langPath)
		outputPath = strings.TrimSuffix(langPath, ext) + "_stripped" + ext
	}

	if err := os.WriteFile(outputPath, stripped, 0644); err != nil {
		return fmt.Errorf("write stripped file: %w", err)
	}

	log.Info().
		Str("output", outputPath).
		Int("removed", removed).
		Msg("Stripped non-player-facing entries")
	return nil
}

// initRewriteCache connects the Postgres-backed cache when DATABASE_URL is
// configured, falling back to memory-only.
func initRewriteCache(ctx context.Context, cfg *config.Config) (*cache.RewriteCache, func()) {
	if cfg.DatabaseURL == "" {
		return cache.NewRewriteCache(nil), func() {}
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("Postgres unavailable, using in-memory cache")
		return cache.NewRewriteCache(nil), func() {}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Warn().Err(err).Msg("Postgres unavailable, using in-memory cache")
		return cache.NewRewriteCache(nil), func() {}
	}

	rc := cache.NewRewriteCache(pool)
	if err := rc.EnsureSchema(ctx); err != nil {
		pool.Close()
		log.Warn().Err(err).Msg("Cache schema setup failed, using in-memory cache")
		return cache.NewRewriteCache(nil), func() {}
	}
	if err := rc.Preload(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to preload rewrite cache")
	}

	log.Info().Msg("Connected to PostgreSQL rewrite cache")
	return rc, pool.Close
}

// consoleReview prompts the user for a decision on each proposed rewrite.
func consoleReview(in *bufio.Reader) ai.ReviewFunc {
	return func(line int, key, original, proposed string) (ai.Decision, string) {
		fmt.Printf("\nLine %d: %s\n", line, key)
		fmt.Printf("  ORIGINAL: %s\n", original)
		fmt.Printf("  PROPOSED: %s\n", proposed)
		fmt.Println("\nOptions:")
		fmt.Println("  1. Accept AI suggestion")
		fmt.Println("  2. Edit the suggestion")
		fmt.Println("  3. Keep original (reject)")
		fmt.Print("  Select option [1]: ")

		choice, err := in.ReadString('\n')
		if err != nil {
			return ai.Reject, ""
		}
		switch strings.TrimSpace(choice) {
		case "", "1":
			return ai.Accept, ""
		case "2":
			fmt.Print("  Enter your text: ")
			edited, err := in.ReadString('\n')
			if err != nil {
				return ai.Reject, ""
			}
			return ai.Edit, strings.TrimSpace(edited)
		default:
			return ai.Reject, ""
		}
	}
}

// runImprove handles the `improve` command.
func runImprove(langPath string, age int, model string, autoAccept bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if age <= 0 {
		age = cfg.TargetAge
	}
	if model == "" {
		model = cfg.OllamaModel
	}

	content, err := os.ReadFile(langPath)
	if err != nil {
		return fmt.Errorf("read lang file: %w", err)
	}

	doc, err := parser.ParseDocument(content)
	if err != nil {
		return err
	}

	rewriteCache, closeCache := initRewriteCache(ctx, cfg)
	defer closeCache()

	client := ai.NewClient(cfg.OllamaHost, model)
	if models, err := client.ListModels(ctx); err != nil {
		log.Warn().Err(err).Str("host", cfg.OllamaHost).Msg("Could not reach Ollama server")
	} else if !containsModel(models, model) {
		log.Warn().Str("model", model).Strs("available", models).Msg("Model not found on server")
	}

	var review ai.ReviewFunc
	if !autoAccept {
		review = consoleReview(bufio.NewReader(os.Stdin))
	}

	rewriter := ai.NewRewriter(client, rewriteCache, review)

	log.Info().Str("file", langPath).Int("age", age).Str("model", model).Msg("Starting rewrite pass")

	result, err := rewriter.Rewrite(ctx, doc, age)
	if err != nil {
		return fmt.Errorf("rewrite: %w", err)
	}

	stem := textutil.SanitizeFilename(strings.TrimSuffix(filepath.Base(langPath), filepath.Ext(langPath)))
	dir := filepath.Dir(langPath)
	outputPath := filepath.Join(dir, fmt.Sprintf("%s_improved_age%d%s", stem, age, filepath.Ext(langPath)))

	if err := os.WriteFile(outputPath, result.Content, 0644); err != nil {
		return fmt.Errorf("write improved file: %w", err)
	}

	changelogDir := filepath.Join(dir, "improvements")
	if err := os.MkdirAll(changelogDir, 0755); err != nil {
		return fmt.Errorf("create changelog directory: %w", err)
	}
	changelogPath := filepath.Join(changelogDir, fmt.Sprintf("%s_changelog_age%d.txt", stem, age))
	if err := os.WriteFile(changelogPath, []byte(result.Changelog), 0644); err != nil {
		return fmt.Errorf("write changelog: %w", err)
	}

	log.Info().
		Str("output", outputPath).
		Str("changelog", changelogPath).
		Int("improved", result.LinesImproved).
		Int("unchanged", result.LinesUnchanged).
		Msg("Rewrite pass complete")
	return nil
}

// runQuiz handles the `quiz` command.
func runQuiz(langPath string, age int, model string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if age <= 0 {
		age = cfg.TargetAge
	}
	if model == "" {
		model = cfg.OllamaModel
	}

	content, err := os.ReadFile(langPath)
	if err != nil {
		return fmt.Errorf("read lang file: %w", err)
	}

	doc, err := parser.ParseDocument(content)
	if err != nil {
		return err
	}

	client := ai.NewClient(cfg.OllamaHost, model)
	quizBuilder := ai.NewQuizBuilder(client)

	log.Info().Str("file", langPath).Int("age", age).Str("model", model).Msg("Generating quiz")

	quiz, err := quizBuilder.Generate(ctx, doc, age)
	if err != nil {
		return err
	}

	stem := textutil.SanitizeFilename(strings.TrimSuffix(filepath.Base(langPath), filepath.Ext(langPath)))
	quizDir := filepath.Join(filepath.Dir(langPath), "quizzes")
	if err := os.MkdirAll(quizDir, 0755); err != nil {
		return fmt.Errorf("create quiz directory: %w", err)
	}

	quizPath := filepath.Join(quizDir, fmt.Sprintf("%s_quiz_age%d.txt", stem, age))
	if err := os.WriteFile(quizPath, []byte(quiz.Questions+"\n"), 0644); err != nil {
		return fmt.Errorf("write quiz: %w", err)
	}

	keyPath := filepath.Join(quizDir, fmt.Sprintf("%s_answer_key_age%d.txt", stem, age))
	if quiz.AnswerKey != "" {
		if err := os.WriteFile(keyPath, []byte(quiz.AnswerKey+"\n"), 0644); err != nil {
			return fmt.Errorf("write answer key: %w", err)
		}
	}

	log.Info().Str("quiz", quizPath).Str("answer_key", keyPath).Msg("Quiz generated")
	return nil
}

func containsModel(models []string, name string) bool {
	for _, m := range models {
		if m == name || strings.HasPrefix(m, name+":") {
			return true
		}
	}
	return false
}
