package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"wiki-quiz/internal/adapter/llm"
	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/adapter/scraper"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/service"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type result struct {
	url   string
	title string
	err   error
}

func main() {
	file := flag.String("file", "", "file with one article URL per line")
	workers := flag.Int("workers", 2, "max concurrent generations")
	flag.Parse()

	urls, err := collectURLs(*file, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Failed to read URLs: %v", err))
		os.Exit(1)
	}
	if len(urls) == 0 {
		fmt.Fprintln(os.Stderr, "usage: batch_generate [-file urls.txt] [-workers n] [url ...]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	if err := database.RunMigrations(cfg.DB, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	db, err := database.Open(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Batch runs are pointless without an LLM, so a missing credential is fatal here.
	model, err := llm.NewModel(ctx, cfg.LLM)
	if err != nil {
		log.Fatal("Failed to initialize LLM", zap.Error(err))
	}

	svc := service.NewQuizService(
		scraper.NewWikipediaExtractorFromConfig(cfg.Scraper, log),
		quizgen.NewSynthesizer(llm.NewCompleter(model, cfg.LLM.Timeout, cfg.LLM.Temperature, log), log),
		repository.NewQuizDatabaseAdapter(db),
		log,
	)

	results := generateAll(ctx, svc, urls, *workers)
	failed := report(results)
	if failed > 0 {
		os.Exit(1)
	}
}

// generateAll runs one generation per URL. A failed URL does not stop the others.
func generateAll(ctx context.Context, svc service.QuizService, urls []string, workers int) []result {
	results := make([]result, len(urls))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			res := result{url: u}
			quiz, err := svc.GenerateQuiz(ctx, u)
			if err != nil {
				res.err = err
			} else {
				res.title = quiz.Title
			}
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func report(results []result) int {
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Printf("%s %s [%s] %v\n", color.RedString("FAIL"), r.url, domain.CodeOf(r.err), r.err)
			continue
		}
		fmt.Printf("%s %s %s\n", color.GreenString("OK  "), r.url, color.HiBlueString(r.title))
	}
	summary := fmt.Sprintf("%d generated, %d failed", len(results)-failed, failed)
	if failed > 0 {
		fmt.Println(color.YellowString(summary))
	} else {
		fmt.Println(color.GreenString(summary))
	}
	return failed
}

// collectURLs merges URLs from the file (blank lines and # comments skipped) and args.
func collectURLs(path string, args []string) ([]string, error) {
	var urls []string
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			urls = append(urls, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			urls = append(urls, a)
		}
	}
	return urls, nil
}
