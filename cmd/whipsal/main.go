package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/whipsal/whipsal/internal/cache"
	"github.com/whipsal/whipsal/internal/config"
	"github.com/whipsal/whipsal/internal/database"
	"github.com/whipsal/whipsal/internal/database/repository"
	"github.com/whipsal/whipsal/internal/nomenclature"
	"github.com/whipsal/whipsal/internal/pattern"
	"github.com/whipsal/whipsal/internal/service"
	"github.com/whipsal/whipsal/internal/specparse"
	"github.com/whipsal/whipsal/internal/tui"
	"github.com/whipsal/whipsal/internal/workbook"
)

const usage = `usage: whipsal <command> [args]

commands:
  analyze <file.xlsx> [-save]        scan a workbook and report mappings and rules
  transform <in.xlsx> -o <out.xlsx>  rewrite a workbook into the PreSal layout
  generate <text|@file> [-patterns]  expand an order description into pattern rows
  review [-run id]                   review archived rules interactively
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "analyze":
		runAnalyze(ctx, cfg, os.Args[2:])
	case "transform":
		runTransform(ctx, cfg, os.Args[2:])
	case "generate":
		runGenerate(cfg, os.Args[2:])
	case "review":
		runReview(ctx, cfg, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func newAnalyzer(cfg config.Config) *service.AnalyzerService {
	return &service.AnalyzerService{
		Scanner:    workbook.Scanner{MaxRowsPerSheet: cfg.Analysis.MaxRowsPerSheet},
		Classifier: pattern.NewClassifier(pattern.DefaultCategories()),
		Aggregator: pattern.NewAggregator(cfg.Tuning()),
		Mapper:     &nomenclature.Mapper{ActiveFloor: cfg.Analysis.ActiveRuleFloor},
		Memo:       cache.New[string, *service.AnalysisResult](time.Duration(cfg.Analysis.CacheTTLSeconds) * time.Second),
	}
}

func openArchive(cfg config.Config) *sql.DB {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return db
}

func runAnalyze(ctx context.Context, cfg config.Config, args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	save := fs.Bool("save", false, "archive the run and its rules")
	_ = fs.Parse(args)
	if fs.NArg() < 1 {
		log.Fatalf("analyze: workbook path required")
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	wb, err := workbook.Read(data)
	if err != nil {
		log.Fatalf("decode %s: %v", path, err)
	}

	analyzer := newAnalyzer(cfg)
	res, err := analyzer.Analyze(ctx, wb)
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	fmt.Printf("sheets: %d  matches: %d  patterns: %d  errors: %d\n",
		len(wb.SheetNames), len(res.Matches), len(res.Analyses), len(res.Errors))
	for _, m := range res.Mappings {
		fmt.Printf("  %-12s -> %-20s confidence %.2f  (%d term(s))\n",
			m.Category, m.StandardTerm, m.Confidence, len(m.OriginalTerms))
	}
	for _, r := range res.Rules {
		state := "off"
		if r.IsActive {
			state = "on"
		}
		fmt.Printf("  rule p%-2d [%-3s] %-28s -> %s\n", r.Priority, state, r.Name, r.TargetColumn)
	}

	if *save {
		db := openArchive(cfg)
		defer db.Close()
		analyzer.Runs = repository.NewRunRepo(db)
		analyzer.Rules = repository.NewRuleRepo(db)
		if err := analyzer.Archive(ctx, filepath.Base(path), wb, res); err != nil {
			log.Fatalf("archive: %v", err)
		}
		fmt.Printf("archived run %s\n", res.RunID)
	}
}

func runTransform(ctx context.Context, cfg config.Config, args []string) {
	fs := flag.NewFlagSet("transform", flag.ExitOnError)
	out := fs.String("o", "", "output workbook path")
	_ = fs.Parse(args)
	if fs.NArg() < 1 || *out == "" {
		log.Fatalf("transform: usage: whipsal transform <in.xlsx> -o <out.xlsx>")
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	svc := &service.TransformService{Analyzer: newAnalyzer(cfg)}
	outBytes, res, err := svc.TransformBytes(ctx, data)
	if err != nil {
		log.Fatalf("transform: %v", err)
	}
	if err := os.WriteFile(*out, outBytes, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}
	presal := res.Sheets[0]
	fmt.Printf("wrote %s: %d PreSal row(s), %d rule(s), %d isolated error(s)\n",
		*out, len(presal.Rows), len(res.Analysis.Rules), len(res.Analysis.Errors))
}

func runGenerate(cfg config.Config, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	patterns := fs.String("patterns", "", "semicolon-delimited literal pattern rows, each optionally suffixed !<qty>")
	_ = fs.Parse(args)

	var rows []string
	if *patterns != "" {
		rows = specparse.ExpandPatterns(strings.Split(*patterns, ";"))
	} else {
		if fs.NArg() < 1 {
			log.Fatalf("generate: order text (or @file) required")
		}
		text := fs.Arg(0)
		if strings.HasPrefix(text, "@") {
			data, err := os.ReadFile(text[1:])
			if err != nil {
				log.Fatalf("read %s: %v", text[1:], err)
			}
			text = string(data)
		}
		parser := specparse.NewParser(cfg.OrderDefaults())
		rows = specparse.Generate(parser.Parse(text))
	}

	for _, row := range rows {
		fmt.Println(row)
	}
}

func runReview(ctx context.Context, cfg config.Config, args []string) {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	runID := fs.String("run", "", "run id to review (default: latest)")
	_ = fs.Parse(args)

	db := openArchive(cfg)
	defer db.Close()

	runs := repository.NewRunRepo(db)
	rules := repository.NewRuleRepo(db)

	id := *runID
	if id == "" {
		latest, err := runs.Latest(ctx)
		if err != nil {
			log.Fatalf("latest run: %v", err)
		}
		if latest == nil {
			log.Fatalf("no archived runs; run `whipsal analyze <file> -save` first")
		}
		id = latest.ID
	}

	if _, err := tea.NewProgram(tui.NewReview(ctx, rules, id), tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("review: %v", err)
	}
}
