package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jmoiron/sqlx"
	"github.com/olekukonko/tablewriter"

	"github.com/edu-priem/admissions-api/internal/ingest"
	"github.com/edu-priem/admissions-api/internal/models"
	"github.com/edu-priem/admissions-api/internal/repository"
	"github.com/edu-priem/admissions-api/internal/service"
	"github.com/edu-priem/admissions-api/pkg/config"
	"github.com/edu-priem/admissions-api/pkg/database"
)

// importctl loads applicant CSV/XLSX files or competitive-list workbooks
// straight into the configured storage backend, bypassing the HTTP API.
func main() {
	var (
		file         = flag.String("file", "", "path to the CSV or XLSX file to import")
		kind         = flag.String("type", "applicants", "what the file contains: applicants or lists")
		autoPriority = flag.Bool("auto-priority", false, "reassign applicant priorities by descending total")
		replace      = flag.Bool("replace", false, "clear the applicant pool before importing")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.Open(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	programRepo := repository.NewProgramRepository(db)
	if err := programRepo.Seed(ctx, models.DefaultPrograms()); err != nil {
		log.Fatalf("failed to seed program catalog: %v", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		color.Red("Error opening file: %v", err)
		os.Exit(1)
	}
	defer f.Close()

	switch *kind {
	case "applicants":
		importApplicants(ctx, db, f, *file, *autoPriority, *replace)
	case "lists":
		importLists(ctx, db, programRepo, f)
	default:
		color.Red("Unknown import type %q (want applicants or lists)", *kind)
		os.Exit(2)
	}
}

func importApplicants(ctx context.Context, db *sqlx.DB, f io.Reader, path string, autoPriority, replace bool) {
	var rows []models.ApplicantInput
	var warnings []string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		raw, readErr := io.ReadAll(f)
		if readErr != nil {
			color.Red("Error reading file: %v", readErr)
			os.Exit(1)
		}
		rows, warnings, err = ingest.ParseApplicantsCSV(string(raw))
	case ".xlsx":
		rows, warnings, err = ingest.ParseApplicantsWorkbook(f)
	default:
		color.Red("Unsupported file extension %q", filepath.Ext(path))
		os.Exit(2)
	}
	if err != nil {
		color.Red("Error parsing file: %v", err)
		os.Exit(1)
	}
	for _, warning := range warnings {
		color.Yellow("warning: %s", warning)
	}

	svc := service.NewApplicantService(repository.NewApplicantRepository(db), nil, nil)
	result, err := svc.BulkAdd(ctx, rows, service.BulkAddOptions{AutoPriority: autoPriority, Replace: replace})
	if err != nil {
		color.Red("Error importing applicants: %v", err)
		os.Exit(1)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Parsed", "Added", "Errors"})
	table.Append([]string{
		strconv.Itoa(len(rows)),
		strconv.Itoa(result.Added),
		strconv.Itoa(len(result.Errors)),
	})
	table.Render()
	for _, msg := range result.Errors {
		color.Red("  %s", msg)
	}
	color.Green("Import completed successfully!")
}

func importLists(ctx context.Context, db *sqlx.DB, programs *repository.ProgramRepository, f io.Reader) {
	svc := service.NewListService(repository.NewListRepository(db), programs, nil, nil)
	results, err := svc.ImportWorkbook(ctx, f)
	if err != nil {
		color.Red("Error importing lists: %v", err)
		os.Exit(1)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Program", "Date", "Deleted", "Added", "Updated", "Errors"})
	failed := 0
	for _, r := range results {
		table.Append([]string{
			r.ProgramCode,
			models.DateToken(r.ListDate),
			strconv.Itoa(r.Deleted),
			strconv.Itoa(r.Added),
			strconv.Itoa(r.Updated),
			strconv.Itoa(len(r.Errors)),
		})
		failed += len(r.Errors)
	}
	table.Render()

	for _, r := range results {
		for _, msg := range r.Errors {
			color.Red("  %s %s: %s", r.ProgramCode, models.DateToken(r.ListDate), msg)
		}
	}
	if failed > 0 {
		color.Yellow("Import finished with %d error(s)", failed)
		return
	}
	color.Green("Import completed successfully!")
}
