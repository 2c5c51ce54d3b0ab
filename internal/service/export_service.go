package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/edu-priem/admissions-api/internal/models"
	appErrors "github.com/edu-priem/admissions-api/pkg/errors"
	"github.com/edu-priem/admissions-api/pkg/export"
)

type exportApplicantReader interface {
	List(ctx context.Context) ([]models.Applicant, error)
}

type exportAdmissionReader interface {
	PassingScores(ctx context.Context, listDate string) ([]models.PassingScore, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type xlsxRenderer interface {
	Render(sheets []export.Sheet) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders applicant pools, competitive lists and passing
// scores into downloadable files.
type ExportService struct {
	applicants exportApplicantReader
	lists      listReader
	admission  exportAdmissionReader
	csv        csvRenderer
	xlsx       xlsxRenderer
	pdf        pdfRenderer
	logger     *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(applicants exportApplicantReader, lists listReader, admission exportAdmissionReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		applicants: applicants,
		lists:      lists,
		admission:  admission,
		csv:        export.NewCSVExporter(),
		xlsx:       export.NewXLSXExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

var applicantHeaders = []string{"ФИО", "Математика", "Русский язык", "Информатика", "Сумма", "Приоритет", "Согласие", "Направление"}

// ApplicantsCSV renders the applicant pool.
func (s *ExportService) ApplicantsCSV(ctx context.Context) (*ExportFile, error) {
	applicants, err := s.applicants.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicants")
	}

	rows := make([]map[string]string, 0, len(applicants))
	for _, a := range applicants {
		rows = append(rows, map[string]string{
			"ФИО":          a.FullName,
			"Математика":   strconv.Itoa(a.MathScore),
			"Русский язык": strconv.Itoa(a.RussianScore),
			"Информатика":  strconv.Itoa(a.InformaticsScore),
			"Сумма":        strconv.Itoa(a.TotalScore),
			"Приоритет":    strconv.Itoa(a.Priority),
			"Согласие":     yesNo(a.Consent),
			"Направление":  a.Program,
		})
	}
	payload, err := s.csv.Render(export.Dataset{Headers: applicantHeaders, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render applicants csv")
	}
	return &ExportFile{
		Filename:    exportFilename("applicants", "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        payload,
	}, nil
}

var listHeaders = []string{"ID", "ФИО", "Согласие", "Приоритет", "Физика/ИКТ", "Русский язык", "Математика", "Достижения", "Сумма"}

// ListsCSV renders entries of one or all slices as a flat table.
func (s *ExportService) ListsCSV(ctx context.Context, programCode, listDate string) (*ExportFile, error) {
	entries, err := s.lists.List(ctx, programCode, listDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load list entries")
	}
	sortListEntries(entries)

	headers := append([]string{"ОП", "Дата"}, listHeaders...)
	rows := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		row := listEntryRow(e)
		row["ОП"] = e.ProgramCode
		row["Дата"] = models.DateToken(e.ListDate)
		rows = append(rows, row)
	}
	payload, err := s.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render lists csv")
	}
	return &ExportFile{
		Filename:    exportFilename("lists", "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        payload,
	}, nil
}

// ListsXLSX renders every populated slice as a workbook, one sheet per
// (program, date) named the same way uploads name them.
func (s *ExportService) ListsXLSX(ctx context.Context) (*ExportFile, error) {
	entries, err := s.lists.List(ctx, "", "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load list entries")
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoData, "no list entries to export")
	}

	type sliceKey struct {
		code string
		date string
	}
	grouped := make(map[sliceKey][]models.ListEntry)
	order := make([]sliceKey, 0)
	for _, e := range entries {
		key := sliceKey{code: e.ProgramCode, date: e.ListDate}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], e)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].date != order[j].date {
			return order[i].date < order[j].date
		}
		return order[i].code < order[j].code
	})

	sheets := make([]export.Sheet, 0, len(order))
	for _, key := range order {
		slice := grouped[key]
		sortListEntries(slice)
		rows := make([]map[string]string, 0, len(slice))
		for _, e := range slice {
			rows = append(rows, listEntryRow(e))
		}
		sheets = append(sheets, export.Sheet{
			Name: fmt.Sprintf("%s_%s", key.code, models.DateToken(key.date)),
			Data: export.Dataset{Headers: listHeaders, Rows: rows},
		})
	}

	payload, err := s.xlsx.Render(sheets)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render lists workbook")
	}
	return &ExportFile{
		Filename:    exportFilename("lists", "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        payload,
	}, nil
}

var passingHeaders = []string{"Код", "Направление", "Бюджетных мест", "Зачислено", "Проходной балл"}

// PassingScoresCSV renders the cutoff table for one date.
func (s *ExportService) PassingScoresCSV(ctx context.Context, listDate string) (*ExportFile, error) {
	dataset, err := s.passingDataset(ctx, listDate)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(*dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render passing scores csv")
	}
	return &ExportFile{
		Filename:    exportFilename("passing_scores", "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        payload,
	}, nil
}

// PassingScoresPDF renders the cutoff table for one date as a printable
// document.
func (s *ExportService) PassingScoresPDF(ctx context.Context, listDate string) (*ExportFile, error) {
	dataset, err := s.passingDataset(ctx, listDate)
	if err != nil {
		return nil, err
	}
	title := "Проходные баллы"
	if listDate != "" {
		title = fmt.Sprintf("Проходные баллы %s", models.DateToken(listDate))
	}
	payload, err := s.pdf.Render(*dataset, title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render passing scores pdf")
	}
	return &ExportFile{
		Filename:    exportFilename("passing_scores", "pdf"),
		ContentType: "application/pdf",
		Data:        payload,
	}, nil
}

func (s *ExportService) passingDataset(ctx context.Context, listDate string) (*export.Dataset, error) {
	scores, err := s.admission.PassingScores(ctx, listDate)
	if err != nil {
		return nil, err
	}
	rows := make([]map[string]string, 0, len(scores))
	for _, score := range scores {
		rows = append(rows, map[string]string{
			"Код":            score.ProgramCode,
			"Направление":    score.ProgramName,
			"Бюджетных мест": strconv.Itoa(score.BudgetPlaces),
			"Зачислено":      strconv.Itoa(score.EnrolledCount),
			"Проходной балл": score.Display(),
		})
	}
	return &export.Dataset{Headers: passingHeaders, Rows: rows}, nil
}

func listEntryRow(e models.ListEntry) map[string]string {
	name := ""
	if e.FullName != nil {
		name = *e.FullName
	}
	return map[string]string{
		"ID":           strconv.FormatInt(e.ApplicantID, 10),
		"ФИО":          name,
		"Согласие":     yesNo(e.Consent),
		"Приоритет":    strconv.Itoa(e.Priority),
		"Физика/ИКТ":   strconv.Itoa(e.PhysicsICTScore),
		"Русский язык": strconv.Itoa(e.RussianScore),
		"Математика":   strconv.Itoa(e.MathScore),
		"Достижения":   strconv.Itoa(e.AchievementsScore),
		"Сумма":        strconv.Itoa(e.TotalScore),
	}
}

func sortListEntries(entries []models.ListEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority < entries[j].Priority
		}
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].ApplicantID < entries[j].ApplicantID
	})
}

func yesNo(v bool) string {
	if v {
		return "Да"
	}
	return "Нет"
}

func exportFilename(base, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, time.Now().UTC().Format("20060102_150405"), ext)
}
