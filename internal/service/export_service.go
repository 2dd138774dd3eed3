package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-vote-api/internal/models"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
	"github.com/noah-isme/sma-vote-api/pkg/export"
)

// Export kinds and formats accepted by ExportService.
const (
	ExportCodes   = "codes"
	ExportResults = "results"
	FormatCSV     = "csv"
	FormatPDF     = "pdf"
)

// resultColumns fixes the leading column order of the results sheet; other view columns follow alphabetically.
var resultColumns = []string{"name", "party", "votes", "percentage"}

type exportStudentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
}

type exportResultsRepository interface {
	ElectionResults(ctx context.Context) ([]models.ViewRow, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders printable code sheets and result tallies.
type ExportService struct {
	students exportStudentRepository
	results  exportResultsRepository
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs ExportService. Nil renderers default to the pkg/export implementations.
func NewExportService(students exportStudentRepository, results exportResultsRepository, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{students: students, results: results, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// Export builds the dataset for kind and renders it in format.
func (s *ExportService) Export(ctx context.Context, kind, format string) (*ExportFile, error) {
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid format: use csv or pdf")
	}

	var (
		data export.Dataset
		err  error
	)
	switch kind {
	case ExportCodes:
		data, err = s.codesDataset(ctx)
	case ExportResults:
		data, err = s.resultsDataset(ctx)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid type: use codes or results")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load export data")
	}

	var (
		rendered    []byte
		contentType string
	)
	if format == FormatPDF {
		rendered, err = s.pdf.Render(data)
		contentType = "application/pdf"
	} else {
		rendered, err = s.csv.Render(data)
		contentType = "text/csv"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("export rendered", zap.String("type", kind), zap.String("format", format), zap.Int("rows", len(data.Rows)))
	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", kind, s.now().Format("20060102-150405"), format),
		ContentType: contentType,
		Data:        rendered,
	}, nil
}

func (s *ExportService) codesDataset(ctx context.Context) (export.Dataset, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	data := export.Dataset{
		Title:    "Access codes",
		Subtitle: fmt.Sprintf("%d students", len(students)),
		Headers:  []string{"Grade", "Course", "List", "Name", "Code"},
		Rows:     make([][]string, 0, len(students)),
	}
	for _, st := range students {
		data.Rows = append(data.Rows, []string{
			strconv.Itoa(st.Grade),
			strconv.Itoa(st.Course),
			strconv.Itoa(st.ListNumber),
			st.FullName,
			st.AccessCode,
		})
	}
	return data, nil
}

func (s *ExportService) resultsDataset(ctx context.Context) (export.Dataset, error) {
	rows, err := s.results.ElectionResults(ctx)
	if err != nil {
		return export.Dataset{}, err
	}
	headers := resultHeaders(rows)
	data := export.Dataset{
		Title:    "Election results",
		Subtitle: "Generated " + s.now().Format("2006-01-02 15:04"),
		Headers:  headers,
		Rows:     make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		line := make([]string, len(headers))
		for i, col := range headers {
			line[i] = row.Text(col)
		}
		data.Rows = append(data.Rows, line)
	}
	return data, nil
}

func resultHeaders(rows []models.ViewRow) []string {
	present := make(map[string]struct{})
	for _, row := range rows {
		for col := range row {
			present[col] = struct{}{}
		}
	}
	if len(present) == 0 {
		return append([]string(nil), resultColumns...)
	}
	headers := make([]string, 0, len(present))
	for _, col := range resultColumns {
		if _, ok := present[col]; ok {
			headers = append(headers, col)
			delete(present, col)
		}
	}
	rest := make([]string, 0, len(present))
	for col := range present {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	return append(headers, rest...)
}
