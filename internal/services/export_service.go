package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/grindboard/practice-service/internal/models"
)

const (
	attemptsSheet  = "Attempts"
	topicsSheet    = "Topics"
	exportPageSize = 500
)

var (
	attemptsHeader = []interface{}{"Date", "Question", "Link", "Difficulty", "Topics", "Companies", "Result", "Time Spent (min)", "Notes"}
	topicsHeader   = []interface{}{"Topic", "Sessions", "Solved", "Solve Rate (%)", "Avg Time (min)"}
)

type exportService struct {
	attempts AttemptService
	stats    StatsService
	logger   *slog.Logger
}

func NewExportService(attempts AttemptService, stats StatsService, logger *slog.Logger) ExportService {
	return &exportService{
		attempts: attempts,
		stats:    stats,
		logger:   logger,
	}
}

// WriteWorkbook writes an xlsx with an Attempts sheet and a Topics sheet.
// Page and page size in query are ignored: every matching attempt is exported.
func (s *exportService) WriteWorkbook(ctx context.Context, w io.Writer, query ListQuery) error {
	s.logger.Info("Exporting attempts workbook")

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attemptsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(topicsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	rows, err := s.writeAttempts(ctx, f, query)
	if err != nil {
		return err
	}

	stats, err := s.stats.Global(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stats for export: %w", err)
	}
	if err := writeTopics(f, stats.ByTopic); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Attempts workbook exported", "rows", rows, "topics", len(stats.ByTopic))
	return nil
}

func (s *exportService) writeAttempts(ctx context.Context, f *excelize.File, query ListQuery) (int, error) {
	if err := setRow(f, attemptsSheet, 1, attemptsHeader); err != nil {
		return 0, err
	}

	query.PageSize = strconv.Itoa(exportPageSize)
	row := 2
	for page := 1; ; page++ {
		query.Page = strconv.Itoa(page)
		result, err := s.attempts.List(ctx, query)
		if err != nil {
			return 0, err
		}
		for _, a := range result.Data {
			if err := setRow(f, attemptsSheet, row, attemptRow(a)); err != nil {
				return 0, err
			}
			row++
		}
		if page >= result.TotalPages {
			break
		}
	}

	return row - 2, nil
}

func attemptRow(a models.EnrichedAttempt) []interface{} {
	title, link, difficulty, topics, companies := "(unknown question)", "", "", "", ""
	if a.Question != nil {
		title = a.Question.Title
		link = a.Question.Link
		difficulty = string(a.Question.Difficulty)
		topics = strings.Join(a.Question.Topic, ", ")
		companies = strings.Join(a.Question.Company, ", ")
	}
	return []interface{}{
		a.Date.Format("2006-01-02 15:04"),
		title,
		link,
		difficulty,
		topics,
		companies,
		string(a.Result),
		a.TimeSpent,
		a.Notes,
	}
}

func writeTopics(f *excelize.File, topics []models.TopicStats) error {
	if err := setRow(f, topicsSheet, 1, topicsHeader); err != nil {
		return err
	}
	for i, t := range topics {
		values := []interface{}{t.Topic, t.Total, t.Solved, t.SolveRate, t.AvgTime}
		if err := setRow(f, topicsSheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("invalid cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
