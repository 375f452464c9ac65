package excel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Service exports saved ideas and briefs to xlsx workbooks
type Service struct {
	ideaRepo   *repository.IdeaRepository
	briefRepo  *repository.BriefRepository
	exportsDir string
	now        func() time.Time
}

// NewExcelService creates a new Excel service instance
func NewExcelService(ideaRepo *repository.IdeaRepository, briefRepo *repository.BriefRepository, exportsDir string) *Service {
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		if err := os.MkdirAll(exportsDir, 0755); err != nil {
			logrus.Warnf("Failed to create exports directory %s: %v", exportsDir, err)
		}
	}

	return &Service{
		ideaRepo:   ideaRepo,
		briefRepo:  briefRepo,
		exportsDir: exportsDir,
		now:        time.Now,
	}
}

// ExportResult contains the result of an export operation
type ExportResult struct {
	Message  string
	Filename string
	FilePath string
	Rows     int
}

type column struct {
	name  string
	width float64
}

// ExportIdeas writes the user's saved ideas to a workbook
func (s *Service) ExportIdeas(ctx context.Context, userID string) (*ExportResult, error) {
	ideas, err := s.ideaRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ideas: %w", err)
	}

	columns := []column{
		{"id", 15}, {"persona", 25}, {"industry", 25}, {"idea", 60},
		{"status", 15}, {"is_used", 10}, {"created_at", 20},
	}
	rows := make([][]interface{}, len(ideas))
	for i, idea := range ideas {
		rows[i] = []interface{}{
			idea.ID, idea.Persona, idea.Industry, idea.Idea,
			idea.Status, idea.IsUsed, idea.CreatedAt.Format(time.RFC3339),
		}
	}

	return s.write("Ideas", "ideas", userID, columns, rows, "no ideas saved yet")
}

// ExportBriefs writes the user's saved briefs to a workbook
func (s *Service) ExportBriefs(ctx context.Context, userID string) (*ExportResult, error) {
	briefs, err := s.briefRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get briefs: %w", err)
	}

	columns := []column{
		{"id", 15}, {"idea_id", 15}, {"persona", 25}, {"industry", 25},
		{"idea", 40}, {"brief", 80}, {"created_at", 20},
	}
	rows := make([][]interface{}, len(briefs))
	for i, brief := range briefs {
		ideaID := ""
		if brief.IdeaID != nil {
			ideaID = *brief.IdeaID
		}
		rows[i] = []interface{}{
			brief.ID, ideaID, brief.Persona, brief.Industry,
			brief.Idea, brief.Brief, brief.CreatedAt.Format(time.RFC3339),
		}
	}

	return s.write("Briefs", "briefs", userID, columns, rows, "no briefs saved yet")
}

func (s *Service) write(sheet, prefix, userID string, columns []column, rows [][]interface{}, emptyMessage string) (*ExportResult, error) {
	filename := fmt.Sprintf("%s_%s_%d.xlsx", prefix, userID, s.now().UnixNano())
	filePath := filepath.Join(s.exportsDir, filename)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	f.SetActiveSheet(0)

	for i, col := range columns {
		f.SetCellValue(sheet, fmt.Sprintf("%s1", columnToLetter(i+1)), col.name)
		letter := columnToLetter(i + 1)
		f.SetColWidth(sheet, letter, letter, col.width)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFFF00"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", columnToLetter(len(columns))+strconv.Itoa(1), headerStyle)
	}

	wrapStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})

	if len(rows) == 0 {
		f.SetCellValue(sheet, "A2", emptyMessage)
	}
	for j, row := range rows {
		rowNum := j + 2
		for i, value := range row {
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", columnToLetter(i+1), rowNum), value)
		}
		if wrapStyle != 0 {
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", columnToLetter(len(columns)), rowNum), wrapStyle)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return nil, fmt.Errorf("failed to save Excel file: %w", err)
	}

	return &ExportResult{
		Message:  fmt.Sprintf("Successfully exported %d %s", len(rows), prefix),
		Filename: filename,
		FilePath: filePath,
		Rows:     len(rows),
	}, nil
}

// columnToLetter converts a 1-based column number to its Excel letter
func columnToLetter(col int) string {
	var result string
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
