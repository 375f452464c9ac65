package excel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/dbtest"
	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
)

func TestColumnToLetter(t *testing.T) {
	assert.Equal(t, "A", columnToLetter(1))
	assert.Equal(t, "Z", columnToLetter(26))
	assert.Equal(t, "AA", columnToLetter(27))
	assert.Equal(t, "AZ", columnToLetter(52))
}

func TestExportIdeasAndBriefs(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	ideaRepo := repository.NewIdeaRepository(db)
	briefRepo := repository.NewBriefRepository(db)
	svc := NewExcelService(ideaRepo, briefRepo, t.TempDir())

	idea := &models.Idea{UserID: "u1", Persona: "Marketing Manager", Industry: "E-commerce", Idea: "Cart recovery", Status: models.IdeaPending}
	require.NoError(t, ideaRepo.Create(ctx, idea))
	require.NoError(t, ideaRepo.Create(ctx, &models.Idea{UserID: "u2", Persona: "p", Industry: "i", Idea: "foreign", Status: models.IdeaPending}))
	require.NoError(t, briefRepo.CreateAndMarkIdea(ctx, &models.Brief{UserID: "u1", IdeaID: &idea.ID, Persona: "Marketing Manager", Industry: "E-commerce", Idea: "Cart recovery", Brief: "Title: Win back carts"}))

	result, err := svc.ExportIdeas(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)

	f, err := excelize.OpenFile(result.FilePath)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Ideas", "D1")
	require.NoError(t, err)
	assert.Equal(t, "idea", header)
	value, err := f.GetCellValue("Ideas", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Cart recovery", value)
	used, err := f.GetCellValue("Ideas", "F2")
	require.NoError(t, err)
	assert.Equal(t, "TRUE", used)

	result, err = svc.ExportBriefs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows)

	fb, err := excelize.OpenFile(result.FilePath)
	require.NoError(t, err)
	defer fb.Close()

	brief, err := fb.GetCellValue("Briefs", "F2")
	require.NoError(t, err)
	assert.Equal(t, "Title: Win back carts", brief)
	linked, err := fb.GetCellValue("Briefs", "B2")
	require.NoError(t, err)
	assert.Equal(t, idea.ID, linked)
}

func TestExportEmpty(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewExcelService(repository.NewIdeaRepository(db), repository.NewBriefRepository(db), t.TempDir())

	result, err := svc.ExportBriefs(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Rows)

	f, err := excelize.OpenFile(result.FilePath)
	require.NoError(t, err)
	defer f.Close()
	msg, err := f.GetCellValue("Briefs", "A2")
	require.NoError(t, err)
	assert.Equal(t, "no briefs saved yet", msg)
}
