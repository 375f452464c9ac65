package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onegreenvn/content-multiplier-backend/internal/database/dbtest"
	"github.com/onegreenvn/content-multiplier-backend/internal/database/repository"
	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"
)

func strPtr(s string) *string { return &s }

func TestBuildUserUpdates(t *testing.T) {
	check := true
	tests := []struct {
		name    string
		req     models.UpdateUserRequest
		want    map[string]interface{}
		wantErr string
	}{
		{"role", models.UpdateUserRequest{Role: strPtr("Clerk")}, map[string]interface{}{"role": "clerk"}, ""},
		{"bad role", models.UpdateUserRequest{Role: strPtr("root")}, nil, "Invalid role"},
		{"status", models.UpdateUserRequest{AccountStatus: strPtr("inactive")}, map[string]interface{}{"account_status": "inactive"}, ""},
		{"bad status", models.UpdateUserRequest{AccountStatus: strPtr("banned")}, nil, "Invalid account status"},
		{"binding", models.UpdateUserRequest{IPAddress: strPtr("10.0.0.1"), CheckIPMAC: &check}, map[string]interface{}{"ip_address": "10.0.0.1", "check_ip_mac": true}, ""},
		{"empty", models.UpdateUserRequest{}, nil, "No fields to update"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildUserUpdates(&tt.req)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, utils.ErrValidation))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserServiceAdminFlow(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	userRepo := repository.NewUserRepository(db)
	svc := NewUserService(userRepo, repository.NewLoginHistoryRepository(db))

	admin := &models.User{Email: "admin@example.com", PasswordHash: "x", Role: models.RoleAdmin, Status: models.UserOffline, AccountStatus: models.AccountActive}
	target := &models.User{Email: "writer@example.com", PasswordHash: "x", Role: models.RoleUser, Status: models.UserOffline, AccountStatus: models.AccountActive}
	require.NoError(t, userRepo.Create(ctx, admin))
	require.NoError(t, userRepo.Create(ctx, target))

	users, page, err := svc.GetAllUsers(ctx, 1, 10, "writer")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(1), page.Total)

	updated, err := svc.UpdateUser(ctx, target.ID, &models.UpdateUserRequest{Role: strPtr("controller"), FullName: strPtr("Writer One")})
	require.NoError(t, err)
	assert.Equal(t, models.RoleController, updated.Role)
	assert.Equal(t, "Writer One", updated.FullName)

	_, err = svc.UpdateUser(ctx, "missing", &models.UpdateUserRequest{FullName: strPtr("x")})
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	err = svc.DeleteUser(ctx, admin.ID, admin.ID)
	require.Error(t, err)
	assert.Equal(t, "Cannot delete your own account", err.Error())

	require.NoError(t, svc.DeleteUser(ctx, target.ID, admin.ID))
	_, err = svc.GetUser(ctx, target.ID)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestIdeaAndBriefServices(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	ideas := NewIdeaService(repository.NewIdeaRepository(db))
	briefs := NewBriefService(repository.NewBriefRepository(db))

	_, err := ideas.SaveIdea(ctx, "u1", &models.SaveIdeaRequest{Persona: "Marketing Manager"})
	require.Error(t, err)
	assert.Equal(t, "Persona, industry, and idea are required", err.Error())

	idea, err := ideas.SaveIdea(ctx, "u1", &models.SaveIdeaRequest{Persona: "Marketing Manager", Industry: "E-commerce", Idea: "Cart recovery"})
	require.NoError(t, err)
	assert.Equal(t, "Idea for Marketing Manager", idea.Title)
	assert.Equal(t, "Cart recovery", idea.Description)
	assert.Equal(t, models.IdeaPending, idea.Status)

	_, err = briefs.SaveBrief(ctx, "u1", &models.SaveBriefRequest{Persona: "p", Industry: "i", Idea: "x"})
	require.Error(t, err)
	assert.Equal(t, "Persona, industry, idea, and brief are required", err.Error())

	brief, err := briefs.SaveBrief(ctx, "u1", &models.SaveBriefRequest{Persona: "Marketing Manager", Industry: "E-commerce", Idea: "Cart recovery", Brief: "Body", IdeaID: &idea.ID})
	require.NoError(t, err)
	require.NotNil(t, brief.IdeaID)

	saved, err := ideas.ListIdeas(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.True(t, saved[0].IsUsed)

	list, err := briefs.ListBriefs(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	assert.True(t, errors.Is(ideas.DeleteIdea(ctx, idea.ID, "u2"), utils.ErrNotFound))
	require.NoError(t, ideas.DeleteIdea(ctx, idea.ID, "u1"))
}
