// Package generation turns a persona and industry into content ideas or a
// brief using one of the caller's stored provider keys.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/credential"
	"github.com/onegreenvn/content-multiplier-backend/internal/services/provider"
	"github.com/onegreenvn/content-multiplier-backend/internal/utils"
)

// CredentialSelector picks the credential for a request
type CredentialSelector interface {
	Select(ctx context.Context, userID string, providers []string) (*models.Credential, error)
}

// Dispatcher sends a prompt to the provider of a credential
type Dispatcher interface {
	Generate(ctx context.Context, prompt string, cred *models.Credential, opts provider.Options) (string, error)
}

// UsageStore records one successful use of a credential and returns the new count
type UsageStore interface {
	IncrementUsage(ctx context.Context, id string, at time.Time) (int64, error)
}

// ActivityRecorder receives generation log entries
type ActivityRecorder interface {
	Record(ctx context.Context, entry *models.GenerationLog)
}

// CallCounter counts successful generation calls per user
type CallCounter interface {
	IncrementAPICalls(ctx context.Context, userID string) error
}

// IdeasResult is the outcome of GenerateIdeas
type IdeasResult struct {
	Ideas    []string
	Persona  string
	Industry string
	Usage    models.CredentialUsage
}

// BriefResult is the outcome of GenerateBrief
type BriefResult struct {
	Brief    string
	Persona  string
	Industry string
	Idea     string
	Usage    models.CredentialUsage
}

// Service orchestrates credential selection, dispatch and usage accounting
type Service struct {
	selector   CredentialSelector
	dispatcher Dispatcher
	usage      UsageStore
	recorder   ActivityRecorder
	calls      CallCounter
	now        func() time.Time
}

// NewService creates a generation service. recorder and calls may be nil.
func NewService(selector CredentialSelector, dispatcher Dispatcher, usage UsageStore, recorder ActivityRecorder, calls CallCounter) *Service {
	return &Service{
		selector:   selector,
		dispatcher: dispatcher,
		usage:      usage,
		recorder:   recorder,
		calls:      calls,
		now:        time.Now,
	}
}

// GenerateIdeas returns exactly ten ideas for the persona and industry
func (s *Service) GenerateIdeas(ctx context.Context, userID, persona, industry string) (*IdeasResult, error) {
	if strings.TrimSpace(persona) == "" || strings.TrimSpace(industry) == "" {
		return nil, utils.NewValidationError("Persona and industry are required")
	}

	meta := map[string]interface{}{"persona": persona, "industry": industry}
	raw, usage, err := s.run(ctx, userID, IdeasCapability, IdeasPrompt(persona, industry), meta)
	if err != nil {
		return nil, err
	}

	return &IdeasResult{
		Ideas:    ParseIdeas(raw, persona, industry),
		Persona:  persona,
		Industry: industry,
		Usage:    usage,
	}, nil
}

// GenerateBrief returns a free-text brief developing one idea
func (s *Service) GenerateBrief(ctx context.Context, userID, persona, industry, idea string) (*BriefResult, error) {
	if strings.TrimSpace(persona) == "" || strings.TrimSpace(industry) == "" || strings.TrimSpace(idea) == "" {
		return nil, utils.NewValidationError("Persona, industry, and idea are required")
	}

	meta := map[string]interface{}{"persona": persona, "industry": industry, "idea": idea}
	raw, usage, err := s.run(ctx, userID, BriefCapability, BriefPrompt(persona, industry, idea), meta)
	if err != nil {
		return nil, err
	}

	return &BriefResult{
		Brief:    ParseBrief(raw),
		Persona:  persona,
		Industry: industry,
		Idea:     idea,
		Usage:    usage,
	}, nil
}

// run selects a credential, dispatches the prompt once and, only when the
// whole call succeeded, bumps the credential's usage counter.
func (s *Service) run(
	ctx context.Context,
	userID string,
	capability Capability,
	prompt string,
	meta map[string]interface{},
) (string, models.CredentialUsage, error) {
	chosen, err := s.selector.Select(ctx, userID, capability.Providers)
	if err != nil {
		s.record(ctx, userID, capability, nil, models.StageFailed, err.Error(), withKind(meta, err))
		return "", models.CredentialUsage{}, err
	}

	s.record(ctx, userID, capability, chosen, models.StageStarted,
		fmt.Sprintf("Generating %s with %s", capability.Name, chosen.Provider), meta)

	raw, err := s.dispatcher.Generate(ctx, prompt, chosen, capability.Options)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":       userID,
			"capability":    capability.Name,
			"provider":      chosen.Provider,
			"credential_id": chosen.ID,
		}).Warnf("Generation failed: %v", err)
		s.record(ctx, userID, capability, chosen, models.StageFailed, err.Error(), withKind(meta, err))
		return "", models.CredentialUsage{}, err
	}

	count, err := s.usage.IncrementUsage(ctx, chosen.ID, s.now())
	if err != nil {
		err = fmt.Errorf("failed to record API key usage: %w", err)
		s.record(ctx, userID, capability, chosen, models.StageFailed, err.Error(), withKind(meta, err))
		return "", models.CredentialUsage{}, err
	}

	if s.calls != nil {
		if err := s.calls.IncrementAPICalls(ctx, userID); err != nil {
			logrus.Warnf("Failed to count API call for user %s: %v", userID, err)
		}
	}

	done := make(map[string]interface{}, len(meta)+1)
	for k, v := range meta {
		done[k] = v
	}
	done["usage_count"] = count
	s.record(ctx, userID, capability, chosen, models.StageCompleted,
		fmt.Sprintf("Generated %s with %s", capability.Name, chosen.Provider), done)

	return raw, models.CredentialUsage{
		ID:         chosen.ID,
		Provider:   chosen.Provider,
		UsageCount: count,
	}, nil
}

func (s *Service) record(
	ctx context.Context,
	userID string,
	capability Capability,
	cred *models.Credential,
	stage string,
	message string,
	meta map[string]interface{},
) {
	if s.recorder == nil {
		return
	}

	entry := &models.GenerationLog{
		UserID:     userID,
		Capability: capability.Name,
		Stage:      stage,
		Status:     stageStatus(stage),
		Message:    message,
		Metadata:   datatypes.JSONMap(meta),
	}
	if cred != nil {
		entry.CredentialID = cred.ID
		entry.Provider = cred.Provider
	}
	s.recorder.Record(ctx, entry)
}

func stageStatus(stage string) string {
	switch stage {
	case models.StageCompleted:
		return models.LogSuccess
	case models.StageFailed:
		return models.LogError
	default:
		return models.LogInfo
	}
}

func withKind(meta map[string]interface{}, err error) map[string]interface{} {
	out := make(map[string]interface{}, len(meta)+1)
	for k, v := range meta {
		out[k] = v
	}
	out["error_kind"] = ErrorKind(err)
	return out
}

// Error kinds reported to callers
const (
	KindValidation          = "validation"
	KindNoCredential        = "no-credential"
	KindProviderRejected    = "provider-rejected"
	KindNetwork             = "network"
	KindEmptyGeneration     = "empty-generation"
	KindUnsupportedProvider = "unsupported-provider"
	KindInternal            = "internal"
)

// ErrorKind classifies a generation error
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, utils.ErrValidation):
		return KindValidation
	case errors.Is(err, credential.ErrNoCredential):
		return KindNoCredential
	case errors.Is(err, provider.ErrProviderRejected):
		return KindProviderRejected
	case errors.Is(err, provider.ErrNetwork):
		return KindNetwork
	case errors.Is(err, provider.ErrEmptyGeneration):
		return KindEmptyGeneration
	case errors.Is(err, provider.ErrUnsupportedProvider):
		return KindUnsupportedProvider
	default:
		return KindInternal
	}
}
