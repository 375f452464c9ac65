package credential

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/onegreenvn/content-multiplier-backend/internal/models"
)

// ErrNoCredential is returned when a user has no eligible credential
var ErrNoCredential = errors.New("no eligible credential")

// NoCredentialError names the providers the user could add a key for
type NoCredentialError struct {
	Providers []string
}

func (e *NoCredentialError) Error() string {
	return "No active API key found. Please add an API key from supported providers: " + strings.Join(e.Providers, ", ")
}

func (e *NoCredentialError) Is(target error) bool {
	return target == ErrNoCredential
}

// EligibleLister loads the eligible credentials of a user
type EligibleLister interface {
	ListEligible(ctx context.Context, userID string, providers []string) ([]models.Credential, error)
}

// Selector picks one credential per generation request
type Selector struct {
	store EligibleLister
}

// NewSelector creates a Selector over a credential store
func NewSelector(store EligibleLister) *Selector {
	return &Selector{store: store}
}

// Select returns the top-ranked eligible credential of the user for the
// given providers, or a *NoCredentialError.
func (s *Selector) Select(ctx context.Context, userID string, providers []string) (*models.Credential, error) {
	eligible, err := s.store.ListEligible(ctx, userID, providers)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	chosen := Rank(eligible)
	if chosen == nil {
		return nil, &NoCredentialError{Providers: append([]string(nil), providers...)}
	}
	return chosen, nil
}

// Rank orders candidates by health (success, then untested or NULL, then
// anything else), then by lowest usage count, then by id, and returns the
// first. The input slice is not modified.
func Rank(candidates []models.Credential) *models.Credential {
	if len(candidates) == 0 {
		return nil
	}

	sorted := make([]models.Credential, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		if ha, hb := healthRank(a), healthRank(b); ha != hb {
			return ha < hb
		}
		if a.UsageCount != b.UsageCount {
			return a.UsageCount < b.UsageCount
		}
		return a.ID < b.ID
	})

	chosen := sorted[0]
	return &chosen
}

func healthRank(c *models.Credential) int {
	switch c.Health() {
	case models.ConnectionSuccess:
		return 0
	case models.ConnectionUntested:
		return 1
	default:
		return 2
	}
}
