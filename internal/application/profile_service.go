package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/utilityapi-cli/internal/domain"
	"github.com/bnema/utilityapi-cli/internal/ports"
)

var ErrAccessTokenMissing = errors.New("access token is required for a new profile")

// ProfileService keeps the profile file and the token store in step.
type ProfileService struct {
	repo  ports.ProfileRepository
	store ports.SecretStore
	clock ports.Clock
}

func NewProfileService(repo ports.ProfileRepository, store ports.SecretStore, clock ports.Clock) *ProfileService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &ProfileService{
		repo:  repo,
		store: store,
		clock: clock,
	}
}

// SetProfile creates or replaces a profile. An empty token keeps the token
// already stored for an existing profile.
func (s *ProfileService) SetProfile(ctx context.Context, profile domain.Profile, token string) error {
	token = strings.TrimSpace(token)
	if profile.TokenRef == "" {
		profile.TokenRef = domain.TokenRefFor(profile.Name)
	}
	profile.UpdatedAt = s.clock.Now().UTC()
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	previous, err := s.repo.GetByName(ctx, profile.Name)
	exists := err == nil
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return fmt.Errorf("get profile by name: %w", err)
	}

	if token == "" {
		if !exists {
			return ErrAccessTokenMissing
		}
		profile.TokenRef = previous.TokenRef
		if err := s.repo.Save(ctx, profile); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
		return nil
	}

	previousToken := ""
	if exists && previous.TokenRef == profile.TokenRef {
		previousToken, err = s.store.Get(ctx, previous.TokenRef)
		if err != nil && !errors.Is(err, domain.ErrSecretNotFound) {
			return fmt.Errorf("read previous access token: %w", err)
		}
	}

	if err := s.store.Put(ctx, profile.TokenRef, token); err != nil {
		return fmt.Errorf("store access token: %w", err)
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		var rollbackErr error
		if previousToken != "" {
			rollbackErr = s.store.Put(ctx, profile.TokenRef, previousToken)
		} else {
			rollbackErr = s.store.Delete(ctx, profile.TokenRef)
		}
		if rollbackErr != nil {
			return fmt.Errorf("save profile and rollback stored token: %w", errors.Join(err, rollbackErr))
		}

		return fmt.Errorf("save profile: %w", err)
	}

	if exists && previous.TokenRef != "" && previous.TokenRef != profile.TokenRef {
		if err := s.store.Delete(ctx, previous.TokenRef); err != nil {
			return fmt.Errorf("delete previous access token: %w", err)
		}
	}

	return nil
}

func (s *ProfileService) RemoveProfile(ctx context.Context, name domain.ProfileName) error {
	profile, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("get profile by name: %w", err)
	}

	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if profile.TokenRef == "" {
		return nil
	}
	if err := s.store.Delete(ctx, profile.TokenRef); err != nil {
		if restoreErr := s.repo.Save(ctx, profile); restoreErr != nil {
			return fmt.Errorf("delete access token and restore profile: %w", errors.Join(err, restoreErr))
		}
		return fmt.Errorf("delete access token: %w", err)
	}

	return nil
}

func (s *ProfileService) Get(ctx context.Context, name domain.ProfileName) (domain.Profile, error) {
	profile, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile by name: %w", err)
	}

	return profile, nil
}

// Token reads the access token stored for profile.
func (s *ProfileService) Token(ctx context.Context, profile domain.Profile) (string, error) {
	ref := profile.TokenRef
	if ref == "" {
		ref = domain.TokenRefFor(profile.Name)
	}
	token, err := s.store.Get(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("read access token for profile %q: %w", profile.Name, err)
	}

	return token, nil
}

// Resolve returns the named profile together with its access token.
func (s *ProfileService) Resolve(ctx context.Context, name domain.ProfileName) (domain.Profile, string, error) {
	profile, err := s.Get(ctx, name)
	if err != nil {
		return domain.Profile{}, "", err
	}

	token, err := s.Token(ctx, profile)
	if err != nil {
		return domain.Profile{}, "", err
	}

	return profile, token, nil
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}
