package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/utilityapi-cli/internal/domain"
	"github.com/bnema/utilityapi-cli/internal/ports"
)

const (
	ProfilesPathKey = "profiles.path"

	profilesFileMode   = 0o600
	profilesDirMode    = 0o700
	profilesConfigDir  = ".config/uapi"
	profilesConfigFile = "profiles.toml"
	tempFilePattern    = ".profiles-*.toml.tmp"
)

type ProfileRepository struct {
	profilesPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ProfileRepository = (*ProfileRepository)(nil)

// NewProfileRepository resolves the profiles file from cfg, falling back to
// $HOME/.config/uapi/profiles.toml.
func NewProfileRepository(cfg *viper.Viper) (*ProfileRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(ProfilesPathKey, filepath.Join(homeDir, profilesConfigDir, profilesConfigFile))

	profilesPath := cfg.GetString(ProfilesPathKey)
	if profilesPath == "" {
		return nil, errors.New("profiles path is empty")
	}
	profilesPath, err = normalizePath(profilesPath)
	if err != nil {
		return nil, err
	}

	return &ProfileRepository{profilesPath: profilesPath, mu: lockForPath(profilesPath)}, nil
}

func (r *ProfileRepository) Path() string {
	return r.profilesPath
}

func (r *ProfileRepository) Save(ctx context.Context, profile domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(profile)
	updated := false
	for i := range file.Profiles {
		if file.Profiles[i].Name == encoded.Name {
			file.Profiles[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Profiles = append(file.Profiles, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *ProfileRepository) Delete(ctx context.Context, name domain.ProfileName) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Profiles[:0]
	found := false
	for _, entry := range file.Profiles {
		if entry.Name == string(name) {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return domain.ErrProfileNotFound
	}
	file.Profiles = kept

	return r.writeSchema(file)
}

func (r *ProfileRepository) GetByName(ctx context.Context, name domain.ProfileName) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Profile{}, err
	}

	for _, entry := range file.Profiles {
		if entry.Name == string(name) {
			return fromSchema(entry), nil
		}
	}

	return domain.Profile{}, domain.ErrProfileNotFound
}

// List returns profiles sorted by name.
func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.Profile, 0, len(file.Profiles))
	for _, entry := range file.Profiles {
		profiles = append(profiles, fromSchema(entry))
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })

	return profiles, nil
}

func (r *ProfileRepository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.profilesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read profiles file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode profiles file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *ProfileRepository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.profilesPath), profilesDirMode); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode profiles file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.profilesPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp profiles file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp profiles file: %w", err)
	}
	if err := tempFile.Chmod(profilesFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp profiles file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp profiles file: %w", err)
	}
	if err := os.Rename(tempName, r.profilesPath); err != nil {
		return fmt.Errorf("replace profiles file: %w", err)
	}
	cleanup = false

	if err := os.Chmod(r.profilesPath, profilesFileMode); err != nil {
		return fmt.Errorf("chmod profiles file: %w", err)
	}

	return nil
}

func normalizePath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve profiles path: %w", err)
	}
	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(profile domain.Profile) profileSchema {
	entry := profileSchema{
		Name:      string(profile.Name),
		BaseURL:   profile.BaseURL,
		TokenRef:  profile.TokenRef,
		UpdatedAt: formatTime(profile.UpdatedAt),
	}
	if profile.PollDelay > 0 {
		entry.PollDelay = profile.PollDelay.String()
	}
	return entry
}

func fromSchema(entry profileSchema) domain.Profile {
	profile := domain.Profile{
		Name:      domain.ProfileName(entry.Name),
		BaseURL:   entry.BaseURL,
		TokenRef:  entry.TokenRef,
		UpdatedAt: parseTime(entry.UpdatedAt),
	}
	if profile.TokenRef == "" {
		profile.TokenRef = domain.TokenRefFor(profile.Name)
	}
	if delay, err := time.ParseDuration(entry.PollDelay); err == nil && delay > 0 {
		profile.PollDelay = delay
	}
	return profile
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
