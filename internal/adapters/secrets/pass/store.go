package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/utilityapi-cli/internal/domain"
	"github.com/bnema/utilityapi-cli/internal/ports"
)

// ErrUnavailable means the pass binary is not on PATH. The chain store treats
// it like any other failure and falls back to files.
var ErrUnavailable = errors.New("pass is not installed")

// missingEntry is what pass prints on stderr for an unknown entry.
const missingEntry = "is not in the password store"

type runner func(ctx context.Context, stdin string, args ...string) (stdout string, stderr string, err error)

// Store keeps access tokens as pass(1) entries named after their token
// reference.
type Store struct {
	run runner
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: execPass}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, stderr, err := s.run(ctx, strings.TrimSpace(value)+"\n", "insert", "--multiline", "--force", key); err != nil {
		return commandError("insert", key, err, stderr)
	}
	return nil
}

// Get reads the first line only; lines below it are free-form notes.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", key)
	if err != nil {
		if strings.Contains(stderr, missingEntry) {
			return "", fmt.Errorf("pass show %s: %w", key, domain.ErrSecretNotFound)
		}
		return "", commandError("show", key, err, stderr)
	}

	token, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSpace(token), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "--force", key)
	if err != nil && !strings.Contains(stderr, missingEntry) {
		return commandError("rm", key, err, stderr)
	}
	return nil
}

func execPass(ctx context.Context, stdin string, args ...string) (string, string, error) {
	bin, err := exec.LookPath("pass")
	if errors.Is(err, exec.ErrNotFound) {
		return "", "", ErrUnavailable
	}
	if err != nil {
		return "", "", fmt.Errorf("look up pass: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func commandError(subcommand string, key string, err error, stderr string) error {
	if stderr != "" {
		return fmt.Errorf("pass %s %s: %w (%s)", subcommand, key, err, stderr)
	}
	return fmt.Errorf("pass %s %s: %w", subcommand, key, err)
}
