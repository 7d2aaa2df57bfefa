package secret

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for secret resolution.
var (
	ErrUnknownProvider = errors.New("secret: provider not registered")
	ErrNotFound        = errors.New("secret: not found")
	ErrEmpty           = errors.New("secret: resolved to an empty value")
	ErrInvalidRef      = errors.New("secret: invalid reference")
)

// Provider resolves secrets by reference.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: a missing secret wraps ErrNotFound. Errors must not include
// the secret value.
type Provider interface {
	// Name is the provider segment of a secretref.
	Name() string

	// Resolve returns the secret stored under ref.
	Resolve(ctx context.Context, ref string) (string, error)
}

// EnvProvider resolves refs as environment variable names.
type EnvProvider struct {
	lookup func(string) (string, bool)
}

// NewEnvProvider creates a provider over the process environment.
func NewEnvProvider() *EnvProvider {
	return &EnvProvider{lookup: os.LookupEnv}
}

// Name returns "env".
func (p *EnvProvider) Name() string { return "env" }

// Resolve returns the value of the environment variable ref.
func (p *EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	v, ok := p.lookup(ref)
	if !ok {
		return "", fmt.Errorf("%w: env %s", ErrNotFound, ref)
	}
	return v, nil
}

// FileProvider resolves refs as file paths. Trailing newlines are trimmed
// so files written by editors resolve cleanly.
type FileProvider struct {
	dir string
}

// NewFileProvider creates a file provider. With a dir, refs are names
// inside it and may not escape it. Without one, refs are paths.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// Name returns "file".
func (p *FileProvider) Name() string { return "file" }

// Resolve reads the file ref.
func (p *FileProvider) Resolve(_ context.Context, ref string) (string, error) {
	path := filepath.Clean(ref)
	if p.dir != "" {
		if !filepath.IsLocal(ref) {
			return "", fmt.Errorf("%w: file %q escapes the secrets directory", ErrInvalidRef, ref)
		}
		path = filepath.Join(p.dir, ref)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: file %s", ErrNotFound, ref)
	}
	if err != nil {
		return "", fmt.Errorf("secret: read %s: %w", ref, err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// Ensure providers implement Provider
var (
	_ Provider = (*EnvProvider)(nil)
	_ Provider = (*FileProvider)(nil)
)
