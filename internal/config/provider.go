package config

import (
	"fmt"

	"github.com/footprint-tools/keel/internal/domain"
)

// Provider wraps configuration operations and implements domain.ConfigProvider.
type Provider struct{}

// NewProvider creates a new configuration provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Get returns the value for a configuration key.
func (p *Provider) Get(key string) (string, bool) {
	return Get(key)
}

// GetAll returns all configuration values.
func (p *Provider) GetAll() (map[string]string, error) {
	return GetAll()
}

// Set validates and persists a configuration value.
func (p *Provider) Set(key, value string) error {
	if err := domain.CheckConfigValue(key, value); err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}

	return WithLock(func() error {
		lines, err := ReadLines()
		if err != nil {
			return err
		}

		lines, _ = Set(lines, key, value)
		return WriteLines(lines)
	})
}

// Unset removes a configuration value so the default applies again.
func (p *Provider) Unset(key string) error {
	return WithLock(func() error {
		lines, err := ReadLines()
		if err != nil {
			return err
		}

		lines, _ = Unset(lines, key)
		return WriteLines(lines)
	})
}

// MemoryProvider is an in-memory domain.ConfigProvider layered over Defaults.
type MemoryProvider struct {
	values map[string]string
}

// NewMemoryProvider returns a provider holding the given overrides.
func NewMemoryProvider(values map[string]string) *MemoryProvider {
	m := &MemoryProvider{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MemoryProvider) Get(key string) (string, bool) {
	if v, ok := m.values[key]; ok {
		return v, true
	}
	if fn, ok := Defaults[key]; ok {
		return fn(), true
	}
	return "", false
}

func (m *MemoryProvider) GetAll() (map[string]string, error) {
	out := make(map[string]string, len(Defaults)+len(m.values))
	for k, fn := range Defaults {
		out[k] = fn()
	}
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryProvider) Set(key, value string) error {
	if err := domain.CheckConfigValue(key, value); err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	m.values[key] = value
	return nil
}

func (m *MemoryProvider) Unset(key string) error {
	delete(m.values, key)
	return nil
}

var (
	_ domain.ConfigProvider = (*Provider)(nil)
	_ domain.ConfigProvider = (*MemoryProvider)(nil)
)
