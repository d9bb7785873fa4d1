package provider

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/kiosk404/echoweather/internal/mcpclient/service/llm/provider/spi"
)

// Registry maps a --model.provider value to the plugin that builds its chat
// model. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]spi.PluginFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]spi.PluginFactory)}
}

// Register adds a plugin under name. Names are case-insensitive and may be
// registered once.
func (r *Registry) Register(name string, factory spi.PluginFactory) error {
	key := strings.ToLower(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[key]; ok {
		return fmt.Errorf("provider %q is already registered", name)
	}
	r.factories[key] = factory
	return nil
}

// MustRegister is Register for the in-tree plugins, where a clash is a bug.
func (r *Registry) MustRegister(name string, factory spi.PluginFactory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Get returns the factory for name. The error for an unknown provider lists
// the available ones.
func (r *Registry) Get(name string) (spi.PluginFactory, error) {
	r.mu.RLock()
	factory, ok := r.factories[strings.ToLower(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown model provider %q (available: %s)", name, strings.Join(r.List(), ", "))
	}
	return factory, nil
}

// List returns the registered provider names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
