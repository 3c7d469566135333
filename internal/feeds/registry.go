package feeds

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Aguus467/angulismotv/internal/pkg/config"
)

type Factory func(cfg *config.Config) Source

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, f Factory) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		panic("feeds: empty name in Register")
	}
	if f == nil {
		panic("feeds: nil factory in Register for " + n)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[n]; exists {
		panic("feeds: duplicate registration for " + n)
	}
	registry[n] = f
}

func FactoryByName(name string) (Factory, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[n]
	return f, ok
}

func AvailableNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Enabled instantiates the sources named in cfg.Feeds.EnabledSources.
// Unknown names are an error so a typo in config does not silently drop a
// feed.
func Enabled(cfg *config.Config) ([]Source, error) {
	names := cfg.Feeds.EnabledSources
	out := make([]Source, 0, len(names))
	for _, name := range names {
		f, ok := FactoryByName(name)
		if !ok {
			return nil, fmt.Errorf("feeds: unknown source %q (available: %v)", name, AvailableNames())
		}
		out = append(out, f(cfg))
	}
	return out, nil
}
