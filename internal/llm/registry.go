package llm

import (
	"fmt"
	"sort"
)

// ProviderFactory builds a configured provider instance.
type ProviderFactory func() (Provider, error)

var providers = make(map[string]ProviderFactory)

// RegisterProvider makes a provider available by name. Providers register
// themselves from an init function and are selected via AI_PROVIDER.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider instantiates the named provider.
func NewProvider(name string) (Provider, error) {
	factory, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unsupported provider %q (registered: %v)", name, Registered())
	}
	return factory()
}

// Registered lists the registered provider names in stable order.
func Registered() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
