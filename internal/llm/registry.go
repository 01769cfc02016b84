package llm

import "fmt"

// ProviderFactory builds the question generator/evaluator backend.
// Driver packages register one from init; the PROVIDER setting picks
// it at startup.
type ProviderFactory func() (Provider, error)

var providers = make(map[string]ProviderFactory)

// RegisterProvider makes a backend available under name. Called from
// driver init functions, before main runs.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider constructs the configured backend. A name no driver
// registered is a configuration error, not a runtime fallback.
func NewProvider(name string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
	return factory()
}
