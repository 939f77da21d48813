package tokenizer

import (
	"strings"

	"github.com/BaSui01/tokencount/types"
)

// Registry is the static table of model profiles. It is populated once
// at process start and read-only afterwards.
type Registry struct {
	profiles map[string]types.ModelProfile
	order    []string
}

// NewRegistry creates a registry from the given profiles, preserving
// their order for enumeration. A duplicate name replaces the earlier
// profile in place.
func NewRegistry(profiles ...types.ModelProfile) *Registry {
	r := &Registry{profiles: make(map[string]types.ModelProfile, len(profiles))}
	for _, p := range profiles {
		r.add(p)
	}
	return r
}

func (r *Registry) add(p types.ModelProfile) {
	if _, exists := r.profiles[p.Name]; !exists {
		r.order = append(r.order, p.Name)
	}
	r.profiles[p.Name] = p
}

// Lookup returns the profile for name, trying an exact match first and
// then a prefix match (so "gpt-4-turbo" resolves to the "gpt-4" profile).
func (r *Registry) Lookup(name string) (types.ModelProfile, bool) {
	if p, ok := r.profiles[name]; ok {
		return p, true
	}
	for _, key := range r.order {
		if strings.HasPrefix(name, key) {
			return r.profiles[key], true
		}
	}
	return types.ModelProfile{}, false
}

// Profiles returns all profiles in registration order.
func (r *Registry) Profiles() []types.ModelProfile {
	out := make([]types.ModelProfile, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.profiles[name])
	}
	return out
}

// Names returns all model names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// DefaultProfiles returns the built-in model table. The claude vocabulary
// locator is empty here; configuration supplies the file path.
func DefaultProfiles() []types.ModelProfile {
	return []types.ModelProfile{
		{Name: "claude", DisplayName: "Claude", Backend: types.BackendExactTrie},
		{Name: "openai", DisplayName: "OpenAI o200k", Backend: types.BackendExternalVocab, Locator: "o200k_base"},
		{Name: "gpt-4", DisplayName: "GPT-4", Backend: types.BackendExternalVocab, Locator: "cl100k_base"},
		{Name: "gemini", DisplayName: "Gemini", Backend: types.BackendHeuristicOnly},
		{Name: "deepseek", DisplayName: "DeepSeek", Backend: types.BackendHeuristicOnly},
		{Name: "qwen", DisplayName: "Qwen", Backend: types.BackendHeuristicOnly},
		{Name: "llama", DisplayName: "Llama", Backend: types.BackendHeuristicOnly},
		{Name: "mistral", DisplayName: "Mistral", Backend: types.BackendHeuristicOnly},
		{Name: "grok", DisplayName: "Grok", Backend: types.BackendHeuristicOnly},
		{Name: "minimax", DisplayName: "MiniMax", Backend: types.BackendHeuristicOnly},
	}
}

// DefaultRegistry returns a registry over DefaultProfiles.
func DefaultRegistry() *Registry {
	return NewRegistry(DefaultProfiles()...)
}
