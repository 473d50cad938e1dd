package origin

import (
	"strings"

	"xdao.co/aiorigin/manifest"
)

// Classification is the AI-origin verdict for a manifest store.
type Classification string

const (
	AIGenerated Classification = "ai-generated"
	AIAssisted  Classification = "ai-assisted"
	NonAI       Classification = "non-ai"
	Unknown     Classification = "unknown"
)

// Result is the outcome of classifying a store.
// Generator is set only when Classification is AIGenerated.
type Result struct {
	Classification Classification
	AIGenerated    bool
	Generator      *Generator
}

// Classify classifies store starting at its active manifest.
//
// Each call owns its traversal state, so concurrent calls are safe.
func Classify(store *manifest.Store) Result {
	w := &walker{store: store, visited: make(map[string]struct{})}
	var activeID string
	if store != nil {
		activeID = store.ActiveManifest
	}
	v := w.classify(activeID)
	return Result{
		Classification: v.class,
		AIGenerated:    v.class == AIGenerated,
		Generator:      v.generator,
	}
}

type verdict struct {
	class     Classification
	generator *Generator
}

type walker struct {
	store   *manifest.Store
	visited map[string]struct{}
}

func (w *walker) classify(id string) verdict {
	if id == "" {
		return verdict{class: Unknown}
	}
	if _, seen := w.visited[id]; seen {
		return verdict{class: Unknown}
	}
	w.visited[id] = struct{}{}

	m, ok := w.store.Lookup(id)
	if !ok {
		return verdict{class: Unknown}
	}

	sawAIEdit := false
	for _, a := range actionsOf(m) {
		if a.DigitalSourceType != manifest.TrainedAlgorithmicMedia {
			continue
		}
		switch actionName(a.Action) {
		case "created":
			g := ExtractGenerator(m, id)
			return verdict{class: AIGenerated, generator: &g}
		case "edited":
			sawAIEdit = true
		}
	}

	for _, ing := range m.Ingredients {
		v := w.classify(ing.ActiveManifest)
		switch v.class {
		case AIGenerated:
			return v
		case AIAssisted:
			sawAIEdit = true
		}
	}

	if sawAIEdit {
		return verdict{class: AIAssisted}
	}
	return verdict{class: NonAI}
}

// actionsOf returns the actions of every actions-v2 assertion, in order.
func actionsOf(m *manifest.Manifest) []manifest.Action {
	var out []manifest.Action
	for _, a := range m.Assertions {
		switch a := a.(type) {
		case manifest.ActionsV2:
			out = append(out, a.Actions...)
		case manifest.Other:
		}
	}
	return out
}

// actionName strips the c2pa namespace so "c2pa.created" and "created" compare equal.
func actionName(s string) string {
	return strings.TrimPrefix(s, "c2pa.")
}
