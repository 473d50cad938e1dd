// Package origin classifies a content-credentials manifest store by AI
// provenance.
//
// Classify walks the ingredient graph from the active manifest and reduces it
// to one of four classifications. When the graph shows that a trained model
// created the content, the manifest carrying that evidence is attributed to a
// generator via ExtractGenerator. NormalizeVendor and FormatLabel turn the
// result into display strings.
//
// Classification never fails: missing, dangling and cyclic references all
// degrade to Unknown for the affected subtree.
package origin
