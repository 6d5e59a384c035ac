package ai

import "context"

// TextGenerator is the boundary to the external AI text-generation
// collaborator: one opaque prompt in, one opaque response out. The core
// treats failures as terminal for the attempt; callers re-invoke manually.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Healthy(ctx context.Context) bool
}
