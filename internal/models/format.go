package models

import "strings"

// Format wraps prompt in the model's prefix and suffix. Unknown models
// return prompt unchanged. Format is not idempotent; callers that may see
// already wrapped text should use FormatOnce.
func Format(prompt, id string) string {
	w := WrapFor(id)
	return w.Prefix + prompt + w.Suffix
}

// IsFormatted reports whether prompt already carries the model's wrap.
// It is always false for models without one.
func IsFormatted(prompt, id string) bool {
	w := WrapFor(id)
	if w.Empty() {
		return false
	}
	return len(prompt) >= len(w.Prefix)+len(w.Suffix) &&
		strings.HasPrefix(prompt, w.Prefix) &&
		strings.HasSuffix(prompt, w.Suffix)
}

// FormatOnce applies Format unless prompt is already wrapped.
func FormatOnce(prompt, id string) string {
	if IsFormatted(prompt, id) {
		return prompt
	}
	return Format(prompt, id)
}

// Unformat strips the model's wrap if present.
func Unformat(prompt, id string) string {
	if !IsFormatted(prompt, id) {
		return prompt
	}
	w := WrapFor(id)
	return prompt[len(w.Prefix) : len(prompt)-len(w.Suffix)]
}
