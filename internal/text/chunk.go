// Package text provides outbound message formatting: appending the reply
// disclaimer and splitting long replies into platform-sized chunks.
package text

import "unicode/utf8"

// DefaultChunkSize is the per-message character limit used when none is configured.
const DefaultChunkSize = 2000

// FormatReply appends the disclaimer to a generated reply.
func FormatReply(reply, disclaimer string) string {
	return reply + disclaimer
}

// Chunk splits s into consecutive slices of at most limit characters.
// Characters are Unicode code points, so a multi-byte character is never cut
// in half. Concatenating the result reproduces s exactly; for a message of
// L characters the result has ceil(L/limit) elements. An empty string yields
// no chunks.
func Chunk(s string, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkSize
	}
	if s == "" {
		return nil
	}

	n := utf8.RuneCountInString(s)
	if n <= limit {
		return []string{s}
	}

	chunks := make([]string, 0, (n+limit-1)/limit)
	start, count := 0, 0
	for i := range s {
		if count == limit {
			chunks = append(chunks, s[start:i])
			start, count = i, 0
		}
		count++
	}

	return append(chunks, s[start:])
}
