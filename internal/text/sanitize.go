package text

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// ASCII control characters except tab, LF and CR.
	controlCharsRegex = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)

	multipleNewlinesRegex = regexp.MustCompile(`\n{3,}`)

	blankRunRegex = regexp.MustCompile(`[ \t]{2,}|\t`)

	// A "Bot:" label the model sometimes copies from the transcript it was given.
	rolePrefixRegex = regexp.MustCompile(`^\s*(?i:bot|assistant)\s*:\s*`)

	unicodeReplacer = strings.NewReplacer(
		// invisible format characters
		"\u2060", "",
		"\uFEFF", "",
		"\u00AD", "",
		"\u200E", "",
		"\u200F", "",
		"\u2061", "",
		"\u2062", "",
		"\u2063", "",
		"\u2064", "",

		// separators and exotic spaces
		"\u2028", "\n",
		"\u2029", "\n\n",
		"\u200B", " ",
		"\u200C", " ",
		"\u205F", " ",
		"\u2009", " ",
		"\u200A", " ",
		"\u202F", " ",
		"\u3000", " ",
		"\u00A0", " ",
	)
)

// Sanitize normalizes generated text before it is stored and sent: it drops
// an echoed role label, unifies line endings, removes invisible and control
// characters, collapses runs of blanks between words and limits blank lines
// to one. Indentation is kept, and lines inside ``` fences are left as they
// are apart from trailing blanks. The result is trimmed and may be empty.
func Sanitize(s string) string {
	s = rolePrefixRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = unicodeReplacer.Replace(s)
	s = controlCharsRegex.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	fenced := false
	for i, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			fenced = !fenced
		} else if !fenced {
			line = collapseBlanks(line)
		}
		lines[i] = line
	}
	s = strings.Join(lines, "\n")
	s = multipleNewlinesRegex.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// collapseBlanks keeps the leading indentation of line and turns every run
// of blanks after it into one space.
func collapseBlanks(line string) string {
	body := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(body)]
	return indent + blankRunRegex.ReplaceAllString(body, " ")
}
