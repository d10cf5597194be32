package craft

import (
	"regexp"
	"strings"
)

// Title heads every flattened prompt.
const Title = "# CRAFT FRAMEWORK PROMPT"

var (
	spaceRun       = regexp.MustCompile(`[ \t]+`)
	spaceBeforeDot = regexp.MustCompile(` +\.`)
	trailingSpace  = regexp.MustCompile(` +\n`)
	blankLineRun   = regexp.MustCompile(`\n{3,}`)
)

// Flatten renders a record as a Markdown prompt with one "## Name:" header
// per section in fixed order. Text between triple quotes is left untouched,
// except that a body line reading exactly like a header is escaped with a
// backslash. The result always ends with a newline.
func Flatten(r Record) string {
	var b strings.Builder
	b.WriteString(Title)
	b.WriteString("\n")

	fields := r.fields()
	for i, name := range Sections {
		b.WriteString("\n## ")
		b.WriteString(name)
		b.WriteString(":\n")
		body := Normalize(*fields[i])
		if body == "" {
			continue
		}
		for _, line := range strings.Split(body, "\n") {
			b.WriteString(escapeHeader(line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Normalize tidies a section body: runs of spaces collapse, spaces before a
// period go, doubled periods become one and three or more newlines become a
// single blank line. Quoted segments are copied verbatim.
func Normalize(s string) string {
	segments := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), quote)
	last := len(segments) - 1
	for i := range segments {
		if i%2 == 1 {
			continue
		}
		seg := tidy(segments[i])
		if i == 0 {
			seg = strings.TrimLeft(seg, " \t\n")
		}
		if i == last {
			seg = strings.TrimRight(seg, " \t\n")
		}
		segments[i] = seg
	}
	return strings.Join(segments, quote)
}

func tidy(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	s = trailingSpace.ReplaceAllString(s, "\n")
	s = spaceBeforeDot.ReplaceAllString(s, ".")
	s = collapseDoubleDots(s)
	return blankLineRun.ReplaceAllString(s, "\n\n")
}

// collapseDoubleDots turns ".." into "." but leaves ellipses alone.
func collapseDoubleDots(s string) string {
	if !strings.Contains(s, "..") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '.' {
			b.WriteByte(s[i])
			i++
			continue
		}
		j := i
		for j < len(s) && s[j] == '.' {
			j++
		}
		if j-i == 2 {
			b.WriteByte('.')
		} else {
			b.WriteString(s[i:j])
		}
		i = j
	}
	return b.String()
}
