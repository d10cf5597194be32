package craft

import "strings"

// ExtractSections parses a prompt produced by Flatten (or written by hand,
// or returned by a model) back into a record.
//
// Headers may be written as "Context:", "## Context:" or "**Context:**",
// optionally followed by text on the same line. Blank lines and other
// Markdown headings are skipped. A line with an odd number of triple quotes
// opens a quoted block that is kept verbatim, blank lines included, until
// the closing delimiter. Inside a quoted block only "#" headers are
// recognised; they close the block. An unterminated block is still kept.
//
// A prompt that starts with Title is read as Flatten output: only the exact
// "## Name:" lines are headers, every other line (including "#" lines and
// "Tone: ..." text) belongs to the current section, and escaped header
// lines lose their backslash.
func ExtractSections(prompt string) Record {
	prompt = strings.ReplaceAll(prompt, "\r\n", "\n")
	strict := strings.HasPrefix(strings.TrimSpace(prompt), Title)

	var (
		parts   [6][]string
		current = -1
		quoted  []string
		inQuote bool
	)

	flush := func() {
		if inQuote && current >= 0 && len(quoted) > 0 {
			parts[current] = append(parts[current], strings.Join(quoted, "\n"))
		}
		quoted = nil
		inQuote = false
	}

	header := parseHeader
	if strict {
		header = func(line string, _ bool) (int, string, bool) {
			idx, ok := flatHeader(line)
			return idx, "", ok
		}
	}

	for _, line := range strings.Split(prompt, "\n") {
		if idx, rest, ok := header(line, inQuote); ok {
			flush()
			current = idx
			if rest == "" {
				continue
			}
			line = rest
		}

		if strict {
			line = unescapeHeader(line)
		}
		if inQuote {
			quoted = append(quoted, line)
			if strings.Count(line, quote)%2 == 1 {
				flush()
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || current < 0 || (!strict && strings.HasPrefix(trimmed, "#")) {
			continue
		}
		if strings.Count(line, quote)%2 == 1 {
			inQuote = true
			quoted = []string{trimmed}
			continue
		}
		parts[current] = append(parts[current], trimmed)
	}
	flush()

	var r Record
	for i, f := range r.fields() {
		*f = strings.Join(parts[i], "\n")
	}
	return r
}

func parseHeader(line string, inQuote bool) (int, string, bool) {
	s := strings.TrimSpace(line)
	if inQuote && !strings.HasPrefix(s, "#") {
		return 0, "", false
	}
	s = strings.TrimLeft(s, "#* ")
	for i, name := range Sections {
		if len(s) <= len(name) || s[len(name)] != ':' || !strings.EqualFold(s[:len(name)], name) {
			continue
		}
		rest := strings.TrimLeft(s[len(name)+1:], "*")
		return i, strings.TrimSpace(rest), true
	}
	return 0, "", false
}

// flatHeader matches the header lines Flatten writes.
func flatHeader(line string) (int, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "## ") || !strings.HasSuffix(s, ":") {
		return 0, false
	}
	for i, name := range Sections {
		if s == "## "+name+":" {
			return i, true
		}
	}
	return 0, false
}

// escapeHeader prefixes a backslash to a line that would otherwise read as
// a Flatten header. Lines already escaped get one more, so unescapeHeader
// restores them exactly. Leading whitespace is kept.
func escapeHeader(line string) string {
	body := strings.TrimLeft(line, " \t")
	if _, ok := flatHeader(strings.TrimLeft(body, `\`)); ok {
		return line[:len(line)-len(body)] + `\` + body
	}
	return line
}

func unescapeHeader(line string) string {
	body := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(body, `\`) {
		return line
	}
	if _, ok := flatHeader(strings.TrimLeft(body, `\`)); ok {
		return line[:len(line)-len(body)] + body[1:]
	}
	return line
}
