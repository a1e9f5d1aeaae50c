package catalog

import (
	"bytes"
	"strings"
)

// lineEdit replaces line[start:end] with text, the line taken without its
// line ending.
type lineEdit struct {
	start, end int
	text       string
}

type insertion struct {
	after int
	text  string
}

// edits collects changes against the original frontmatter lines. Lines are
// numbered from 1, as in parser positions.
type edits struct {
	replaced map[int]lineEdit
	inserted map[string]*insertion
	order    []string
}

func newEdits() *edits {
	return &edits{
		replaced: make(map[int]lineEdit),
		inserted: make(map[string]*insertion),
	}
}

func (e *edits) replace(line, start, end int, text string) {
	e.replaced[line] = lineEdit{start: start, end: end, text: text}
}

// insert adds text as a new line after line. A second insert under the same
// id replaces the first.
func (e *edits) insert(id string, after int, text string) {
	if ins, ok := e.inserted[id]; ok {
		ins.text = text
		return
	}
	e.inserted[id] = &insertion{after: after, text: text}
	e.order = append(e.order, id)
}

// apply returns front with every edit applied. Untouched lines are copied
// byte for byte.
func (e *edits) apply(front []byte) []byte {
	if len(e.replaced) == 0 && len(e.order) == 0 {
		return front
	}

	lines := splitLines(front)
	after := make(map[int][]string)
	for _, id := range e.order {
		ins := e.inserted[id]
		n := min(max(ins.after, 0), len(lines))
		after[n] = append(after[n], ins.text)
	}

	var buf bytes.Buffer
	for _, text := range after[0] {
		buf.WriteString(text + "\n")
	}
	for i, line := range lines {
		n := i + 1
		content, eol := cutEOL(line)
		if ed, ok := e.replaced[n]; ok && ed.start <= ed.end && ed.end <= len(content) {
			content = content[:ed.start] + ed.text + content[ed.end:]
		}
		buf.WriteString(content)
		extra := after[n]
		if eol == "" && len(extra) > 0 {
			eol = "\n"
		}
		buf.WriteString(eol)
		for _, text := range extra {
			buf.WriteString(text + eol)
		}
	}
	return buf.Bytes()
}

// lineAt returns line n of data without its line ending.
func lineAt(data []byte, n int) (string, bool) {
	lines := splitLines(data)
	if n < 1 || n > len(lines) {
		return "", false
	}
	content, _ := cutEOL(lines[n-1])
	return content, true
}

// splitLines splits data after every '\n', keeping the line endings.
func splitLines(data []byte) []string {
	var lines []string
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, string(data))
			break
		}
		lines = append(lines, string(data[:i+1]))
		data = data[i+1:]
	}
	return lines
}

func cutEOL(line string) (content, eol string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
