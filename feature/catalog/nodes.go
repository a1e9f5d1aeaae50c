package catalog

import (
	"errors"
	"fmt"
	"strings"

	"release-sync/core/reconcile"
	"release-sync/core/utils"

	"github.com/goccy/go-yaml/ast"
)

// parseCycle reads one entry of the releases sequence.
func parseCycle(node ast.Node) (reconcile.CycleRecord, error) {
	var cycle reconcile.CycleRecord

	fields, ok := mappingValues(node)
	if !ok {
		return cycle, errors.New("not a mapping")
	}

	for _, mv := range fields {
		key := keyText(mv)
		switch key {
		case fieldReleaseCycle:
			text, ok := scalarText(mv.Value)
			if !ok || text == "" {
				return cycle, errors.New("empty releaseCycle")
			}
			cycle.Name = text

		case fieldLatest:
			text, _ := scalarText(mv.Value)
			cycle.Latest = text

		case fieldReleaseDate, fieldLatestReleaseDate:
			text, ok := scalarText(mv.Value)
			if !ok || text == "" {
				continue
			}
			d, err := utils.ToDate(text)
			if err != nil {
				return cycle, fmt.Errorf("%s: %w", key, err)
			}
			if key == fieldReleaseDate {
				cycle.ReleaseDate = d
			} else {
				cycle.LatestReleaseDate = d
			}
		}
	}

	if cycle.Name == "" {
		return cycle, errors.New("missing releaseCycle")
	}
	return cycle, nil
}

// set replaces the value of key in the cycle mapping at index, or appends
// "key: text" to the mapping when the key is absent. text is YAML source.
func (r *Record) set(index int, key, text string) error {
	item := r.releases.Values[index]
	fields, ok := mappingValues(item)
	if !ok || len(fields) == 0 {
		return fmt.Errorf("release %d of %s is not a mapping", index, r.Name)
	}
	if m, ok := item.(*ast.MappingNode); ok && m.IsFlowStyle {
		return fmt.Errorf("release %d of %s uses flow style", index, r.Name)
	}

	for _, mv := range fields {
		if keyText(mv) == key {
			return r.replace(index, mv, text)
		}
	}

	indent := fields[0].Key.GetToken().Position.Column - 1
	r.edits.insert(fmt.Sprintf("%d/%s", index, key), lastLine(item), strings.Repeat(" ", indent)+key+": "+text)
	return nil
}

// replace rewrites the value of mv on its key line, keeping a trailing comment.
func (r *Record) replace(index int, mv *ast.MappingValueNode, text string) error {
	key := keyText(mv)
	pos := mv.Key.GetToken().Position
	line, ok := lineAt(r.front, pos.Line)
	if !ok {
		return fmt.Errorf("release %d of %s: %s is out of range", index, r.Name, key)
	}
	if _, null := mv.Value.(*ast.NullNode); !null && mv.Value != nil {
		if tk := mv.Value.GetToken(); tk != nil && tk.Position.Line != pos.Line {
			return fmt.Errorf("release %d of %s: %s value must be on the key line", index, r.Name, key)
		}
	}

	keyStart := pos.Column - 1
	if keyStart < 0 || keyStart > len(line) {
		return fmt.Errorf("release %d of %s: cannot locate %s", index, r.Name, key)
	}
	colon := strings.IndexByte(line[keyStart:], ':')
	if colon < 0 {
		return fmt.Errorf("release %d of %s: cannot locate %s", index, r.Name, key)
	}
	colon += keyStart

	start := colon + 1
	for start < len(line) && (line[start] == ' ' || line[start] == '\t') {
		start++
	}
	end := valueEnd(line, start)

	if start == colon+1 {
		text = " " + text
	}
	if end == start && end < len(line) {
		text += " "
	}
	r.edits.replace(pos.Line, start, end, text)
	return nil
}

// valueEnd returns the end of the scalar starting at start, before any
// trailing comment and whitespace.
func valueEnd(line string, start int) int {
	end := len(line)
	if start < len(line) && (line[start] == '"' || line[start] == '\'') {
		quote := line[start]
		for i := start + 1; i < len(line); i++ {
			if quote == '"' && line[i] == '\\' {
				i++
				continue
			}
			if line[i] == quote {
				return i + 1
			}
		}
	} else {
		for i := start + 1; i < len(line); i++ {
			if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
				end = i
				break
			}
		}
		if start < len(line) && line[start] == '#' {
			end = start
		}
	}
	return max(start, len(strings.TrimRight(line[:end], " \t\r")))
}

// lastLine returns the last source line occupied by node.
func lastLine(node ast.Node) int {
	switch n := node.(type) {
	case nil:
		return 0
	case *ast.MappingNode:
		last := tokenLine(n)
		for _, v := range n.Values {
			last = max(last, lastLine(v))
		}
		return last
	case *ast.MappingValueNode:
		return max(lastLine(n.Key), lastLine(n.Value))
	case *ast.SequenceNode:
		last := tokenLine(n)
		for _, v := range n.Values {
			last = max(last, lastLine(v))
		}
		return last
	case *ast.TagNode:
		return max(tokenLine(n), lastLine(n.Value))
	case *ast.AnchorNode:
		return max(tokenLine(n), lastLine(n.Value))
	case *ast.LiteralNode:
		if n.Value == nil {
			return tokenLine(n)
		}
		content := strings.TrimRight(n.Value.Value, "\n")
		return tokenLine(n) + strings.Count(content, "\n") + 1
	}
	return tokenLine(node)
}

func tokenLine(node ast.Node) int {
	if node == nil {
		return 0
	}
	tk := node.GetToken()
	if tk == nil || tk.Position == nil {
		return 0
	}
	return tk.Position.Line
}

func mappingValues(node ast.Node) ([]*ast.MappingValueNode, bool) {
	switch n := node.(type) {
	case *ast.MappingNode:
		return n.Values, true
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{n}, true
	default:
		return nil, false
	}
}

func keyText(mv *ast.MappingValueNode) string {
	if mv.Key == nil || mv.Key.GetToken() == nil {
		return ""
	}
	return mv.Key.GetToken().Value
}

// scalarText returns the source text of a scalar, without quotes.
// Null and collection nodes have no text.
func scalarText(node ast.Node) (string, bool) {
	switch n := node.(type) {
	case nil, *ast.NullNode:
		return "", false
	case *ast.TagNode:
		return scalarText(n.Value)
	case *ast.AnchorNode:
		return scalarText(n.Value)
	case *ast.LiteralNode:
		return n.Value.Value, true
	case *ast.MappingNode, *ast.MappingValueNode, *ast.SequenceNode, *ast.AliasNode:
		return "", false
	}

	tk := node.GetToken()
	if tk == nil {
		return "", false
	}
	return tk.Value, true
}
