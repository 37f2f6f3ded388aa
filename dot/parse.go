// Package dot reads the line-oriented DOT dialect emitted by model checkers
// for state-space graphs and turns it into ssg records.
//
// Recognised lines:
//
//	<id> [label="<state>"];
//	<src> -> <dst> [label="<transition>(<p1>,<p2>)"];
//
// Everything else (digraph header, closing brace, attribute statements) is
// skipped.
package dot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/ssgpath/ssg"
)

const (
	edgeToken  = "->"
	labelToken = "label="
	quote      = '"'
)

// ErrSyntax is returned for a node or edge line that cannot be decoded.
var ErrSyntax = errors.New("dot: syntax error")

// Records is the decoded content of a DOT file, in declaration order.
type Records struct {
	Nodes []ssg.NodeRecord
	Edges []ssg.EdgeRecord
}

// Parse decodes r line by line.
func Parse(r io.Reader) (*Records, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	recs := &Records{}
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		switch {
		case isEdgeLine(text):
			e, err := parseEdge(text)
			if err != nil {
				return nil, fmt.Errorf("%w at line %d: %v", ErrSyntax, line, err)
			}
			recs.Edges = append(recs.Edges, e)
		case isNodeLine(text):
			n, err := parseNode(text)
			if err != nil {
				return nil, fmt.Errorf("%w at line %d: %v", ErrSyntax, line, err)
			}
			recs.Nodes = append(recs.Nodes, n)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dot: read: %w", err)
	}

	return recs, nil
}

// Load parses r and builds a sealed graph from it.
func Load(r io.Reader, opts ...ssg.Option) (*ssg.Graph, error) {
	recs, err := Parse(r)
	if err != nil {
		return nil, err
	}

	return ssg.FromRecords(recs.Nodes, recs.Edges, opts...)
}

// LoadFile opens path and calls Load.
func LoadFile(path string, opts ...ssg.Option) (*ssg.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dot: %w", err)
	}
	defer f.Close()

	return Load(f, opts...)
}

// isEdgeLine looks for the arrow before any attribute list so state labels
// containing "->" are not mistaken for edges.
func isEdgeLine(s string) bool {
	head, _, _ := strings.Cut(s, "[")
	return strings.Contains(head, edgeToken) && !strings.HasPrefix(s, "//")
}

func isNodeLine(s string) bool {
	return strings.Contains(s, labelToken) && !strings.HasPrefix(s, "//") &&
		!strings.HasPrefix(s, "graph") && !strings.HasPrefix(s, "node") && !strings.HasPrefix(s, "edge")
}

func parseNode(s string) (ssg.NodeRecord, error) {
	id, err := leadingID(s)
	if err != nil {
		return ssg.NodeRecord{}, err
	}

	return ssg.NodeRecord{ID: id, Label: label(s)}, nil
}

func parseEdge(s string) (ssg.EdgeRecord, error) {
	head, _, _ := strings.Cut(s, "[")
	lhs, rhs, _ := strings.Cut(head, edgeToken)
	src, err := leadingID(lhs)
	if err != nil {
		return ssg.EdgeRecord{}, err
	}
	dst, err := leadingID(rhs)
	if err != nil {
		return ssg.EdgeRecord{}, err
	}
	name, params := SplitTransition(label(s))

	return ssg.EdgeRecord{Src: src, Dst: dst, Label: name, Params: params}, nil
}

// leadingID decodes the first token of s as a signed 64-bit id, optionally quoted.
func leadingID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	end := strings.IndexAny(s, " \t[;")
	if end >= 0 {
		s = s[:end]
	}
	s = strings.Trim(s, `"`)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad id %q", s)
	}

	return id, nil
}

// label extracts the quoted value after label=. Missing labels yield "".
func label(s string) string {
	i := strings.Index(s, labelToken)
	if i < 0 {
		return ""
	}
	rest := s[i+len(labelToken):]
	if len(rest) == 0 || rest[0] != quote {
		end := strings.IndexAny(rest, ",] ;")
		if end < 0 {
			return rest
		}
		return rest[:end]
	}
	rest = rest[1:]
	var b strings.Builder
	for j := 0; j < len(rest); j++ {
		c := rest[j]
		if c == '\\' && j+1 < len(rest) && rest[j+1] == quote {
			b.WriteByte(quote)
			j++
			continue
		}
		if c == quote {
			break
		}
		b.WriteByte(c)
	}

	return b.String()
}

// SplitTransition separates "op(a, b)" into "op" and ["a", "b"]. Commas nested
// in parentheses or brackets stay inside their parameter.
func SplitTransition(s string) (string, []string) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return s, nil
	}
	name := strings.TrimSpace(s[:open])
	body := s[open+1 : len(s)-1]
	if strings.TrimSpace(body) == "" {
		return name, nil
	}

	var params []string
	depth, start := 0, 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				params = append(params, strings.TrimSpace(body[start:i]))
				start = i + 1
			}
		}
	}
	params = append(params, strings.TrimSpace(body[start:]))

	return name, params
}
