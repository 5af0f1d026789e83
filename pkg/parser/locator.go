package parser

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

// SourcePosition is a 1-based line/column in a YAML document
type SourcePosition struct {
	Line   int
	Column int
}

// LocateConfigPath finds where the value at an instance location is written.
// Object members resolve to the position of their key. When property is set
// it names a key inside the located mapping (additionalProperties errors).
func LocateConfigPath(content []byte, location []string, property string) (SourcePosition, bool) {
	file, err := parser.ParseBytes(content, 0)
	if err != nil || file == nil || len(file.Docs) == 0 {
		return SourcePosition{}, false
	}

	var node ast.Node = file.Docs[0].Body
	var tok *token.Token
	if node != nil {
		tok = node.GetToken()
	}

	segments := location
	if property != "" {
		segments = append(append([]string(nil), location...), property)
	}

	for _, segment := range segments {
		next, keyTok, err := step(node, segment)
		if err != nil {
			break
		}
		node, tok = next, keyTok
	}

	if tok == nil || tok.Position == nil {
		return SourcePosition{}, false
	}
	return SourcePosition{Line: tok.Position.Line, Column: tok.Position.Column}, true
}

// step descends one path segment, returning the child node and the token
// that best marks it in the source
func step(node ast.Node, segment string) (ast.Node, *token.Token, error) {
	switch n := node.(type) {
	case *ast.DocumentNode:
		return step(n.Body, segment)
	case *ast.AnchorNode:
		return step(n.Value, segment)
	case *ast.MappingNode:
		for _, value := range n.Values {
			if next, tok, err := step(value, segment); err == nil {
				return next, tok, nil
			}
		}
		return nil, nil, fmt.Errorf("key '%s' not found in mapping", segment)
	case *ast.MappingValueNode:
		if n.Key != nil && n.Key.GetToken() != nil && n.Key.GetToken().Value == segment {
			return n.Value, n.Key.GetToken(), nil
		}
		return nil, nil, fmt.Errorf("key '%s' not found", segment)
	case *ast.SequenceNode:
		index, err := strconv.Atoi(segment)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid array index '%s'", segment)
		}
		if index < 0 || index >= len(n.Values) {
			return nil, nil, fmt.Errorf("array index %d out of range (length: %d)", index, len(n.Values))
		}
		return n.Values[index], n.Values[index].GetToken(), nil
	default:
		return nil, nil, fmt.Errorf("cannot descend into %T", node)
	}
}
