package document

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes YAML text into a Value tree, preserving mapping key order.
// Of a multi-document stream only the first document is edited; the rest is
// dropped on the next save. Empty input parses as an empty mapping so the
// root stays addressable and can grow children.
func Parse(text string) (*Value, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if err == io.EOF {
			return NewMap(), nil
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return NewMap(), nil
		}
		node = node.Content[0]
	}
	return fromNode(node)
}

// Serialize encodes a Value tree back to YAML text.
func Serialize(v *Value) (string, error) {
	node := toNode(v)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	return buf.String(), nil
}

func fromNode(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			child, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			// Duplicate keys are invalid YAML but some parsers let them
			// through; first occurrence wins here.
			if !m.hasKey(key) {
				m.appendEntry(key, child)
			}
		}
		return m, nil
	case yaml.SequenceNode:
		seq := NewSequence()
		for _, c := range n.Content {
			child, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			seq.appendItem(child)
		}
		return seq, nil
	case yaml.ScalarNode:
		return fromScalarNode(n)
	}
	return nil, fmt.Errorf("parse: unsupported node kind %d at line %d", n.Kind, n.Line)
}

func fromScalarNode(n *yaml.Node) (*Value, error) {
	switch n.Tag {
	case "!!null", "":
		return NewNull(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return NewString(n.Value), nil
		}
		return NewBool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// Out-of-range integers survive as strings rather than failing
			// the whole document.
			return NewString(n.Value), nil
		}
		return NewInt(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return NewString(n.Value), nil
		}
		return NewFloat(f), nil
	default:
		return NewString(n.Value), nil
	}
}

func toNode(v *Value) *yaml.Node {
	switch v.Kind() {
	case KindMap:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.Entries() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
				toNode(e.Value),
			)
		}
		return n
	case KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, toNode(item))
		}
		return n
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str()}
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int(), 10)}
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: canonFloat(v.Float())}
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool())}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
