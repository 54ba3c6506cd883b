package yml

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node wraps yaml.Node with ordered traversal helpers. Mapping order is
// preserved, which plain map decoding loses.
type Node yaml.Node

// Lookup returns the value node keyed by name within a mapping, or nil
func (n *Node) Lookup(name string) *Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == name {
			return (*Node)(n.Content[i+1])
		}
	}
	return nil
}

// Items visits every element of a sequence node
func (n *Node) Items(callback func(index int, node *Node) error) error {
	for i := 0; i < len(n.Content); i++ {
		if err := callback(i, (*Node)(n.Content[i])); err != nil {
			return err
		}
	}
	return nil
}

// Pairs visits every key/value pair of a mapping node in document order
func (n *Node) Pairs(callback func(key string, node *Node) error) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if err := callback(key, (*Node)(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// Interface converts the node into plain Go data: scalars follow their
// YAML tags, mappings become map[string]interface{}, sequences []interface{}
func (n *Node) Interface() interface{} {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!bool":
			return strings.EqualFold(n.Value, "true")
		case "!!null":
			return nil
		case "!!float":
			return asFloat(n.Value)
		case "!!int":
			return asInt(n.Value)
		default:
			return n.Value
		}
	case yaml.MappingNode:
		aMap := make(map[string]interface{})
		for i := 0; i+1 < len(n.Content); i += 2 {
			aMap[n.Content[i].Value] = (*Node)(n.Content[i+1]).Interface()
		}
		return aMap
	case yaml.SequenceNode:
		aSlice := make([]interface{}, 0, len(n.Content))
		for i := 0; i < len(n.Content); i++ {
			aSlice = append(aSlice, (*Node)(n.Content[i]).Interface())
		}
		return aSlice
	case yaml.DocumentNode:
		if len(n.Content) > 0 {
			return (*Node)(n.Content[0]).Interface()
		}
	}
	return nil
}

// Text returns the scalar text of the node; non-scalars yield an empty string
func (n *Node) Text() string {
	if n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

func asFloat(text string) float64 {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0.0
	}
	return f
}

func asInt(text string) int {
	i, err := strconv.Atoi(text)
	if err != nil {
		return 0
	}
	return i
}
