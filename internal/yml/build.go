package yml

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Append adds a value to a sequence or document node
func (n *Node) Append(value interface{}) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
	default:
		panic("not a sequence node")
	}
	n.Content = append(n.Content, ValueNode(value))
}

// Put adds a key/value pair to a mapping node
func (n *Node) Put(key string, value interface{}) {
	if n.Kind != yaml.MappingNode {
		panic("not a map node")
	}
	n.Content = append(n.Content, newScalar(key), ValueNode(value))
}

// ValueNode builds a yaml node from plain Go data
func ValueNode(value interface{}) *yaml.Node {
	switch actual := value.(type) {
	case nil:
		return newScalar(nil)
	case *Node:
		return (*yaml.Node)(actual)
	case *yaml.Node:
		return actual
	case map[string]interface{}:
		aMap := (*Node)(NewMap())
		for k, v := range actual {
			aMap.Put(k, v)
		}
		return (*yaml.Node)(aMap)
	case []interface{}:
		aSlice := (*Node)(NewSlice())
		for i := range actual {
			aSlice.Append(actual[i])
		}
		return (*yaml.Node)(aSlice)
	case []string:
		aSlice := (*Node)(NewSlice())
		for i := range actual {
			aSlice.Append(actual[i])
		}
		return (*yaml.Node)(aSlice)
	default:
		return newScalar(value)
	}
}

// NewSlice creates an empty sequence node
func NewSlice() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

// NewMap creates an empty mapping node
func NewMap() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func newScalar(value interface{}) *yaml.Node {
	if value == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: ""}
	}
	tag := "!!str"
	text := ""
	switch actual := value.(type) {
	case string:
		text = actual
	case []byte:
		text = string(actual)
	case int:
		tag, text = "!!int", strconv.Itoa(actual)
	case int64:
		tag, text = "!!int", strconv.FormatInt(actual, 10)
	case uint64:
		tag, text = "!!int", strconv.FormatUint(actual, 10)
	case float64:
		tag, text = "!!float", strconv.FormatFloat(actual, 'f', -1, 64)
	case float32:
		tag, text = "!!float", strconv.FormatFloat(float64(actual), 'f', -1, 32)
	case bool:
		tag, text = "!!bool", strconv.FormatBool(actual)
	case fmt.Stringer:
		text = actual.String()
	default:
		text = fmt.Sprintf("%v", actual)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}
