package loaders

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ParseSceneYAML parses a YAML scene. It uses the same object and option names
// as the scene language:
//
//	camera: {width: 320, height: 240, pos: [0, 1, -5], dir: [0, 0, 1]}
//	global: {recurse_depth: 5}
//	lights:
//	  - {pos: [2, 5, -3], intensity: 1}
//	objects:
//	  - type: sphere
//	    pos: [0, 1, 0]
//	    r: 1
//	    material: {color: red, template: plastic}
func ParseSceneYAML(source []byte) (*SceneDescription, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(source, &root); err != nil {
		return nil, fmt.Errorf("invalid YAML scene: %w", err)
	}

	conv := &yamlConverter{source: string(source)}
	entries := conv.entries(&root)
	if len(conv.errs) > 0 {
		return nil, multierr.Combine(conv.errs...)
	}
	return buildScene(conv.source, entries)
}

// yamlConverter turns a YAML node tree into scene entries
type yamlConverter struct {
	source string
	errs   []error
}

// offset converts a YAML line and column into a byte offset
func (c *yamlConverter) offset(node *yaml.Node) int {
	line, col := 1, 1
	for i, r := range c.source {
		if line == node.Line && col == node.Column {
			return i
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return len(c.source)
}

func (c *yamlConverter) span(node *yaml.Node) (int, int) {
	start := c.offset(node)
	if node.Kind == yaml.ScalarNode {
		end := start + len(node.Value)
		if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			end += 2
		}
		return start, min(end, len(c.source))
	}
	_, size := utf8.DecodeRuneInString(c.source[min(start, len(c.source)):])
	return start, start + size
}

func (c *yamlConverter) errorf(node *yaml.Node, format string, args ...any) {
	start, end := c.span(node)
	c.errs = append(c.errs, newParseError(c.source, start, end, format, args...))
}

func (c *yamlConverter) ident(node *yaml.Node, name string) ident {
	start, end := c.span(node)
	return ident{name: name, start: start, end: end}
}

func (c *yamlConverter) entries(root *yaml.Node) []sceneEntry {
	doc := root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		c.errorf(doc, "Scene must be a mapping of sections")
		return nil
	}

	var entries []sceneEntry
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], resolveAlias(doc.Content[i+1])

		switch section := strings.ToLower(key.Value); section {
		case "camera", "global", "background":
			if value.Kind != yaml.MappingNode {
				c.errorf(value, "Section '%s' must be a mapping", key.Value)
				continue
			}
			entries = append(entries, sceneEntry{name: c.ident(key, key.Value), fields: c.fields(value)})

		case "lights":
			for _, item := range c.sequence(key, value) {
				entries = append(entries, sceneEntry{name: c.ident(item, "Light"), fields: c.fields(item)})
			}

		case "objects":
			for _, item := range c.sequence(key, value) {
				if entry, ok := c.object(item); ok {
					entries = append(entries, entry)
				}
			}

		default:
			c.errorf(key, "Unknown section '%s'", key.Value)
		}
	}
	return entries
}

// sequence returns the mapping items of a list section
func (c *yamlConverter) sequence(key, value *yaml.Node) []*yaml.Node {
	if value.Kind != yaml.SequenceNode {
		c.errorf(value, "Section '%s' must be a list", key.Value)
		return nil
	}

	items := make([]*yaml.Node, 0, len(value.Content))
	for _, item := range value.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.MappingNode {
			c.errorf(item, "Entries of '%s' must be mappings", key.Value)
			continue
		}
		items = append(items, item)
	}
	return items
}

// object converts an objects entry, using its type key as the entry name
func (c *yamlConverter) object(item *yaml.Node) (sceneEntry, bool) {
	var typeNode *yaml.Node
	fields := make([]field, 0, len(item.Content)/2)

	for i := 0; i+1 < len(item.Content); i += 2 {
		key, value := item.Content[i], resolveAlias(item.Content[i+1])
		if strings.EqualFold(key.Value, "type") {
			typeNode = value
			continue
		}
		fields = append(fields, field{key: c.ident(key, key.Value), value: c.literal(value)})
	}

	if typeNode == nil || typeNode.Kind != yaml.ScalarNode {
		c.errorf(item, "Object is missing a 'type'")
		return sceneEntry{}, false
	}
	return sceneEntry{name: c.ident(typeNode, typeNode.Value), fields: fields}, true
}

func (c *yamlConverter) fields(mapping *yaml.Node) []field {
	fields := make([]field, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], resolveAlias(mapping.Content[i+1])
		fields = append(fields, field{key: c.ident(key, key.Value), value: c.literal(value)})
	}
	return fields
}

func (c *yamlConverter) literal(node *yaml.Node) *literal {
	start, end := c.span(node)
	lit := &literal{start: start, end: end}

	switch node.Kind {
	case yaml.SequenceNode:
		lit.kind = litTuple
		for _, item := range node.Content {
			lit.items = append(lit.items, c.literal(resolveAlias(item)))
		}
	case yaml.MappingNode:
		lit.kind = litObject
		lit.fields = c.fields(node)
	default:
		switch node.ShortTag() {
		case "!!int":
			if v, err := strconv.ParseInt(strings.ReplaceAll(node.Value, "_", ""), 0, 64); err == nil {
				lit.kind, lit.integer = litInt, v
				return lit
			}
		case "!!float":
			if v, err := strconv.ParseFloat(node.Value, 64); err == nil {
				lit.kind, lit.double = litDouble, v
				return lit
			}
		}
		lit.kind, lit.str = litString, node.Value
	}
	return lit
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
