package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/specialistvlad/prodgraph/internal/model"
	"gopkg.in/yaml.v3"
)

// Int is an integer field that may be absent, null, a number or a numeric
// string. Valid is false when the field carried no value.
type Int struct {
	Value int
	Valid bool
}

// IntOf returns a valid Int holding v.
func IntOf(v int) Int {
	return Int{Value: v, Valid: true}
}

// Require returns the value or a configuration error naming the field.
func (i Int) Require(field string) (int, error) {
	if !i.Valid {
		return 0, fmt.Errorf("%w: %s is required", model.ErrConfig, field)
	}
	return i.Value, nil
}

func (i *Int) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*i = Int{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return i.parse(s)
	}
	return i.parse(string(b))
}

func (i *Int) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected an integer, got a %s", model.ErrConfig, n.Line, kindName(n.Kind))
	}
	if n.Tag == "!!null" {
		*i = Int{}
		return nil
	}
	return i.parse(n.Value)
}

func (i *Int) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*i = Int{}
		return nil
	}
	v, err := parseInteger(s)
	if err != nil {
		return err
	}
	*i = IntOf(v)
	return nil
}

// parseInteger accepts decimal integers and integral numbers such as "3.0".
func parseInteger(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %q is not an integer", model.ErrConfig, s)
	}
	return int(f), nil
}

// Ref is an identifier that may be encoded as a string or a number.
type Ref string

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Ref(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%w: %s is not an identifier", model.ErrConfig, b)
	}
	*r = Ref(n.String())
	return nil
}

func (r *Ref) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected an identifier, got a %s", model.ErrConfig, n.Line, kindName(n.Kind))
	}
	if n.Tag == "!!null" {
		*r = ""
		return nil
	}
	*r = Ref(n.Value)
	return nil
}

// Count is the resource-count field: an integer, where 0 means every resource
// of the group, or the literal "all".
type Count struct {
	Int
	All bool
}

func (c *Count) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil && strings.EqualFold(strings.TrimSpace(s), "all") {
		*c = Count{All: true}
		return nil
	}
	c.All = false
	return c.Int.UnmarshalJSON(b)
}

func (c *Count) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode && strings.EqualFold(strings.TrimSpace(n.Value), "all") {
		*c = Count{All: true}
		return nil
	}
	c.All = false
	return c.Int.UnmarshalYAML(n)
}

// Resolve turns the field into the model's tagged count. Zero means all
// resources.
func (c Count) Resolve() (model.ResourceCount, error) {
	if c.All {
		return model.All(), nil
	}
	if !c.Valid {
		return model.ResourceCount{}, fmt.Errorf("%w: resource_count is required", model.ErrConfig)
	}
	if c.Value == 0 {
		return model.All(), nil
	}
	if c.Value < 0 {
		return model.ResourceCount{}, fmt.Errorf("%w: resource_count must not be negative, got %d", model.ErrConfig, c.Value)
	}
	return model.Exact(c.Value), nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "scalar"
	}
}
