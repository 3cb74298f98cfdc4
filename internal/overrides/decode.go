package overrides

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/phoenixcorp/lightdesk/internal/log"
)

// UnmarshalJSON decodes p field by field. A field with the wrong shape is
// treated as absent instead of failing the whole payload, so Normalize can
// fill it from the defaults. Only malformed JSON is an error.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*p = payloadFromValue(raw)
	return nil
}

// UnmarshalYAML is the YAML counterpart of UnmarshalJSON.
func (p *Payload) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*p = payloadFromValue(raw)
	return nil
}

func payloadFromValue(raw any) Payload {
	fields, ok := stringMap(raw)
	if !ok {
		if raw != nil {
			log.Debug(log.CatSync, "Ignoring overrides payload that is not an object", "type", fmt.Sprintf("%T", raw))
		}
		return Payload{}
	}

	p := Payload{
		HPRow:            cellValue(fields, "hpRow"),
		HPFirstCol:       cellValue(fields, "hpFirstCol"),
		HPLastCol:        cellValue(fields, "hpLastCol"),
		ResourceRow:      cellValue(fields, "resourceRow"),
		ResourceFirstCol: cellValue(fields, "resourceFirstCol"),
		ResourceLastCol:  cellValue(fields, "resourceLastCol"),
		HPColor:          fields["hpColor"],
		ResourceColor:    fields["resourceColor"],
		BackgroundColor:  fields["backgroundColor"],
	}

	if v, present := fields["resourceColors"]; present && v != nil {
		colors, ok := stringMap(v)
		if !ok {
			log.Debug(log.CatSync, "Ignoring resourceColors that is not an object", "type", fmt.Sprintf("%T", v))
		} else {
			p.ResourceColors = make(map[string]RawColor, len(colors))
			for k, c := range colors {
				p.ResourceColors[k] = c
			}
		}
	}
	return p
}

// stringMap accepts the two map shapes decoders produce for objects.
func stringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprint(k)
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// cellValue reads an integral grid coordinate. Integral floats such as 1.0
// count; anything else leaves the field absent.
func cellValue(fields map[string]any, key string) *int {
	v, present := fields[key]
	if !present || v == nil {
		return nil
	}
	n, ok := integral(v)
	if !ok {
		log.Debug(log.CatSync, "Ignoring non-integer range field", "field", key, "value", fmt.Sprint(v))
		return nil
	}
	return intPtr(n)
}

func integral(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return integral(i)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
