package scenarios

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseJSONOrYAML unmarshals data as JSON if possible, and otherwise as YAML using the same
// json field tags.
func ParseJSONOrYAML(data []byte, target interface{}) error {
	if json.Unmarshal(data, target) == nil {
		return nil
	}
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	normalized, err := yamlToJSONCompatible(raw)
	if err != nil {
		return err
	}
	converted, err := json.Marshal(normalized)
	if err != nil {
		return err
	}
	return json.Unmarshal(converted, target)
}

// yamlToJSONCompatible rewrites any map[interface{}]interface{} produced by the YAML decoder so
// that encoding/json can marshal it.
func yamlToJSONCompatible(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			converted, err := yamlToJSONCompatible(elem)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, elem := range v {
			converted, err := yamlToJSONCompatible(elem)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, elem := range v {
			s, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("YAML map key %v has type %T; only string keys are allowed", key, key)
			}
			converted, err := yamlToJSONCompatible(elem)
			if err != nil {
				return nil, err
			}
			out[s] = converted
		}
		return out, nil
	default:
		return value, nil
	}
}
