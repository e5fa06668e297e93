package scenarios

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Substitutions maps placeholder names to the values that replace them.
type Substitutions map[string]ldvalue.Value

type substitutionHeader struct {
	Constants  Substitutions     `json:"constants"`
	Parameters []json.RawMessage `json:"parameters"`
}

type expanded struct {
	data   []byte
	params Substitutions
}

func expandSubstitutions(original []byte) ([]expanded, error) {
	var header substitutionHeader
	if err := ParseJSONOrYAML(original, &header); err != nil {
		return nil, err
	}
	paramSets, err := parameterCombinations(header.Parameters)
	if err != nil {
		return nil, err
	}
	if len(paramSets) == 0 {
		return []expanded{{data: substitute(original, header.Constants)}}, nil
	}
	ret := make([]expanded, 0, len(paramSets))
	for _, params := range paramSets {
		// constants may refer to parameters and vice versa
		data := substitute(original, header.Constants)
		data = substitute(data, params)
		data = substitute(data, header.Constants)
		ret = append(ret, expanded{data: data, params: params})
	}
	return ret, nil
}

func parameterCombinations(raw []json.RawMessage) ([]Substitutions, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	all, _ := json.Marshal(raw)
	switch ldvalue.Parse(raw[0]).Type() {
	case ldvalue.ObjectType:
		var list []Substitutions
		err := json.Unmarshal(all, &list)
		return list, err
	case ldvalue.ArrayType:
		var groups [][]Substitutions
		if err := json.Unmarshal(all, &groups); err != nil {
			return nil, err
		}
		return crossProduct(groups), nil
	default:
		return nil, errors.New("parameters must be an array of objects or an array of arrays")
	}
}

func crossProduct(groups [][]Substitutions) []Substitutions {
	result := []Substitutions{{}}
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		next := make([]Substitutions, 0, len(result)*len(group))
		for _, partial := range result {
			for _, choice := range group {
				merged := make(Substitutions, len(partial)+len(choice))
				for k, v := range partial {
					merged[k] = v
				}
				for k, v := range choice {
					merged[k] = v
				}
				next = append(next, merged)
			}
		}
		result = next
	}
	return result
}

// substitute replaces "<name>" (including the quotes) with the JSON value, so that non-string
// values keep their type, and a bare <name> inside a longer string with the plain text.
func substitute(data []byte, substs Substitutions) []byte {
	if len(substs) == 0 {
		return data
	}
	s := strings.NewReplacer(`\u003c`, "<", `\u003e`, ">").Replace(string(data))
	for name, value := range substs {
		typed := value.JSONString()
		s = strings.ReplaceAll(s, `"<`+name+`>"`, typed)
		text := typed
		if value.IsString() {
			text = value.StringValue()
		}
		s = strings.ReplaceAll(s, "<"+name+">", text)
	}
	return []byte(s)
}
