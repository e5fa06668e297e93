package scenarios

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

//go:embed data-files
var dataFiles embed.FS

const dataFilesDir = "data-files"

// Source is one scenario together with where it came from.
type Source struct {
	Scenario
	FileName string
	Params   Substitutions
}

// ID is the scenario name plus its parameter values, if any.
func (s Source) ID() string {
	if len(s.Params) == 0 {
		return s.Name
	}
	names := maps.Keys(s.Params)
	slices.Sort(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		v := s.Params[name]
		if v.IsString() {
			parts = append(parts, name+"="+v.StringValue())
		} else {
			parts = append(parts, name+"="+v.JSONString())
		}
	}
	return s.Name + " (" + strings.Join(parts, ",") + ")"
}

// LoadAll reads every embedded scenario file.
func LoadAll() ([]Source, error) {
	entries, err := dataFiles.ReadDir(dataFilesDir)
	if err != nil {
		return nil, err
	}
	var ret []Source
	for _, entry := range entries {
		data, err := dataFiles.ReadFile(path.Join(dataFilesDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		sources, err := Parse(entry.Name(), data)
		if err != nil {
			return nil, err
		}
		ret = append(ret, sources...)
	}
	return ret, nil
}

// Parse reads the scenarios defined by one file's contents.
func Parse(fileName string, data []byte) ([]Source, error) {
	expansions, err := expandSubstitutions(data)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", fileName, err)
	}
	ret := make([]Source, 0, len(expansions))
	for _, e := range expansions {
		s := Source{FileName: fileName, Params: e.params}
		if err := ParseJSONOrYAML(e.data, &s.Scenario); err != nil {
			return nil, fmt.Errorf("error parsing %q %s: %w", fileName, s.ID(), err)
		}
		if s.Name == "" {
			s.Name = strings.TrimSuffix(fileName, path.Ext(fileName))
		}
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("invalid scenario %q in %q: %w", s.ID(), fileName, err)
		}
		ret = append(ret, s)
	}
	return ret, nil
}
