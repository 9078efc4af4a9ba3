package cost

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// LoadRates reads per-model pricing from a YAML file so price changes
// don't need a rebuild. The file has a top-level "rates" key:
//
//	rates:
//	  claude-haiku-4-5-20251001:
//	    input: 0.80
//	    output: 4.00
func LoadRates(path string) (map[string]ModelRate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "cost: read rates file %s", path)
	}

	var wrapper struct {
		Rates map[string]ModelRate `yaml:"rates"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "cost: parse rates file")
	}
	if len(wrapper.Rates) == 0 {
		return nil, eris.Errorf("cost: rates file %s has no rates", path)
	}

	return wrapper.Rates, nil
}
