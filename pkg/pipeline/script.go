package pipeline

import (
	"fmt"
	"os"

	"github.com/oneconcern/datadesk/pkg/pipeline/status"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Parse a YAML script: a list of steps
func Parse(data []byte) ([]Step, error) {
	var steps []Step
	if err := yaml.UnmarshalStrict(data, &steps); err != nil {
		return nil, status.ErrScript.Wrap(err)
	}
	for i, step := range steps {
		if err := step.Validate(); err != nil {
			return nil, status.ErrScript.WrapMessage(fmt.Sprintf("step %d", i+1)).Wrap(err)
		}
	}
	return steps, nil
}

// Load a YAML script from a file system
func Load(fs afero.Fs, pth string) ([]Step, error) {
	data, err := afero.ReadFile(fs, pth)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, status.ErrScript.WrapMessage(fmt.Sprintf("script not found: %s", pth))
		}
		return nil, status.ErrScript.Wrap(err)
	}
	return Parse(data)
}
