package system

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"gopkg.in/yaml.v3"
)

// Parse decodes and validates a descriptor. JSON documents are accepted as well, since they are valid YAML.
//
// Parameters:
//   - data: the document
//
// Returns:
//   - *SystemData: the descriptor
//   - error: decode error or ErrInvalidDescriptor
func Parse(data []byte) (*SystemData, error) {
	var d SystemData
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads and parses a descriptor file.
//
// Parameters:
//   - path: file path
//
// Returns:
//   - *SystemData: the descriptor
//   - error: read, decode or validation error
func Load(path string) (*SystemData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("system: read %s: %w", path, err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("system: %s: %w", path, err)
	}
	return d, nil
}

// LoadCatalog loads many descriptor files concurrently on a bounded worker pool.
// Results keep the order of paths; failed entries are nil and their errors are joined.
//
// Parameters:
//   - paths: descriptor files
//   - workers: maximum number of concurrent loads
//
// Returns:
//   - []*SystemData: one entry per path
//   - error: joined load errors, nil if all succeeded
func LoadCatalog(paths []string, workers int) ([]*SystemData, error) {
	out := make([]*SystemData, len(paths))
	if len(paths) == 0 {
		return out, nil
	}

	pool := worker.NewDynamicWorkerPool(workers, len(paths), 1*time.Second)
	defer pool.Stop()

	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: path,
			Do: func() (any, error) {
				defer wg.Done()
				d, err := Load(path)
				out[i], errs[i] = d, err
				return d, err
			},
		})
	}
	wg.Wait()

	return out, errors.Join(errs...)
}
