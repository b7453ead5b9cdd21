package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/parkdown/internal/logging"
	"github.com/yaklabco/parkdown/pkg/pipeline"
)

// Run discovers files under opts.Paths and parses them concurrently.
// It returns outcomes in path order along with aggregate stats.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("checking files",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs)

	var pipelineOpts []pipeline.Option
	pipelineOpts = append(pipelineOpts, pipeline.WithRule(opts.Rule))
	if opts.MaxDepth > 0 {
		pipelineOpts = append(pipelineOpts, pipeline.WithMaxDepth(opts.MaxDepth))
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, pipelineOpts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; collect by path and emit in file order.
	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts []pipeline.Option) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := parseFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func parseFile(ctx context.Context, path string, opts []pipeline.Option) FileOutcome {
	outcome := FileOutcome{Path: path}

	p, err := pipeline.FromFile(ctx, path, opts...)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Content = p.Content()

	if err := p.Parse(ctx); err != nil {
		outcome.Error = err
		return outcome
	}

	tree, err := p.Tree()
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Nodes = tree.Len()

	return outcome
}
