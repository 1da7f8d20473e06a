// ABOUTME: Batch conversion of directory trees
// ABOUTME: Groups audio files per folder and converts them concurrently

package batch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tafforge/tafforge/internal/convert"
)

// Job is one folder of audio files destined for a single container.
type Job struct {
	Dir    string
	Inputs []string
	Output string
}

// Result records the outcome of one job.
type Result struct {
	Job Job
	Err error
}

// Discover walks root and builds one job per directory that holds audio
// files. Files within a directory are sorted by name, which matches the
// usual track numbering of ripped albums.
func Discover(root, outDir string) ([]Job, error) {
	groups := map[string][]string{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !convert.SupportedInput(path) {
			return nil
		}
		dir := filepath.Dir(path)
		groups[dir] = append(groups[dir], path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	dirs := make([]string, 0, len(groups))
	for dir := range groups {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	jobs := make([]Job, 0, len(dirs))
	for _, dir := range dirs {
		inputs := groups[dir]
		sort.Strings(inputs)
		jobs = append(jobs, Job{
			Dir:    dir,
			Inputs: inputs,
			Output: filepath.Join(outDir, convert.OutputName(inputs)),
		})
	}
	return jobs, nil
}

// Run executes jobs with at most parallel workers. Individual job
// failures are collected per job; only infrastructure errors abort the
// whole run.
func Run(ctx context.Context, jobs []Job, opts convert.Options, parallel int) ([]Result, error) {
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	results := make([]Result, len(jobs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				results[i] = Result{Job: job, Err: err}
				mu.Unlock()
				return nil
			}

			log.WithFields(log.Fields{
				"dir":    job.Dir,
				"tracks": len(job.Inputs),
				"output": job.Output,
			}).Info("Converting folder")

			err := convert.ToFile(job.Inputs, job.Output, opts)
			if err != nil {
				log.WithError(err).WithField("dir", job.Dir).Error("Conversion failed")
			}

			mu.Lock()
			results[i] = Result{Job: job, Err: err}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Process discovers and runs all jobs under root.
func Process(ctx context.Context, root, outDir string, opts convert.Options, parallel int) ([]Result, error) {
	jobs, err := Discover(root, outDir)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no audio files found under %s", root)
	}
	return Run(ctx, jobs, opts, parallel)
}
