// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package batch runs a converter operation over every input matching a path or S3
// prefix, on a pool of workers, reporting progress as each input completes.
package batch

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/sectiontrace/core/core/config"
	"github.com/sectiontrace/core/core/fileaccess"
	"github.com/sectiontrace/core/core/logger"
	"github.com/sectiontrace/core/core/timestamper"
	"github.com/sectiontrace/core/core/validation"
)

type Runner struct {
	cfg    config.ConverterConfig
	input  fileaccess.Location
	output fileaccess.Location
	inFS   fileaccess.FileAccess
	outFS  fileaccess.FileAccess
	log    logger.ILogger

	// Checks documents written by the contours operation
	validator *validation.Validator

	// Label name -> directory, found next to the image directory for contours
	labelDirs map[string]string

	// Called after each input completes, never concurrently
	OnProgress func(Progress)

	progressLock sync.Mutex
	clock        timestamper.ITimeStamper
}

// NewRunner checks cfg and prepares to read cfg.Input through inFS and write cfg.Output
// through outFS
func NewRunner(cfg config.ConverterConfig, inFS fileaccess.FileAccess, outFS fileaccess.FileAccess, log logger.ILogger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	input, err := fileaccess.ParseLocation(cfg.Input)
	if err != nil {
		return nil, errors.Wrap(err, "bad input")
	}
	output, err := fileaccess.ParseLocation(cfg.Output)
	if err != nil {
		return nil, errors.Wrap(err, "bad output")
	}

	r := &Runner{
		cfg:    cfg,
		input:  input,
		output: output,
		inFS:   inFS,
		outFS:  outFS,
		log:    logger.OrNull(log),
		clock:  &timestamper.SystemTimeStamper{},
	}

	if cfg.Operation == config.OpContours {
		if r.validator, err = validation.NewSectionValidator(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Pattern matched against input paths. Without a trailing wildcard the input is
// treated as a prefix.
func (r *Runner) inputPattern() string {
	if strings.HasSuffix(r.input.Path, "*") {
		return r.input.Path
	}
	return r.input.Path + "*"
}

// SelectInputs lists the inputs to process, sorted
func (r *Runner) SelectInputs() ([]string, error) {
	paths, err := fileaccess.MatchObjects(r.inFS, r.input.Bucket, r.inputPattern())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list inputs matching %v", r.input)
	}
	sort.Strings(paths)
	return paths, nil
}

// Label images live in directories next to the image directory, named by label:
// data/images/12.png is labelled by data/dendrite/12.png, data/axon/12.png...
func (r *Runner) findLabelDirs() (map[string]string, error) {
	imageDir := path.Dir(r.inputPattern())
	parent := path.Dir(imageDir)

	prefix := ""
	if parent != "." {
		prefix = parent + "/"
	}

	listed, err := r.inFS.ListObjects(r.input.Bucket, prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list label directories in %v", parent)
	}

	result := map[string]string{}
	for _, item := range listed {
		rel := strings.TrimPrefix(item, prefix)
		slash := strings.Index(rel, "/")
		if slash <= 0 {
			continue
		}

		name := rel[0:slash]
		dir := prefix + name
		if dir != imageDir {
			result[name] = dir
		}
	}
	return result, nil
}

// Run processes every selected input. A failing input is logged, counted and reported
// to Sentry, and the run carries on. Stops early (returning ctx.Err()) if ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (Progress, error) {
	sources, err := r.SelectInputs()
	if err != nil {
		return Progress{}, err
	}

	if r.cfg.Operation == config.OpContours {
		if r.labelDirs, err = r.findLabelDirs(); err != nil {
			return Progress{}, err
		}

		names := make([]string, 0, len(r.labelDirs))
		for name := range r.labelDirs {
			names = append(names, name)
		}
		sort.Strings(names)
		r.log.Infof("(Presumed) labels: %v", strings.Join(names, ", "))
	}

	r.log.Infof("Processing %v files", len(sources))

	tracker := newProgressTracker(len(sources), r.clock)
	inputsRemaining.Set(float64(len(sources)))

	jobs := make(chan string)
	wg := sync.WaitGroup{}

	for c := 0; c < r.cfg.Workers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for src := range jobs {
				r.complete(tracker, src, r.processTimed(src))
			}
		}()
	}

feed:
	for _, src := range sources {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- src:
		}
	}
	close(jobs)
	wg.Wait()

	final := tracker.snapshot()
	if err := ctx.Err(); err != nil {
		r.log.Infof("Run cancelled after %v of %v inputs", final.Complete, final.Total)
		return final, err
	}
	return final, nil
}

func (r *Runner) processTimed(src string) outcome {
	start := time.Now()
	skipped, err := r.Process(src)

	o := outcomeOK
	if err != nil {
		o = outcomeFailed
		r.log.Errorf("%v: %v", src, err)
		captureError(err, r.cfg.Operation, src)
	} else if skipped {
		o = outcomeSkipped
		r.log.Debugf("Skipped %v", src)
	}

	recordInput(r.cfg.Operation, o, time.Since(start))
	return o
}

func (r *Runner) complete(tracker *progressTracker, src string, o outcome) {
	r.progressLock.Lock()
	defer r.progressLock.Unlock()

	p := tracker.done(o)
	inputsRemaining.Set(float64(p.Total - p.Complete))

	if r.OnProgress != nil {
		r.OnProgress(p)
	}
}

// Process runs the configured operation on one input. Returns true if the input isn't
// one the operation applies to.
func (r *Runner) Process(src string) (bool, error) {
	switch r.cfg.Operation {
	case config.OpLabels:
		return r.sectionToLabels(src)
	case config.OpContours:
		return r.labelsToSection(src)
	case config.OpFeatures:
		return false, r.imageToFeatures(src)
	}
	return false, fmt.Errorf("unknown operation: %v", r.cfg.Operation)
}

func captureError(err error, operation string, src string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("operation", operation)
		scope.SetExtra("input", src)
		sentry.CaptureException(err)
	})
}
