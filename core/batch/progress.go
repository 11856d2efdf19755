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

package batch

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sectiontrace/core/core/timestamper"
)

// Progress - snapshot of a batch run
type Progress struct {
	// Includes failed and skipped inputs
	Complete int
	Failed   int
	Skipped  int
	Total    int
	Elapsed  time.Duration
}

// Rate - inputs completed per second
func (p Progress) Rate() float64 {
	secs := p.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(p.Complete) / secs
}

// Remaining - estimated time left at the current rate
func (p Progress) Remaining() time.Duration {
	rate := p.Rate()
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(p.Total-p.Complete) / rate * float64(time.Second))
}

func (p Progress) String() string {
	elapsed := int(p.Elapsed.Seconds())
	remaining := int(p.Remaining().Seconds())
	return fmt.Sprintf("%d/%d complete  %0.2f images/sec  %dm%ds elapsed  %dm%ds remaining",
		p.Complete, p.Total, p.Rate(), elapsed/60, elapsed%60, remaining/60, remaining%60)
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeFailed
	outcomeSkipped
)

func (o outcome) String() string {
	switch o {
	case outcomeFailed:
		return "failed"
	case outcomeSkipped:
		return "skipped"
	}
	return "ok"
}

// Counts completions from many workers
type progressTracker struct {
	complete atomic.Int64
	failed   atomic.Int64
	skipped  atomic.Int64
	total    int
	start    time.Time
	clock    timestamper.ITimeStamper
}

func newProgressTracker(total int, clock timestamper.ITimeStamper) *progressTracker {
	return &progressTracker{total: total, start: clock.GetTimeNow(), clock: clock}
}

func (t *progressTracker) done(o outcome) Progress {
	switch o {
	case outcomeFailed:
		t.failed.Add(1)
	case outcomeSkipped:
		t.skipped.Add(1)
	}
	t.complete.Add(1)
	return t.snapshot()
}

func (t *progressTracker) snapshot() Progress {
	return Progress{
		Complete: int(t.complete.Load()),
		Failed:   int(t.failed.Load()),
		Skipped:  int(t.skipped.Load()),
		Total:    t.total,
		Elapsed:  t.clock.GetTimeNow().Sub(t.start),
	}
}
