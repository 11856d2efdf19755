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

// Package timestamper supplies the current time, swappable so timing can be tested
package timestamper

import (
	"sync"
	"time"
)

type ITimeStamper interface {
	GetTimeNow() time.Time
}

type SystemTimeStamper struct {
}

func (ts *SystemTimeStamper) GetTimeNow() time.Time {
	return time.Now()
}

// MockTimeStamper returns QueuedTimeStamps in order, then keeps returning the last one
type MockTimeStamper struct {
	mu               sync.Mutex
	QueuedTimeStamps []time.Time
}

func (ts *MockTimeStamper) GetTimeNow() time.Time {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if len(ts.QueuedTimeStamps) <= 0 {
		return time.Time{}
	}

	val := ts.QueuedTimeStamps[0]
	if len(ts.QueuedTimeStamps) > 1 {
		ts.QueuedTimeStamps = ts.QueuedTimeStamps[1:]
	}
	return val
}
