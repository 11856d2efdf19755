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

package timestamper

import (
	"fmt"
	"time"
)

func Example_mockTimeStamper() {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ts := MockTimeStamper{QueuedTimeStamps: []time.Time{start, start.Add(time.Minute)}}

	fmt.Println(ts.GetTimeNow().Format(time.RFC3339))
	fmt.Println(ts.GetTimeNow().Format(time.RFC3339))
	fmt.Println(ts.GetTimeNow().Format(time.RFC3339))

	empty := MockTimeStamper{}
	fmt.Println(empty.GetTimeNow().IsZero())

	// Output:
	// 2024-03-01T10:00:00Z
	// 2024-03-01T10:01:00Z
	// 2024-03-01T10:01:00Z
	// true
}
