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

package logger

import "fmt"

func Example_getLogLevel() {
	fmt.Println(GetLogLevel("debug"))
	fmt.Println(GetLogLevel(" INFO "))
	fmt.Println(GetLogLevel("Error"))
	fmt.Println(GetLogLevel("verbose"))
	fmt.Println(GetLogLevelName(LogError))

	// Output:
	// 0 <nil>
	// 1 <nil>
	// 2 <nil>
	// 1 invalid log level: verbose
	// ERROR
}

func Example_memLogger() {
	l := &MemLogger{}
	l.Infof("converted %v", "series.12")
	l.Errorf("failed: %v", 3)
	OrNull(nil).Infof("nowhere")

	fmt.Println(l.Lines())

	// Output:
	// [INFO: converted series.12 ERROR: failed: 3]
}
