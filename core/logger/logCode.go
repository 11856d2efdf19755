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

// Leveled logging used by the converters and the batch tooling. Everything
// logs through ILogger so tests can swap in NullLogger.
package logger

import (
	"fmt"
	"strings"
)

// LogLevel - log level type
type LogLevel int

const (

	// LogDebug - DEBUG log level
	LogDebug LogLevel = iota

	// LogInfo - INFO log level
	LogInfo LogLevel = iota

	// LogError - ERROR log level (does not call os.Exit!)
	LogError LogLevel = iota
)

var logLevelPrefix = map[LogLevel]string{
	LogDebug: "DEBUG",
	LogInfo:  "INFO",
	LogError: "ERROR",
}

// ILogger - Generic logger interface
type ILogger interface {
	Printf(level LogLevel, format string, a ...interface{})
	Debugf(format string, a ...interface{})
	Infof(format string, a ...interface{})
	Errorf(format string, a ...interface{})
}

// GetLogLevel - parses a level name as written in config files or flags
func GetLogLevel(levelName string) (LogLevel, error) {
	for level, name := range logLevelPrefix {
		if strings.EqualFold(name, strings.TrimSpace(levelName)) {
			return level, nil
		}
	}
	return LogInfo, fmt.Errorf("invalid log level: %v", levelName)
}

// GetLogLevelName - inverse of GetLogLevel
func GetLogLevelName(level LogLevel) string {
	if name, ok := logLevelPrefix[level]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%v)", int(level))
}

// OrNull - returns the logger passed in, or a NullLogger if it's nil, so library
// functions can accept an optional logger
func OrNull(l ILogger) ILogger {
	if l == nil {
		return &NullLogger{}
	}
	return l
}
