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
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sectiontrace/core/core/logger"
)

var (
	inputsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sectiontrace_inputs_processed_total",
		Help: "Number of inputs processed, by operation and outcome.",
	}, []string{"operation", "outcome"})
	inputDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "sectiontrace_input_duration_seconds",
		Help: "Time taken to process one input.",
	}, []string{"operation"})
	inputsRemaining = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sectiontrace_inputs_remaining",
		Help: "Inputs not yet processed in the current run.",
	})
)

func recordInput(operation string, o outcome, took time.Duration) {
	inputsProcessed.WithLabelValues(operation, o.String()).Inc()
	inputDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// MetricsHandler serves /metrics for prometheus and /health, logging requests at debug level
func MetricsHandler(log logger.ILogger) http.Handler {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok\n")
	}).Methods(http.MethodGet)

	return handlers.LoggingHandler(logWriter{log: logger.OrNull(log)}, router)
}

// ServeMetrics starts serving MetricsHandler on addr in the background. Shut the returned
// server down when the run finishes.
func ServeMetrics(addr string, log logger.ILogger) *http.Server {
	log = logger.OrNull(log)
	server := &http.Server{Addr: addr, Handler: MetricsHandler(log)}

	go func() {
		log.Infof("Serving metrics on %v", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Metrics server stopped: %v", err)
		}
	}()
	return server
}

type logWriter struct {
	log logger.ILogger
}

func (w logWriter) Write(p []byte) (int, error) {
	w.log.Debugf("%v", strings.TrimSpace(string(p)))
	return len(p), nil
}
