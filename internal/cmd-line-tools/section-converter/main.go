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

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/getsentry/sentry-go"
	"github.com/sectiontrace/core/core/awsutil"
	"github.com/sectiontrace/core/core/batch"
	"github.com/sectiontrace/core/core/config"
	"github.com/sectiontrace/core/core/fileaccess"
	"github.com/sectiontrace/core/core/logger"
)

const version = "1.0.0"

func main() {
	fmt.Println("=========================")
	fmt.Println("=  Section converter    =")
	fmt.Println("=========================")

	cfg, err := config.Init("section-converter", os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ilog := logger.NewStdOutLogger(cfg.GetLogLevel())

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryEndpoint,
		Environment: cfg.EnvironmentName,
		Release:     version,
	}); err != nil {
		ilog.Errorf("Sentry initialization failed: %v", err)
	}
	defer sentry.Flush(2 * time.Second)

	inFS, outFS, err := makeFileAccess(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	runner, err := batch.NewRunner(cfg, inFS, outFS, ilog)
	if err != nil {
		log.Fatalf("%v", err)
	}
	runner.OnProgress = func(p batch.Progress) {
		fmt.Println(p)
	}

	if len(cfg.MetricsAddr) > 0 {
		server := batch.ServeMetrics(cfg.MetricsAddr, ilog)
		defer server.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := runner.Run(ctx)
	if err != nil {
		ilog.Errorf("Run stopped: %v", err)
	}

	ilog.Infof("%v %v: %v failed, %v skipped", cfg.Operation, p, p.Failed, p.Skipped)
	if err != nil || p.Failed > 0 {
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

// Input and output may each be local or S3, only make an AWS session if needed
func makeFileAccess(cfg config.ConverterConfig) (fileaccess.FileAccess, fileaccess.FileAccess, error) {
	in, err := fileaccess.ParseLocation(cfg.Input)
	if err != nil {
		return nil, nil, err
	}
	out, err := fileaccess.ParseLocation(cfg.Output)
	if err != nil {
		return nil, nil, err
	}

	var sess *session.Session
	if in.IsS3() || out.IsS3() {
		if sess, err = awsutil.GetSessionWithRegion(cfg.AWSRegion); err != nil {
			return nil, nil, fmt.Errorf("AWS GetSession failed: %v", err)
		}
	}

	inFS, err := fileaccess.ForLocation(in, sess)
	if err != nil {
		return nil, nil, err
	}
	outFS, err := fileaccess.ForLocation(out, sess)
	if err != nil {
		return nil, nil, err
	}
	return inFS, outFS, nil
}
