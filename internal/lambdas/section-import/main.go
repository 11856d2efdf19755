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

// Lambda converting Section documents uploaded to S3 into label images. Configured with
// SECTIONTRACE_CONFIG_* env vars, at least SECTIONTRACE_CONFIG_Output=s3://bucket/prefix.
// If SENTRY_DSN_SECRET names a secret, errors are reported to that Sentry DSN.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/sectiontrace/core/core/awsutil"
	"github.com/sectiontrace/core/core/batch"
	"github.com/sectiontrace/core/core/config"
	"github.com/sectiontrace/core/core/fileaccess"
	"github.com/sectiontrace/core/core/logger"
)

func lambdaConfig() (config.ConverterConfig, error) {
	cfg := config.DefaultConfig()
	cfg.Operation = config.OpLabels
	cfg.EnvironmentName = "lambda"

	err := config.ApplyEnvOverrides(&cfg)
	return cfg, err
}

// convertObjects makes label images for each uploaded document. All documents are
// attempted, the first error is returned.
func convertObjects(refs []awsutil.ObjectRef, cfg config.ConverterConfig, fs fileaccess.FileAccess, ilog logger.ILogger) (string, error) {
	converted, skipped := 0, 0
	var firstErr error

	for _, ref := range refs {
		cfg.Input = fmt.Sprintf("s3://%v/%v", ref.Bucket, ref.Key)

		runner, err := batch.NewRunner(cfg, fs, fs, ilog)
		if err == nil {
			var skip bool
			if skip, err = runner.Process(ref.Key); skip {
				skipped++
			}
		}

		if err != nil {
			err = errors.Wrapf(err, "s3://%v/%v", ref.Bucket, ref.Key)
			ilog.Errorf("%v", err)
			sentry.CaptureException(err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		converted++
	}

	return fmt.Sprintf("Converted %v of %v documents, %v skipped", converted-skipped, len(refs), skipped), firstErr
}

func HandleRequest(ctx context.Context, event json.RawMessage) (string, error) {
	ilog := &logger.StdErrLogger{}

	refs, err := awsutil.ObjectsFromEvent(event)
	if err != nil {
		return "", err
	}

	cfg, err := lambdaConfig()
	if err != nil {
		return "", err
	}
	ilog.SetLogLevel(cfg.GetLogLevel())

	sess, err := awsutil.GetSessionWithRegion(cfg.AWSRegion)
	if err != nil {
		return "", errors.Wrap(err, "AWS GetSession failed")
	}

	if secretName := os.Getenv("SENTRY_DSN_SECRET"); len(secretName) > 0 {
		dsn, err := awsutil.GetSecretString(sess, secretName)
		if err != nil {
			ilog.Errorf("Failed to read Sentry DSN secret %v: %v", secretName, err)
		} else if err := sentry.Init(sentry.ClientOptions{Dsn: dsn, Environment: cfg.EnvironmentName}); err != nil {
			ilog.Errorf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	return convertObjects(refs, cfg, fileaccess.MakeS3Access(awsutil.GetS3(sess)), ilog)
}

func main() {
	lambda.Start(HandleRequest)
}
