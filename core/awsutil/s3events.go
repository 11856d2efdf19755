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

package awsutil

import (
	"encoding/json"
	"net/url"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pkg/errors"
)

// ObjectRef - an S3 object named by a notification
type ObjectRef struct {
	Bucket string
	Key    string
	Region string
}

const (
	eventSourceS3  = "aws:s3"
	eventSourceSQS = "aws:sqs"
)

// Only enough of a record to find where it came from. S3 records spell it eventSource,
// SQS records spell it EventSource.
type eventHeader struct {
	Records []struct {
		LowerSource string `json:"eventSource"`
		UpperSource string `json:"EventSource"`
	}
}

// ObjectsFromEvent reads the objects named in an S3 notification, delivered either
// directly or as the body of SQS messages
func ObjectsFromEvent(data []byte) ([]ObjectRef, error) {
	var header eventHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, errors.Wrap(err, "failed to read event")
	}
	if len(header.Records) <= 0 {
		return nil, errors.New("event has no records")
	}

	source := header.Records[0].LowerSource
	if len(source) <= 0 {
		source = header.Records[0].UpperSource
	}

	switch source {
	case eventSourceS3:
		s3Event := events.S3Event{}
		if err := json.Unmarshal(data, &s3Event); err != nil {
			return nil, errors.Wrap(err, "failed to read S3 event")
		}
		return objectsFromS3Event(s3Event)

	case eventSourceSQS:
		sqsEvent := events.SQSEvent{}
		if err := json.Unmarshal(data, &sqsEvent); err != nil {
			return nil, errors.Wrap(err, "failed to read SQS event")
		}

		result := []ObjectRef{}
		for _, msg := range sqsEvent.Records {
			s3Event := events.S3Event{}
			if err := json.Unmarshal([]byte(msg.Body), &s3Event); err != nil {
				return nil, errors.Wrapf(err, "failed to decode SQS message %v as an S3 event", msg.MessageId)
			}
			if len(s3Event.Records) <= 0 {
				return nil, errors.Errorf("SQS message %v holds no S3 records", msg.MessageId)
			}

			refs, err := objectsFromS3Event(s3Event)
			if err != nil {
				return nil, err
			}
			result = append(result, refs...)
		}
		return result, nil
	}

	return nil, errors.Errorf("unsupported event source: %q", source)
}

// Keys arrive URL encoded, spaces as +
func objectsFromS3Event(s3Event events.S3Event) ([]ObjectRef, error) {
	result := make([]ObjectRef, 0, len(s3Event.Records))
	for _, rec := range s3Event.Records {
		key, err := url.QueryUnescape(rec.S3.Object.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "bad object key: %v", rec.S3.Object.Key)
		}

		result = append(result, ObjectRef{Bucket: rec.S3.Bucket.Name, Key: key, Region: rec.AWSRegion})
	}
	return result, nil
}
