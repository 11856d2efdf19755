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
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const ErrNoMoreInputsExpected = "No more inputs expected for "
const ErrWrongInput = "Incorrect input in "
const ErrNothingToReturn = "Nothing to return from "

// MockS3Client - S3 client for unit tests. Each call must match the next Exp*Input, and
// is answered with the next Queued*Output, where a nil output is returned as a NotFound
// style error. Call FinishTest() at the end of the test to check nothing was left over.
type MockS3Client struct {
	mutex sync.Mutex

	s3iface.S3API

	ExpListObjectsV2Input []s3.ListObjectsV2Input
	ExpHeadObjectInput    []s3.HeadObjectInput
	ExpGetObjectInput     []s3.GetObjectInput
	ExpPutObjectInput     []s3.PutObjectInput

	QueuedListObjectsV2Output []*s3.ListObjectsV2Output
	QueuedHeadObjectOutput    []*s3.HeadObjectOutput
	QueuedGetObjectOutput     []*s3.GetObjectOutput
	QueuedPutObjectOutput     []*s3.PutObjectOutput
}

// FinishTest returns an error (and prints it, for example tests) if any expected call
// wasn't made
func (m *MockS3Client) FinishTest() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	err := m.getFinishTestResult()
	if err != nil {
		fmt.Println(err)
	}
	return err
}

func (m *MockS3Client) getFinishTestResult() error {
	left := map[string]int{
		"ListObjectsV2": len(m.ExpListObjectsV2Input) + len(m.QueuedListObjectsV2Output),
		"HeadObject":    len(m.ExpHeadObjectInput) + len(m.QueuedHeadObjectOutput),
		"GetObject":     len(m.ExpGetObjectInput) + len(m.QueuedGetObjectOutput),
		"PutObject":     len(m.ExpPutObjectInput) + len(m.QueuedPutObjectOutput),
	}
	for _, name := range []string{"ListObjectsV2", "HeadObject", "GetObject", "PutObject"} {
		if left[name] > 0 {
			return fmt.Errorf("Test expected more %v calls", name)
		}
	}
	return nil
}

// Pops the next expected input and queued output, checking the input matches. The
// AWS input types all have String() which prints every set field.
func nextCall[I fmt.Stringer, O any](name string, input I, expected *[]I, outputs *[]*O) (*O, error) {
	if len(*expected) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	exp := (*expected)[0]
	*expected = (*expected)[1:]

	if exp.String() != input.String() {
		return nil, fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"", ErrWrongInput+name, exp.String(), input.String())
	}

	if len(*outputs) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := (*outputs)[0]
	*outputs = (*outputs)[1:]
	return result, nil
}

func (m *MockS3Client) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result, err := nextCall("ListObjectsV2", *input, &m.ExpListObjectsV2Input, &m.QueuedListObjectsV2Output)
	if err == nil && result == nil {
		err = awserr.New(s3.ErrCodeNoSuchBucket, "Returning error from ListObjectsV2", nil)
	}
	return result, err
}

func (m *MockS3Client) HeadObject(input *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result, err := nextCall("HeadObject", *input, &m.ExpHeadObjectInput, &m.QueuedHeadObjectOutput)
	if err == nil && result == nil {
		// HeadObject has no body, so S3 can only say "NotFound"
		err = awserr.New("NotFound", "Returning error from HeadObject", nil)
	}
	return result, err
}

func (m *MockS3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	result, err := nextCall("GetObject", *input, &m.ExpGetObjectInput, &m.QueuedGetObjectOutput)
	if err == nil && result == nil {
		err = awserr.New(s3.ErrCodeNoSuchKey, "Returning error from GetObject", nil)
	}
	return result, err
}

// PutObject compares bucket, key and body. The body is a reader, so it's not in String()
func (m *MockS3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "PutObject"
	if len(m.ExpPutObjectInput) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	exp := m.ExpPutObjectInput[0]
	m.ExpPutObjectInput = m.ExpPutObjectInput[1:]

	if *input.Bucket != *exp.Bucket || *input.Key != *exp.Key {
		return nil, fmt.Errorf("%v expected: \"%v/%v\" S3 recvd: \"%v/%v\"", ErrWrongInput+name, *exp.Bucket, *exp.Key, *input.Bucket, *input.Key)
	}

	inpBody, expBody := readAll(input.Body), readAll(exp.Body)
	if !bytes.Equal(inpBody, expBody) {
		return nil, fmt.Errorf("%v %v body differs, expected %v bytes, recvd %v bytes", ErrWrongInput+name, *input.Key, len(expBody), len(inpBody))
	}

	if len(m.QueuedPutObjectOutput) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := m.QueuedPutObjectOutput[0]
	m.QueuedPutObjectOutput = m.QueuedPutObjectOutput[1:]
	if result == nil {
		return nil, errors.New("Returning error from " + name)
	}
	return result, nil
}

func readAll(r io.Reader) []byte {
	if r == nil {
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return []byte("ERROR GETTING DATA")
	}
	return data
}
