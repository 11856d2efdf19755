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

package fileaccess

import (
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/sectiontrace/core/core/awsutil"
)

const s3Scheme = "s3://"

// Location - where a converter reads or writes. Bucket is empty for local paths.
type Location struct {
	Bucket string
	Path   string
}

func (l Location) IsS3() bool {
	return len(l.Bucket) > 0
}

func (l Location) Join(elem ...string) Location {
	return Location{Bucket: l.Bucket, Path: path.Join(append([]string{l.Path}, elem...)...)}
}

func (l Location) String() string {
	if l.IsS3() {
		return s3Scheme + l.Bucket + "/" + l.Path
	}
	return l.Path
}

// ParseLocation accepts s3://bucket/path or a local path
func ParseLocation(url string) (Location, error) {
	if !strings.HasPrefix(url, s3Scheme) {
		return Location{Path: url}, nil
	}

	bucket, err := GetBucketFromS3Url(url)
	if err != nil {
		return Location{}, err
	}
	p, err := GetPathFromS3Url(url)
	if err != nil {
		return Location{}, err
	}
	return Location{Bucket: bucket, Path: p}, nil
}

// ForLocation makes the FileAccess to use with l. sess is only needed for S3 locations
// and is made on demand if nil.
func ForLocation(l Location, sess *session.Session) (FileAccess, error) {
	if !l.IsS3() {
		return &FSAccess{}, nil
	}

	if sess == nil {
		var err error
		if sess, err = awsutil.GetSession(); err != nil {
			return nil, err
		}
	}
	return MakeS3Access(awsutil.GetS3(sess)), nil
}

func GetBucketFromS3Url(url string) (string, error) {
	trimmedUrl := strings.TrimPrefix(url, s3Scheme)
	if trimmedUrl == url {
		return "", fmt.Errorf("not a valid S3 url: %v", url)
	}

	slashPos := strings.Index(trimmedUrl, "/")
	if slashPos == 0 || len(trimmedUrl) <= 0 {
		return "", fmt.Errorf("failed to get bucket from S3 url: %v", url)
	}
	if slashPos < 0 {
		return trimmedUrl, nil
	}
	return trimmedUrl[0:slashPos], nil
}

// GetPathFromS3Url - the key part of the URL, empty if it's just a bucket
func GetPathFromS3Url(url string) (string, error) {
	trimmedUrl := strings.TrimPrefix(url, s3Scheme)
	if trimmedUrl == url {
		return "", fmt.Errorf("not a valid S3 url: %v", url)
	}

	slashPos := strings.Index(trimmedUrl, "/")
	if slashPos == 0 {
		return "", fmt.Errorf("failed to get path from S3 url: %v", url)
	}
	if slashPos < 0 {
		return "", nil
	}
	return trimmedUrl[slashPos+1:], nil
}
