// Copyright (c) Huawei Technologies Co., Ltd. 2026. All rights reserved.
// qosguard licensed under the Mulan PSL v2.
// You can use this software according to the terms and conditions of the Mulan PSL v2.
// You may obtain a copy of Mulan PSL v2 at:
//     http://license.coscl.org.cn/MulanPSL2
// THIS SOFTWARE IS PROVIDED ON AN "AS IS" BASIS, WITHOUT WARRANTIES OF ANY KIND, EITHER EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO NON-INFRINGEMENT, MERCHANTABILITY OR FIT FOR A PARTICULAR
// PURPOSE.
// See the Mulan PSL v2 for more details.
// Author: qosguard team
// Create: 2026-03-03
// Description: filepath related common functions

package util

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"isula.org/qosguard/pkg/common/constant"
	"isula.org/qosguard/pkg/common/log"
)

// fileMaxSize bounds the files read as a whole, 10MB
const fileMaxSize = 10 * 1024 * 1024

// PathExist returns true if the path exists
func PathExist(path string) bool {
	if _, err := os.Lstat(path); err != nil {
		return false
	}
	return true
}

// ReadSmallFile reads a regular file smaller than 10MB
func ReadSmallFile(path string) ([]byte, error) {
	st, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if !st.Mode().IsRegular() {
		return nil, errors.Errorf("%s is not a regular file", path)
	}
	if st.Size() > fileMaxSize {
		return nil, errors.Errorf("file %s too big", path)
	}
	return ioutil.ReadFile(path) // nolint: gosec
}

// CreateLockFile creates the lock file and takes an exclusive, non blocking flock on it
func CreateLockFile(p string) (*os.File, error) {
	path := filepath.Clean(p)
	if err := os.MkdirAll(filepath.Dir(path), constant.DefaultDirMode); err != nil {
		return nil, err
	}

	lock, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, constant.DefaultFileMode)
	if err != nil {
		return nil, err
	}

	if err = unix.Flock(int(lock.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		log.DropError(lock.Close())
		return nil, errors.Wrapf(err, "lock %s", path)
	}
	return lock, nil
}

// RemoveLockFile releases and removes the lock file.
// Errors are dropped so that the rest of the cleanup still runs.
func RemoveLockFile(lock *os.File, path string) {
	log.DropError(unix.Flock(int(lock.Fd()), unix.LOCK_UN))
	log.DropError(lock.Close())
	log.DropError(os.Remove(path))
}
