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
// Description: This file is used for testing file helpers

package util

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadSmallFile tests ReadSmallFile
func TestReadSmallFile(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "cpu.stat")
	require.NoError(t, ioutil.WriteFile(regular, []byte("usage_usec 100\n"), 0600))
	big := filepath.Join(dir, "big")
	require.NoError(t, ioutil.WriteFile(big, make([]byte, fileMaxSize+1), 0600))

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "TC1-regular file", path: regular, want: "usage_usec 100\n"},
		{name: "TC2-not exist", path: filepath.Join(dir, "none"), wantErr: true},
		{name: "TC3-directory", path: dir, wantErr: true},
		{name: "TC4-too big", path: big, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadSmallFile(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

// TestLockFile tests that a second lock on the same file fails until the first is removed
func TestLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "qosguard.lock")
	lock, err := CreateLockFile(path)
	require.NoError(t, err)
	assert.True(t, PathExist(path))

	_, err = CreateLockFile(path)
	assert.Error(t, err)

	RemoveLockFile(lock, path)
	assert.False(t, PathExist(path))

	lock, err = CreateLockFile(path)
	require.NoError(t, err)
	RemoveLockFile(lock, path)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
