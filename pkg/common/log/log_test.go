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
// Create: 2026-03-02
// Description: This file is used for testing qosguard log

// Package log is the leveled logger of qosguard
package log

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"isula.org/qosguard/pkg/common/constant"
)

func writeFile(t *testing.T, path, content string) {
	assert.NoError(t, os.MkdirAll(filepath.Dir(path), constant.DefaultDirMode))
	assert.NoError(t, ioutil.WriteFile(path, []byte(content), constant.DefaultFileMode))
}

// test_qosguard_set_logdriver_0001
func TestInitConfigLogDriver(t *testing.T) {
	logDir := t.TempDir()
	logFilePath := filepath.Join(logDir, constant.LogFileName)

	// case: the log file already exists.
	writeFile(t, logFilePath, "")
	err := InitConfig("file", logDir, "", logSize)
	assert.NoError(t, err)

	err = os.RemoveAll(logDir)
	assert.NoError(t, err)

	// logDriver is file
	err = InitConfig("file", logDir, "", logSize)
	assert.NoError(t, err)
	assert.Equal(t, file, logDriver)
	logString := "Test InitConfig with logDriver file"
	Infof(logString)
	b, err := ioutil.ReadFile(logFilePath)
	assert.NoError(t, err)
	assert.Equal(t, true, strings.Contains(string(b), logString))

	// logDriver is stdio
	os.Remove(logFilePath)
	err = InitConfig("stdio", logDir, "", logSize)
	assert.NoError(t, err)
	assert.Equal(t, stdio, logDriver)
	logString = "Test InitConfig with logDriver stdio"
	Infof(logString)
	_, err = ioutil.ReadFile(logFilePath)
	assert.Equal(t, true, err != nil)

	// logDriver invalid
	err = InitConfig("std", logDir, "", logSize)
	assert.Equal(t, true, err != nil)

	// logDriver is null
	err = InitConfig("", logDir, "", logSize)
	assert.NoError(t, err)
	assert.Equal(t, stdio, logDriver)
}

// test_qosguard_set_logdir_0001
func TestInitConfigLogDir(t *testing.T) {
	logDir := t.TempDir()
	logFilePath := filepath.Join(logDir, constant.LogFileName)

	// LogDir valid
	err := InitConfig("file", logDir, "", logSize)
	assert.NoError(t, err)
	logString := "Test InitConfig with logDir valid"
	Infof(logString)
	b, err := ioutil.ReadFile(logFilePath)
	assert.NoError(t, err)
	assert.Equal(t, true, strings.Contains(string(b), logString))

	// logDir invalid
	err = InitConfig("file", "invalid/log", "", logSize)
	assert.Equal(t, true, err != nil)
}

type logTC struct {
	name, logLevel              string
	wantErr, debug, info, error bool
}

func createLogTC() []logTC {
	return []logTC{
		{
			name:     "TC1-logLevel debug",
			logLevel: "debug",
			wantErr:  false,
			debug:    true,
			info:     true,
			error:    true,
		},
		{
			name:     "TC2-logLevel info",
			logLevel: "info",
			wantErr:  false,
			debug:    false,
			info:     true,
			error:    true,
		},
		{
			name:     "TC3-logLevel error",
			logLevel: "error",
			wantErr:  false,
			debug:    false,
			info:     false,
			error:    true,
		},
		{
			name:     "TC4-logLevel null",
			logLevel: "",
			wantErr:  false,
			debug:    false,
			info:     true,
			error:    true,
		},
		{
			name:     "TC5-logLevel invalid",
			logLevel: "inf",
			wantErr:  true,
		},
	}
}

// test_qosguard_set_loglevel_0001
func TestInitConfigLogLevel(t *testing.T) {
	logDir := t.TempDir()
	logFilePath := filepath.Join(logDir, constant.LogFileName)

	debugLogSting, infoLogSting, errorLogSting, logLogString := "Test InitConfig debug log",
		"Test InitConfig info log", "Test InitConfig error log", "Test InitConfig log log"
	for _, tt := range createLogTC() {
		t.Run(tt.name, func(t *testing.T) {
			err := InitConfig("file", logDir, tt.logLevel, logSize)
			if (err != nil) != tt.wantErr {
				t.Errorf("InitConfig() = %v, want %v", err, tt.wantErr)
			} else if tt.wantErr == false {
				Debugf(debugLogSting)
				Infof(infoLogSting)
				Errorf(errorLogSting)
				Infof(logLogString)
				b, err := ioutil.ReadFile(logFilePath)
				assert.NoError(t, err)
				assert.Equal(t, tt.debug, strings.Contains(string(b), debugLogSting))
				assert.Equal(t, tt.info, strings.Contains(string(b), infoLogSting))
				assert.Equal(t, tt.info, strings.Contains(string(b), logLogString))
				assert.Equal(t, tt.error, strings.Contains(string(b), errorLogSting))
				os.Remove(logFilePath)

				ctx := context.WithValue(context.Background(), CtxKey(constant.LogEntryKey), "abc123")
				WithCtx(ctx).Debugf(debugLogSting)
				WithCtx(ctx).Infof(infoLogSting)
				WithCtx(ctx).Errorf(errorLogSting)
				WithCtx(ctx).Warnf(logLogString)
				b, err = ioutil.ReadFile(logFilePath)
				assert.NoError(t, err)
				assert.Equal(t, tt.debug, strings.Contains(string(b), debugLogSting))
				assert.Equal(t, tt.info, strings.Contains(string(b), infoLogSting))
				assert.Equal(t, tt.error, strings.Contains(string(b), errorLogSting))
				assert.Equal(t, tt.info, strings.Contains(string(b), logLogString))
				assert.Equal(t, true, strings.Contains(string(b), "abc123"))
				err = os.RemoveAll(logDir)
				assert.NoError(t, err)
			}
		})
	}
}

// test_qosguard_set_logsize_0001
func TestInitConfigLogSize(t *testing.T) {
	logDir := t.TempDir()
	// LogSize invalid
	err := InitConfig("file", logDir, "", logSizeMin-1)
	assert.Equal(t, true, err != nil)
	err = InitConfig("file", logDir, "", logSizeMax+1)
	assert.Equal(t, true, err != nil)

	// logSize valid
	testSize, printLine, repeat := 100, 50000, 100
	err = InitConfig("file", logDir, "", logSize)
	assert.NoError(t, err)
	for i := 0; i < printLine; i++ {
		Infof(strings.Repeat("TestInitConfigLogSize log", repeat))
	}
	err = InitConfig("file", logDir, "", int64(testSize))
	assert.NoError(t, err)
	for i := 0; i < printLine; i++ {
		Infof(strings.Repeat("TestInitConfigLogSize log", repeat))
	}
	var size int64
	err = filepath.Walk(logDir, func(_ string, f os.FileInfo, _ error) error {
		size += f.Size()
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, true, size < int64(testSize)*unitMB)
}

// TestLogStack is Stackf function test
func TestLogStack(t *testing.T) {
	logDir := t.TempDir()
	logFilePath := filepath.Join(logDir, constant.LogFileName)

	err := InitConfig("file", logDir, "", logSize)
	assert.NoError(t, err)
	Stackf("test stack log")
	b, err := ioutil.ReadFile(logFilePath)
	assert.NoError(t, err)
	fmt.Println(string(b))
	assert.Equal(t, true, strings.Contains(string(b), t.Name()))
	line := strings.Split(string(b), "\n")
	maxLineNum := 5
	assert.Equal(t, true, len(line) < maxLineNum)
}

// TestDropError is DropError function test
func TestDropError(t *testing.T) {
	logDir := t.TempDir()
	logFilePath := filepath.Join(logDir, constant.LogFileName)

	err := InitConfig("file", logDir, "", logSize)
	assert.NoError(t, err)
	DropError()
	dropError := "test drop error"
	DropError(dropError)
	DropError(nil)
	_, err = ioutil.ReadFile(logFilePath)
	assert.Equal(t, true, err != nil)
}

// TestLogOthers is log other tests
func TestLogOthers(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "regular-file")
	writeFile(t, logDir, "")

	err := makeLogDir(logDir)
	assert.Equal(t, true, err != nil)

	const outOfRangeLogLevel = 100
	s := levelToString(outOfRangeLogLevel)
	assert.Equal(t, "", s)
	const stackLoglevel = 20
	s = levelToString(stackLoglevel)
	assert.Equal(t, "stack", s)

	logDriver = file
	logFname = filepath.Join(t.TempDir(), "log-not-exist")
	os.MkdirAll(logFname, constant.DefaultDirMode)
	writeLine("abc")

	logLevel = logError + 1
	WithCtx(context.Background()).Errorf("abc")
	logLevel = logInfo
	logDriver = stdio
}

// TestWithCtx tests that context values are carried into log lines
func TestWithCtx(t *testing.T) {
	logDir := t.TempDir()
	logFilePath := filepath.Join(logDir, constant.LogFileName)
	assert.NoError(t, InitConfig("file", logDir, "", logSize))
	defer func() {
		assert.NoError(t, InitConfig("stdio", "", "", logSize))
	}()

	ctx := context.WithValue(context.Background(), CtxKey(constant.LogEntryKey), "engine")
	ctx = context.WithValue(ctx, CtxKey(constant.LogTickKey), "0b6b3f5e")
	WithCtx(ctx).Warnf("tick finished")
	WithCtx(context.Background()).Infof("plain line")

	b, err := ioutil.ReadFile(logFilePath)
	assert.NoError(t, err)
	assert.Contains(t, string(b), "module=engine tick=0b6b3f5e tick finished")
	assert.Contains(t, string(b), "plain line")
}

// TestNewLogr tests the logr sink used for klog
func TestNewLogr(t *testing.T) {
	logDir := t.TempDir()
	logFilePath := filepath.Join(logDir, constant.LogFileName)
	assert.NoError(t, InitConfig("file", logDir, "", logSize))
	defer func() {
		assert.NoError(t, InitConfig("stdio", "", "", logSize))
	}()

	NewLogr("cadvisor").Info("housekeeping started", "container", "/kubepods")
	b, err := ioutil.ReadFile(logFilePath)
	assert.NoError(t, err)
	assert.Contains(t, string(b), "cadvisor")
	assert.Contains(t, string(b), "housekeeping started")
}
