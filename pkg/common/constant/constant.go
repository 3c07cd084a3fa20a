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
// Description: This file contains default constants used in the project

// Package constant is for constant definition
package constant

import (
	"os"
	"time"
)

// the files and directories used by the system by default
const (
	// ConfigFile is qosguard config file
	ConfigFile = "/var/lib/qosguard/config.json"
	// LockFile is qosguard lock file
	LockFile = "/run/qosguard/qosguard.lock"
	// DefaultCgroupRoot is mount point
	DefaultCgroupRoot = "/sys/fs/cgroup"
	// TmpTestDir is tmp directory for test
	TmpTestDir = "/tmp/qosguard-test"
)

// kubernetes related configuration
const (
	// KubepodsCgroup is kubepods root cgroup
	KubepodsCgroup = "kubepods"
	// PodCgroupNamePrefix is pod cgroup name prefix
	PodCgroupNamePrefix = "pod"
	// NodeNameEnvKey is node name environment variable key
	NodeNameEnvKey = "QOSGUARD_NODE_NAME"
	// PriorityAnnotationKey is annotation key to mark offline pod
	PriorityAnnotationKey = "volcano.sh/preemptable"
	// HostGroup is the owning group of the identity describing the whole host
	HostGroup = "host"
)

// File permission
const (
	// DefaultUmask is default umask
	DefaultUmask = 0077
	// DefaultFileMode is file mode for cgroup files
	DefaultFileMode os.FileMode = 0600
	// DefaultDirMode is dir default mode
	DefaultDirMode os.FileMode = 0700
	// DefaultDumpLogFileMode is the permission of the log file (recorded or archived)
	DefaultDumpLogFileMode os.FileMode = 0400
)

// log config
const (
	LogDriverStdio  = "stdio"
	LogDriverFile   = "file"
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelError   = "error"
	LogLevelStack   = "stack"
	DefaultLogDir   = "/var/log/qosguard"
	DefaultLogLevel = LogLevelInfo
	DefaultLogSize  = 1024
	// LogFileName is the name of the active log file
	LogFileName = "qosguard.log"
	// LogEntryKey is the key representing the module name in the context
	LogEntryKey = "module"
	// LogTickKey is the key representing the tick id in the context
	LogTickKey = "tick"
)

// exit code
const (
	// NormalExitCode for the normal exit code
	NormalExitCode int = iota
	// ArgumentErrorExitCode for normal failed
	ArgumentErrorExitCode
	// RepeatRunExitCode for repeat run exit
	RepeatRunExitCode
	// ErrorExitCode failed during run
	ErrorExitCode
)

// http server
const (
	// DefaultServerAddr is the listening address of the metrics and control server
	DefaultServerAddr = ":9100"
	// ReadTimeout is the read timeout of the http server
	ReadTimeout = 10 * time.Second
	// WriteTimeout is the write timeout of the http server
	WriteTimeout = 30 * time.Second
	// ShutdownTimeout bounds the graceful shutdown of the http server
	ShutdownTimeout = 5 * time.Second
)

// scheduling
const (
	// DefaultSchedule is the default tick schedule
	DefaultSchedule = "@every 10s"
	// DefaultPopulationPeriod is the refresh period of the pod population cache
	DefaultPopulationPeriod = 5 * time.Second
)
