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
// Create: 2026-03-09
// Description: This file routes klog output of embedded libraries into qosguard log

package log

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"k8s.io/klog/v2"
)

// klogDebugVerbosity is the klog verbosity forwarded when qosguard runs at debug level
const klogDebugVerbosity = 4

// NewLogr returns a logr.Logger whose records are written by qosguard log
func NewLogr(name string) logr.Logger {
	opts := funcr.Options{}
	if DebugEnabled() {
		opts.Verbosity = klogDebugVerbosity
	}
	return funcr.New(func(prefix, args string) {
		if prefix == "" {
			Infof("%s", args)
			return
		}
		Infof("%s: %s", prefix, args)
	}, opts).WithName(name)
}

// RedirectKlog makes cadvisor and client-go, which log through klog, write into qosguard log
func RedirectKlog() {
	klog.SetLogger(NewLogr("klog"))
}
