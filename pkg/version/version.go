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
// Create: 2026-03-20
// Description: This file contains the build information of qosguard

// Package version is for version check
package version

import (
	"fmt"
	"io"
	"runtime"
)

var (
	// Version represents qosguard version
	Version string
	// Release represents qosguard release number
	Release string
	// GitCommit represents git commit number
	GitCommit string
	// BuildTime represents build time
	BuildTime string
)

// Print writes the build information to w
func Print(w io.Writer) {
	fmt.Fprintln(w, "Version:      ", Version)
	fmt.Fprintln(w, "Release:      ", Release)
	fmt.Fprintln(w, "Go Version:   ", runtime.Version())
	fmt.Fprintln(w, "Git Commit:   ", GitCommit)
	fmt.Fprintln(w, "Built:        ", BuildTime)
	fmt.Fprintln(w, "OS/Arch:      ", runtime.GOOS+"/"+runtime.GOARCH)
}
