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
// Description: This file is the entrance of qosguard

package main

import (
	"flag"
	"os"

	"isula.org/qosguard/pkg/common/constant"
	"isula.org/qosguard/pkg/guard"
	"isula.org/qosguard/pkg/version"
)

func main() {
	fcfg := flag.String("config", constant.ConfigFile, "path of the configuration file")
	showVersion := flag.Bool("v", false, "print the version and exit")
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
		os.Exit(constant.ArgumentErrorExitCode)
	}
	if *showVersion {
		version.Print(os.Stdout)
		os.Exit(constant.NormalExitCode)
	}
	os.Exit(guard.Run(*fcfg))
}
