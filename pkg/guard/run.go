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
// Description: This file manages the lifecycle of the qosguard process

package guard

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"isula.org/qosguard/pkg/common/constant"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/common/util"
	"isula.org/qosguard/pkg/config"
	"isula.org/qosguard/pkg/core/typedef/cgroup"
)

// Run starts qosguard with the configuration file and returns the exit code
func Run(fcfg string) int {
	unix.Umask(constant.DefaultUmask)
	lock, err := util.CreateLockFile(constant.LockFile)
	if err != nil {
		fmt.Printf("set qosguard lock failed: %v, check if there is another qosguard running\n", err)
		return constant.RepeatRunExitCode
	}
	defer util.RemoveLockFile(lock, constant.LockFile)
	return run(fcfg)
}

func run(fcfg string) int {
	c := config.NewConfig(config.JSON)
	if err := c.LoadConfig(fcfg); err != nil {
		fmt.Printf("load config failed: %v\n", err)
		return constant.ArgumentErrorExitCode
	}
	if err := log.InitConfig(c.Agent.LogDriver, c.Agent.LogDir, c.Agent.LogLevel, c.Agent.LogSize); err != nil {
		fmt.Printf("init log failed: %v\n", err)
		return constant.ArgumentErrorExitCode
	}
	log.RedirectKlog()
	util.CgroupRoot = c.Agent.CgroupRoot
	if err := cgroup.SetDriver(c.Agent.CgroupDriver); err != nil {
		log.Errorf("failed to set cgroup driver: %v", err)
		return constant.ArgumentErrorExitCode
	}

	g, err := NewFromConfig(c)
	if err != nil {
		log.Errorf("failed to build qosguard: %v", err)
		return constant.ErrorExitCode
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := g.Start(ctx); err != nil {
		log.Errorf("failed to start qosguard: %v", err)
		log.DropError(g.Stop())
		return constant.ErrorExitCode
	}
	<-ctx.Done()
	if err := g.Stop(); err != nil {
		log.Errorf("failed to stop qosguard: %v", err)
		return constant.ErrorExitCode
	}
	log.Infof("qosguard exit")
	return constant.NormalExitCode
}

// handleSignals cancels on the first SIGINT or SIGTERM and forces the exit on the third
func handleSignals(cancel context.CancelFunc) {
	const forceCount = 3
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	count := 0
	for sig := range signalChan {
		count++
		if count == 1 {
			log.Infof("signal %v received and starting exit...", sig)
			cancel()
		}
		if count >= forceCount {
			log.Infof("%d interrupt signals received, forcing qosguard shutdown", forceCount)
			os.Exit(constant.ErrorExitCode)
		}
	}
}
