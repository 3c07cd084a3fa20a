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
// Create: 2026-03-14
// Description: This file defines cadvisor config

package cadvisor

import (
	"time"

	"github.com/google/cadvisor/cache/memory"
	"github.com/google/cadvisor/container"
	"github.com/google/cadvisor/manager"
	"github.com/google/cadvisor/utils/sysfs"
)

const (
	defaultCacheAge             = 2 * time.Minute
	defaultHousekeepingInterval = time.Second
	// cpu usage is all a usage snapshot needs, memory comes with it
	defaultMetrics = "cpu,memory"
)

// Config is a set of parameters that control the startup of cadvisor
type Config struct {
	MemCache           *memory.InMemoryCache
	SysFs              sysfs.SysFs
	IncludeMetrics     container.MetricSet
	HousekeepingConfig manager.HouskeepingConfig
}

// ConfigOpt modifies Config
type ConfigOpt func(conf *Config)

// WithCacheAge keeps statistics for cacheAge
func WithCacheAge(cacheAge time.Duration) ConfigOpt {
	return func(conf *Config) {
		conf.MemCache = memory.New(cacheAge, nil)
	}
}

// WithMetrics collects the comma separated metric kinds
func WithMetrics(metrics string) ConfigOpt {
	return func(conf *Config) {
		ms := container.MetricSet{}
		if err := ms.Set(metrics); err == nil {
			conf.IncludeMetrics = ms
		}
	}
}

// WithHousekeepingInterval sets the collection interval
func WithHousekeepingInterval(interval time.Duration) ConfigOpt {
	return func(conf *Config) {
		conf.HousekeepingConfig.Interval = &interval
	}
}

// NewConfig returns the config collecting cpu and memory every second
func NewConfig(opts ...ConfigOpt) *Config {
	var (
		allowDynamic = false
		interval     = defaultHousekeepingInterval
	)
	conf := &Config{
		HousekeepingConfig: manager.HouskeepingConfig{
			AllowDynamic: &allowDynamic,
			Interval:     &interval,
		},
		SysFs:    sysfs.NewRealSysFs(),
		MemCache: memory.New(defaultCacheAge, nil),
	}
	WithMetrics(defaultMetrics)(conf)
	for _, opt := range opts {
		opt(conf)
	}
	return conf
}
