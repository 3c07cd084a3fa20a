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
// Create: 2026-03-18
// Description: This file contains configuration content and provides external interaction functions

// Package config is used to manage the configuration of qosguard
package config

import (
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/common/constant"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/common/util"
	"isula.org/qosguard/pkg/core/engine"
	"isula.org/qosguard/pkg/core/trigger"
	"isula.org/qosguard/pkg/core/typedef/cgroup"
	"isula.org/qosguard/pkg/core/typedef/cgroup/cgroupfs"
	"isula.org/qosguard/pkg/lib/schedule"
	"isula.org/qosguard/pkg/resource"
)

// top-level sections of the configuration file
const (
	agentKey       = "agent"
	detectorKey    = "detector"
	registryKey    = "registry"
	aggregatorKey  = "aggregator"
	deciderKey     = "decider"
	sourceKey      = "source"
	scheduleKey    = "schedule"
	serverKey      = "server"
	enforcementKey = "enforcement"
)

const maxPerfDuration = 1000

// Config saves all configuration information of qosguard
type Config struct {
	api.ConfigParser
	Agent       *AgentConfig
	Engine      *engine.Config
	Source      *SourceConfig
	Schedule    string
	Server      *ServerConfig
	Enforcement *trigger.Config
	Fields      map[string]interface{}
}

// AgentConfig is the configuration of qosguard, including important basic configurations such as logs
type AgentConfig struct {
	LogDriver  string `json:"logDriver,omitempty"`
	LogLevel   string `json:"logLevel,omitempty"`
	LogSize    int64  `json:"logSize,omitempty"`
	LogDir     string `json:"logDir,omitempty"`
	CgroupRoot string `json:"cgroupRoot,omitempty"`
	// CgroupDriver is the cgroup driver of the kubelet, cgroupfs or systemd
	CgroupDriver string `json:"cgroupDriver,omitempty"`
	// NodeName falls back to the QOSGUARD_NODE_NAME environment variable when empty
	NodeName string `json:"nodeName,omitempty"`
}

// SourceConfig selects the usage source
type SourceConfig struct {
	Type string `json:"type,omitempty"`
	// PerfDuration is the perf sampling time in milliseconds of each pod per tick, 0 disables it.
	// Only the cgroupfs source counts perf events.
	PerfDuration int `json:"perfDuration,omitempty"`
}

// ServerConfig is the configuration of the http server
type ServerConfig struct {
	Addr string `json:"addr,omitempty"`
}

// NewConfig returns an config object pointer
func NewConfig(pType parserType) *Config {
	return &Config{
		ConfigParser: defaultParserFactory.getParser(pType),
		Agent: &AgentConfig{
			LogDriver:    constant.LogDriverStdio,
			LogSize:      constant.DefaultLogSize,
			LogLevel:     constant.DefaultLogLevel,
			LogDir:       constant.DefaultLogDir,
			CgroupRoot:   constant.DefaultCgroupRoot,
			CgroupDriver: cgroupfs.Name,
		},
		Engine:      engine.NewConfig(),
		Source:      &SourceConfig{Type: resource.SourceCadvisor},
		Schedule:    constant.DefaultSchedule,
		Server:      &ServerConfig{Addr: constant.DefaultServerAddr},
		Enforcement: trigger.NewConfig(),
	}
}

// LoadConfig loads and parses configuration data from the file, and save it to the Config
func (c *Config) LoadConfig(path string) error {
	if path == "" {
		path = constant.ConfigFile
	}
	data, err := util.ReadSmallFile(path)
	if err != nil {
		return errors.Wrapf(err, "error loading config file %s", path)
	}
	return c.Load(data)
}

// Load checks data against the schema, then parses it over the defaults and validates the result
func (c *Config) Load(data []byte) error {
	if err := validateSchema(data); err != nil {
		return errors.Wrap(err, "error checking config")
	}
	fields, err := c.ParseConfig(data)
	if err != nil {
		return errors.Wrap(err, "error parsing data")
	}
	c.Fields = fields
	if err := c.parseSections(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	log.Debugf("config loaded: sections %v", len(fields))
	return nil
}

// parseSections unmarshals every section present over its defaulted struct
func (c *Config) parseSections() error {
	sections := map[string]interface{}{
		agentKey:       c.Agent,
		detectorKey:    c.Engine.Detector,
		registryKey:    c.Engine.Registry,
		aggregatorKey:  c.Engine.Aggregator,
		deciderKey:     c.Engine.Decider,
		sourceKey:      c.Source,
		serverKey:      c.Server,
		enforcementKey: c.Enforcement,
	}
	for name, v := range sections {
		content, ok := c.Fields[name]
		if !ok {
			continue
		}
		if err := c.UnmarshalSubConfig(content, v); err != nil {
			return errors.Wrapf(err, "error unmarshaling %s config", name)
		}
	}
	if content, ok := c.Fields[scheduleKey]; ok {
		spec, ok := content.(string)
		if !ok {
			return errors.Errorf("invalid type %T of %s", content, scheduleKey)
		}
		c.Schedule = spec
	}
	return nil
}

// Validate verifies the sections of the configuration
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if _, err := cgroup.NewDriver(c.Agent.CgroupDriver); err != nil {
		return err
	}
	switch c.Source.Type {
	case resource.SourceCadvisor, resource.SourceCgroupfs, resource.SourceMetricsServer:
	default:
		return errors.Errorf("source type should be one of %q, %q, %q",
			resource.SourceCadvisor, resource.SourceCgroupfs, resource.SourceMetricsServer)
	}
	if c.Source.PerfDuration < 0 || c.Source.PerfDuration > maxPerfDuration {
		return errors.Errorf("perfDuration should in the range [0, %v]", maxPerfDuration)
	}
	if _, err := schedule.Parse(c.Schedule); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return errors.New("server addr should not be empty")
	}
	return nil
}
