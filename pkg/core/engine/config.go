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
// Create: 2026-03-12
// Description: This file defines the engine configuration

package engine

import (
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/core/decider"
	"isula.org/qosguard/pkg/core/detector"
	"isula.org/qosguard/pkg/core/registry"
)

// aggregator modes
const (
	ModeSingle = "single"
	ModeJoined = "joined"
)

const maxIgnoreYoungerThan = 24 * 3600

// RegistryConfig configures the detector registry
type RegistryConfig struct {
	Extractor  string `json:"extractor,omitempty"`
	StaleTicks int    `json:"staleTicks,omitempty"`
}

// AggregatorConfig configures the contention aggregator
type AggregatorConfig struct {
	Mode         string `json:"mode,omitempty"`
	HostOverload bool   `json:"hostOverload,omitempty"`
	// Host names the host identity of overload contentions
	Host string `json:"-"`
}

// DeciderConfig configures the correction decider
type DeciderConfig struct {
	Policy          string  `json:"policy,omitempty"`
	DefaultSeverity float64 `json:"defaultSeverity,omitempty"`
	// IgnoreYoungerThan drops entities started less than so many seconds ago, 0 disables it
	IgnoreYoungerThan float64 `json:"ignoreYoungerThan,omitempty"`
}

// Config is the configuration of the engine
type Config struct {
	Detector   *detector.Config
	Registry   *RegistryConfig
	Aggregator *AggregatorConfig
	Decider    *DeciderConfig
}

// NewConfig returns the default configuration
func NewConfig() *Config {
	return &Config{
		Detector: detector.NewConfig(),
		Registry: &RegistryConfig{
			Extractor: registry.ExtractorCPUUsage,
		},
		Aggregator: &AggregatorConfig{
			Mode: ModeSingle,
			Host: "localhost",
		},
		Decider: &DeciderConfig{
			Policy:          decider.PolicySeniority,
			DefaultSeverity: decider.DefaultSeverity,
		},
	}
}

// Validate verifies the sections that no constructor checks
func (conf *Config) Validate() error {
	if conf.Detector == nil || conf.Registry == nil || conf.Aggregator == nil || conf.Decider == nil {
		return errors.New("engine config is incomplete")
	}
	if err := conf.Detector.Validate(); err != nil {
		return err
	}
	if conf.Registry.StaleTicks < 0 {
		return errors.New("staleTicks should not be negative")
	}
	switch conf.Aggregator.Mode {
	case ModeSingle:
	case ModeJoined:
		if conf.Aggregator.HostOverload {
			return errors.New("hostOverload is only supported in single mode")
		}
	default:
		return errors.Errorf("mode should be one of %q, %q", ModeSingle, ModeJoined)
	}
	if conf.Decider.IgnoreYoungerThan < 0 || conf.Decider.IgnoreYoungerThan > maxIgnoreYoungerThan {
		return errors.Errorf("ignoreYoungerThan should in the range [0, %v]", maxIgnoreYoungerThan)
	}
	return nil
}
