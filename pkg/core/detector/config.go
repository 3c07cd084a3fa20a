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
// Create: 2026-03-06
// Description: This file is used for detector configuration

package detector

import (
	"github.com/pkg/errors"
)

// Kind selects the detector variant
type Kind string

const (
	// KindDrop detects a sustained drop of the signal
	KindDrop Kind = "drop"
	// KindThreshold detects samples above a fixed utilization threshold
	KindThreshold Kind = "threshold"
)

// DerivedSeverity asks the detector to compute severity from the drop
const DerivedSeverity = -1.0

const (
	// parameter value range
	minWindowSize     = 1
	maxWindowSize     = 1024
	minMaxCheckpoints = 1
	maxMaxCheckpoints = 16
	minCooldown       = 0
	maxCooldown       = 3600

	// default value
	defaultWindowSize           = 10
	defaultMaxCheckpoints       = 3
	defaultFractionalThreshold  = 0.3
	defaultSeverityFraction     = DerivedSeverity
	defaultNearFraction         = 0.1
	defaultQuorum               = 0.7
	defaultAlpha                = 1.0
	defaultUtilizationThreshold = 0.95
	defaultContentionCooldown   = 10
)

// Config is the recognized option set of detectors
type Config struct {
	Kind                 Kind    `json:"kind,omitempty"`
	WindowSize           int     `json:"windowSize,omitempty"`
	MaxCheckpoints       int     `json:"maxCheckpoints,omitempty"`
	FractionalThreshold  float64 `json:"fractionalThreshold,omitempty"`
	SeverityFraction     float64 `json:"severityFraction,omitempty"`
	NearFraction         float64 `json:"nearFraction,omitempty"`
	Quorum               float64 `json:"quorum,omitempty"`
	Alpha                float64 `json:"alpha,omitempty"`
	UtilizationThreshold float64 `json:"utilizationThreshold,omitempty"`
	ContentionCooldown   int     `json:"contentionCooldown,omitempty"`
}

// NewConfig returns the default detector configuration
func NewConfig() *Config {
	return &Config{
		Kind:                 KindDrop,
		WindowSize:           defaultWindowSize,
		MaxCheckpoints:       defaultMaxCheckpoints,
		FractionalThreshold:  defaultFractionalThreshold,
		SeverityFraction:     defaultSeverityFraction,
		NearFraction:         defaultNearFraction,
		Quorum:               defaultQuorum,
		Alpha:                defaultAlpha,
		UtilizationThreshold: defaultUtilizationThreshold,
		ContentionCooldown:   defaultContentionCooldown,
	}
}

// Validate verifies that the detector parameters are set correctly
func (conf *Config) Validate() error {
	switch conf.Kind {
	case KindDrop, KindThreshold:
	default:
		return errors.Errorf("kind should be one of %q, %q", KindDrop, KindThreshold)
	}
	if conf.WindowSize < minWindowSize || conf.WindowSize > maxWindowSize {
		return errors.Errorf("windowSize should in the range [%v, %v]", minWindowSize, maxWindowSize)
	}
	if conf.MaxCheckpoints < minMaxCheckpoints || conf.MaxCheckpoints > maxMaxCheckpoints {
		return errors.Errorf("maxCheckpoints should in the range [%v, %v]", minMaxCheckpoints, maxMaxCheckpoints)
	}
	if conf.FractionalThreshold <= 0 || conf.FractionalThreshold > 1 {
		return errors.New("fractionalThreshold should in the range (0, 1]")
	}
	if conf.SeverityFraction != DerivedSeverity && (conf.SeverityFraction < 0 || conf.SeverityFraction > 1) {
		return errors.New("severityFraction should be -1 or in the range [0, 1]")
	}
	if conf.NearFraction < 0 || conf.NearFraction >= 1 {
		return errors.New("nearFraction should in the range [0, 1)")
	}
	if conf.Quorum <= 0 || conf.Quorum > 1 {
		return errors.New("quorum should in the range (0, 1]")
	}
	if conf.Alpha <= 0 || conf.Alpha > 1 {
		return errors.New("alpha should in the range (0, 1]")
	}
	if conf.UtilizationThreshold <= 0 || conf.UtilizationThreshold > 1 {
		return errors.New("utilizationThreshold should in the range (0, 1]")
	}
	if conf.ContentionCooldown < minCooldown || conf.ContentionCooldown > maxCooldown {
		return errors.Errorf("contentionCooldown should in the range [%v, %v]", minCooldown, maxCooldown)
	}
	return nil
}

// overrideSeverity reports whether SeverityFraction replaces the derived severity
func (conf *Config) overrideSeverity() bool {
	return conf.SeverityFraction != DerivedSeverity
}
