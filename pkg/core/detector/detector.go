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
// Description: This file defines the detector interface

// Package detector turns a per-entity scalar signal into debounced detections
package detector

import (
	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/core/typedef"
)

// Detector processes one sample per tick.
// Process returns nil when nothing is detected.
type Detector interface {
	Process(sample float64) *typedef.Detection
	Reset()
}

// New returns the detector of the configured kind.
// The configuration is validated and copied, so later changes to conf do not leak in.
func New(conf *Config) (Detector, error) {
	if conf == nil {
		return nil, errors.New("detector config is nil")
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid detector config")
	}
	c := *conf
	switch c.Kind {
	case KindThreshold:
		return newThresholdDetector(&c), nil
	default:
		return newDropDetector(&c), nil
	}
}
