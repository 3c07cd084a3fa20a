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
// Description: This file implements the stateless threshold detector

package detector

import (
	"isula.org/qosguard/pkg/common/util"
	"isula.org/qosguard/pkg/core/typedef"
)

// thresholdDetector detects every sample above UtilizationThreshold
type thresholdDetector struct {
	conf *Config
}

func newThresholdDetector(conf *Config) *thresholdDetector {
	return &thresholdDetector{conf: conf}
}

// Process emits a detection when the sample exceeds the threshold.
// The derived severity is the share of the sample above the threshold.
func (d *thresholdDetector) Process(s float64) *typedef.Detection {
	if s <= d.conf.UtilizationThreshold {
		return nil
	}
	severity := d.conf.SeverityFraction
	if !d.conf.overrideSeverity() {
		severity = util.Clamp((s-d.conf.UtilizationThreshold)/s, 0, 1)
	}
	return &typedef.Detection{Severity: typedef.Float64(severity)}
}

// Reset is a no-op, the detector keeps no state
func (d *thresholdDetector) Reset() {}
