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
// Create: 2026-03-19
// Description: This file defines the record of one tick

package typedef

import "time"

// TickReport records the outcome of one tick
type TickReport struct {
	ID          string         `json:"id"`
	Start       time.Time      `json:"start"`
	Duration    time.Duration  `json:"duration"`
	Source      string         `json:"source"`
	Records     int            `json:"records"`
	Contentions Contentions    `json:"contentions"`
	Corrections QoSCorrections `json:"corrections"`
	Error       string         `json:"error,omitempty"`
}
