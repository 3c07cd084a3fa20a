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
// Description: This file contains the interfaces the http server depends on

package httpserver

import "isula.org/qosguard/pkg/core/typedef"

// controller is the daemon state served over http
type controller interface {
	Healthy() bool
	Ready() bool
	LastTick() (*typedef.TickReport, bool)
	ResetDetector(id typedef.EntityIdentity) error
	ForceResetDetector(id typedef.EntityIdentity) error
}
