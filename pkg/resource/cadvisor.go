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
// Create: 2026-03-15
// Description: This file implements the cadvisor usage source

package resource

import (
	"context"
	"time"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/core/typedef"
	"isula.org/qosguard/pkg/resource/analyze"
	"isula.org/qosguard/pkg/resource/manager/common"
)

// CadvisorSource reads pod statistics collected by the embedded cadvisor
type CadvisorSource struct {
	viewer   api.Viewer
	analyzer *analyze.Analyzer
	now      func() time.Time
}

// NewCadvisorSource returns the source, the manager is started by the caller
func NewCadvisorSource(viewer api.Viewer, manager common.Manager) *CadvisorSource {
	return &CadvisorSource{viewer: viewer, analyzer: analyze.NewResourceAnalyzer(manager), now: time.Now}
}

// Name returns the name of the source
func (s *CadvisorSource) Name() string {
	return SourceCadvisor
}

// Pull returns the usage snapshot of the pods of the node
func (s *CadvisorSource) Pull(ctx context.Context) (*typedef.Usage, error) {
	return snapshot(ctx, s.Name(), listPods(s.viewer), s.now(), s.analyzer.Statistics)
}
