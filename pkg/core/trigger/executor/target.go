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
// Create: 2026-03-16
// Description: This file implements the transformations selecting the pods to evict

// Package executor holds the transformations and actions of enforcement triggers
package executor

import (
	"context"

	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/core/trigger/common"
	"isula.org/qosguard/pkg/core/trigger/template"
	"isula.org/qosguard/pkg/core/typedef"
	"isula.org/qosguard/pkg/metrics"
)

// DefaultForbiddenNamespaces are never evicted from
var DefaultForbiddenNamespaces = []string{"kube-system"}

// TargetPods returns the pods of ctx
func TargetPods(ctx context.Context) (map[typedef.EntityIdentity]*typedef.PodInfo, error) {
	pods, ok := ctx.Value(common.TARGETPODS).(map[typedef.EntityIdentity]*typedef.PodInfo)
	if !ok {
		return nil, errors.New("failed to get target pods")
	}
	return pods, nil
}

// ResolveTargets returns a transformation looking up the pods named by the corrections of ctx
func ResolveTargets(viewer api.Viewer) template.Transformation {
	return func(ctx context.Context) (context.Context, error) {
		corrections, ok := ctx.Value(common.TARGETS).(typedef.QoSCorrections)
		if !ok {
			return ctx, errors.New("failed to get corrections")
		}
		pods := make(map[typedef.EntityIdentity]*typedef.PodInfo, len(corrections))
		for _, c := range corrections {
			if c.Type != typedef.CorrectionKill {
				log.Warnf("unsupported correction %v of %v", c.Type, c.Target)
				continue
			}
			pod, ok := viewer.GetPod(c.Target)
			if !ok {
				log.Infof("pod %v is gone, skip it", c.Target)
				continue
			}
			pods[c.Target] = pod
		}
		return context.WithValue(ctx, common.TARGETPODS, pods), nil
	}
}

// ProtectPods returns a transformation dropping production pods and pods of forbidden namespaces
func ProtectPods(forbidden []string) template.Transformation {
	set := make(map[string]struct{}, len(forbidden))
	for _, ns := range forbidden {
		set[ns] = struct{}{}
	}
	return func(ctx context.Context) (context.Context, error) {
		pods, err := TargetPods(ctx)
		if err != nil {
			return ctx, err
		}
		allowed := make(map[typedef.EntityIdentity]*typedef.PodInfo, len(pods))
		for id, pod := range pods {
			if _, ok := set[pod.Namespace]; ok {
				log.Warnf("it is forbidden to evict the pod %v whose namespace is %v", id, pod.Namespace)
				metrics.RecordEviction(metrics.EvictionForbidden)
				continue
			}
			if !pod.Priority.Evictable() {
				log.Warnf("pod %v is not a best-effort pod, skip it", id)
				metrics.RecordEviction(metrics.EvictionForbidden)
				continue
			}
			allowed[id] = pod
		}
		return context.WithValue(ctx, common.TARGETPODS, allowed), nil
	}
}
