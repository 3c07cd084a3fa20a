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
// Description: This file implements the metrics-server usage source

package resource

import (
	"context"
	"time"

	"github.com/pkg/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/core/typedef"
)

// MetricsServerSource reads pod CPU usage from the metrics api.
// The api reports a rate, the source integrates it into the CPU time counter
// the detectors expect.
type MetricsServerSource struct {
	viewer api.Viewer
	client metricsclient.Interface
	now    func() time.Time
	// cumulative CPU seconds and the metrics timestamp they were integrated up to
	cpuTime   map[typedef.EntityIdentity]float64
	scrapedAt map[typedef.EntityIdentity]float64
}

// NewMetricsServerSource returns the source
func NewMetricsServerSource(viewer api.Viewer, client metricsclient.Interface) *MetricsServerSource {
	return &MetricsServerSource{
		viewer:    viewer,
		client:    client,
		now:       time.Now,
		cpuTime:   make(map[typedef.EntityIdentity]float64),
		scrapedAt: make(map[typedef.EntityIdentity]float64),
	}
}

// Name returns the name of the source
func (s *MetricsServerSource) Name() string {
	return SourceMetricsServer
}

type podRate struct {
	timestamp float64
	cores     float64
	memory    uint64
}

// Pull returns the usage snapshot of the pods of the node
func (s *MetricsServerSource) Pull(ctx context.Context) (*typedef.Usage, error) {
	list, err := s.client.MetricsV1beta1().PodMetricses("").List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pod metrics")
	}
	rates := make(map[typedef.EntityIdentity]podRate, len(list.Items))
	for i := range list.Items {
		pm := &list.Items[i]
		var rate podRate
		for _, c := range pm.Containers {
			rate.cores += float64(c.Usage.Cpu().MilliValue()) / 1000
			rate.memory += uint64(c.Usage.Memory().Value())
		}
		rate.timestamp = float64(pm.Timestamp.UnixNano()) / nanoToSecond
		rates[typedef.EntityIdentity{Group: pm.Namespace, ID: pm.Name}] = rate
	}

	pods := listPods(s.viewer)
	cpuTime := make(map[typedef.EntityIdentity]float64, len(pods))
	scrapedAt := make(map[typedef.EntityIdentity]float64, len(pods))
	u, err := snapshot(ctx, s.Name(), pods, s.now(), func(pod *typedef.PodInfo) (*typedef.Statistics, error) {
		id := pod.Identity()
		rate, ok := rates[id]
		if !ok {
			return nil, errors.Errorf("no metrics of pod %v", id)
		}
		total := s.cpuTime[id]
		if last, ok := s.scrapedAt[id]; ok && rate.timestamp > last {
			total += rate.cores * (rate.timestamp - last)
		}
		cpuTime[id], scrapedAt[id] = total, rate.timestamp
		return &typedef.Statistics{
			Timestamp:      rate.timestamp,
			CPUTimeSeconds: total,
			CPUAllocated:   pod.CPULimit,
			MemoryBytes:    rate.memory,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	s.cpuTime, s.scrapedAt = cpuTime, scrapedAt
	return u, nil
}
