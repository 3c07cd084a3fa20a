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
// Create: 2026-03-13
// Description: This file implements the pod population of the node

package kubernetes

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/fields"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/client-go/kubernetes"

	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/core/typedef"
)

// ErrPodNotFound is returned for entities that are not running pods of the node
var ErrPodNotFound = errors.New("pod not found")

const specNodeNameField = "spec.nodeName"

// Population caches the running pods of one node, refreshed by listing the api server
type Population struct {
	sync.RWMutex
	client   kubernetes.Interface
	nodeName string
	pods     map[typedef.EntityIdentity]*typedef.PodInfo
	synced   bool
	now      func() time.Time
}

// NewPopulation returns an empty population of the node
func NewPopulation(client kubernetes.Interface, nodeName string) *Population {
	return &Population{
		client:   client,
		nodeName: nodeName,
		pods:     make(map[typedef.EntityIdentity]*typedef.PodInfo),
		now:      time.Now,
	}
}

// Start refreshes the population every period until ctx is done
func (p *Population) Start(ctx context.Context, period time.Duration) {
	wait.Until(func() {
		if err := p.Sync(ctx); err != nil {
			log.Errorf("failed to sync pods of node %v: %v", p.nodeName, err)
		}
	}, period, ctx.Done())
}

// Sync replaces the population with the running pods listed from the api server
func (p *Population) Sync(ctx context.Context) error {
	opts := metav1.ListOptions{}
	if p.nodeName != "" {
		opts.FieldSelector = fields.OneTermEqualSelector(specNodeNameField, p.nodeName).String()
	}
	list, err := p.client.CoreV1().Pods("").List(ctx, opts)
	if err != nil {
		return errors.Wrap(err, "failed to list pods")
	}
	pods := make(map[typedef.EntityIdentity]*typedef.PodInfo, len(list.Items))
	for i := range list.Items {
		raw := (*typedef.RawPod)(&list.Items[i])
		if p.nodeName != "" && raw.Spec.NodeName != p.nodeName {
			continue
		}
		if !raw.Running() {
			continue
		}
		info := raw.ExtractPodInfo()
		pods[info.Identity()] = info
	}
	p.Lock()
	p.pods = pods
	p.synced = true
	p.Unlock()
	log.Debugf("synced %d running pods", len(pods))
	return nil
}

// Synced returns true once the population was listed
func (p *Population) Synced() bool {
	p.RLock()
	defer p.RUnlock()
	return p.synced
}

// List returns the deepcopy of every pod
func (p *Population) List() []*typedef.PodInfo {
	return p.list(func(*typedef.PodInfo) bool { return true })
}

// ListOnlinePods returns the deepcopy of the protected pods
func (p *Population) ListOnlinePods() []*typedef.PodInfo {
	return p.list(func(pod *typedef.PodInfo) bool { return !pod.Priority.Evictable() })
}

// ListOfflinePods returns the deepcopy of the best-effort pods
func (p *Population) ListOfflinePods() []*typedef.PodInfo {
	return p.list(func(pod *typedef.PodInfo) bool { return pod.Priority.Evictable() })
}

func (p *Population) list(match func(*typedef.PodInfo) bool) []*typedef.PodInfo {
	p.RLock()
	defer p.RUnlock()
	res := make([]*typedef.PodInfo, 0, len(p.pods))
	for _, pod := range p.pods {
		if match(pod) {
			res = append(res, pod.DeepCopy())
		}
	}
	return res
}

// GetPod returns the deepcopy of the pod of id
func (p *Population) GetPod(id typedef.EntityIdentity) (*typedef.PodInfo, bool) {
	p.RLock()
	defer p.RUnlock()
	pod, ok := p.pods[id]
	return pod.DeepCopy(), ok
}

// Age returns the seconds since the pod of id started
func (p *Population) Age(id typedef.EntityIdentity) (float64, error) {
	pod, ok := p.GetPod(id)
	if !ok {
		return 0, errors.Wrapf(ErrPodNotFound, "age of %v", id)
	}
	return pod.Age(p.now()), nil
}
