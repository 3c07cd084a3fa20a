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
// Description: This file implements pod eviction

package executor

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	policyv1 "k8s.io/api/policy/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/common/util"
	"isula.org/qosguard/pkg/core/trigger/template"
	"isula.org/qosguard/pkg/core/typedef"
	"isula.org/qosguard/pkg/metrics"
)

// EvictPods returns the action evicting the pods of the context through the eviction api.
// In dry run the evictions are only logged.
func EvictPods(client kubernetes.Interface, dryRun bool) template.Action {
	return func(ctx context.Context) error {
		pods, err := TargetPods(ctx)
		if err != nil {
			return err
		}
		ids := make([]typedef.EntityIdentity, 0, len(pods))
		for id := range pods {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

		var errs error
		for _, id := range ids {
			pod := pods[id]
			if dryRun {
				log.Infof("dry run: evicting pod %v", id)
				metrics.RecordEviction(metrics.EvictionDryRun)
				continue
			}
			log.Infof("evicting pod %v", id)
			if err := evict(ctx, client, pod); err != nil {
				metrics.RecordEviction(metrics.EvictionFailed)
				errs = util.AppendErr(errs, errors.Wrapf(err, "failed to evict pod %v", id))
				continue
			}
			metrics.RecordEviction(metrics.EvictionSucceeded)
		}
		return errs
	}
}

func evict(ctx context.Context, client kubernetes.Interface, pod *typedef.PodInfo) error {
	eviction := &policyv1.Eviction{
		ObjectMeta: metav1.ObjectMeta{
			Name:      pod.Name,
			Namespace: pod.Namespace,
		},
		DeleteOptions: &metav1.DeleteOptions{},
	}
	err := client.PolicyV1().Evictions(pod.Namespace).Evict(ctx, eviction)
	if apierrors.IsNotFound(err) {
		log.Infof("pod %v/%v is already gone", pod.Namespace, pod.Name)
		return nil
	}
	return err
}
