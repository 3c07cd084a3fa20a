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
// Description: This file is used for testing the enforcement

package trigger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"

	"isula.org/qosguard/pkg/core/typedef"
)

type fakeViewer map[typedef.EntityIdentity]*typedef.PodInfo

func (v fakeViewer) ListOnlinePods() []*typedef.PodInfo  { return nil }
func (v fakeViewer) ListOfflinePods() []*typedef.PodInfo { return nil }
func (v fakeViewer) GetPod(id typedef.EntityIdentity) (*typedef.PodInfo, bool) {
	pod, ok := v[id]
	return pod.DeepCopy(), ok
}

var (
	batch  = typedef.EntityIdentity{Group: "offline", ID: "batch"}
	agent  = typedef.EntityIdentity{Group: "kube-system", ID: "agent"}
	web    = typedef.EntityIdentity{Group: "default", ID: "web"}
	gone   = typedef.EntityIdentity{Group: "offline", ID: "gone"}
	viewer = fakeViewer{
		batch: {Name: "batch", Namespace: "offline", Priority: typedef.PriorityBestEffort},
		agent: {Name: "agent", Namespace: "kube-system", Priority: typedef.PriorityBestEffort},
		web:   {Name: "web", Namespace: "default", Priority: typedef.PriorityProduction},
	}
)

func kills(ids ...typedef.EntityIdentity) typedef.QoSCorrections {
	var res typedef.QoSCorrections
	for _, id := range ids {
		res = append(res, typedef.QoSCorrection{Type: typedef.CorrectionKill, Target: id})
	}
	return res
}

func evicted(client *fake.Clientset) []string {
	var res []string
	for _, action := range client.Actions() {
		if action.GetSubresource() != "eviction" {
			continue
		}
		create, ok := action.(k8stesting.CreateAction)
		if !ok {
			continue
		}
		res = append(res, action.GetNamespace()+"/"+create.GetObject().(metav1.Object).GetName())
	}
	return res
}

func newClient() *fake.Clientset {
	return fake.NewSimpleClientset(
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "batch", Namespace: "offline"}},
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "agent", Namespace: "kube-system"}},
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"}},
	)
}

// TestEnforce tests which pods are evicted
func TestEnforce(t *testing.T) {
	tests := []struct {
		name        string
		conf        *Config
		corrections typedef.QoSCorrections
		want        []string
	}{
		{name: "TC1-best-effort pod evicted", corrections: kills(batch), want: []string{"offline/batch"}},
		{name: "TC2-forbidden namespace and production pod kept", corrections: kills(agent, web, batch),
			want: []string{"offline/batch"}},
		{name: "TC3-vanished pod skipped", corrections: kills(gone)},
		{name: "TC4-dry run", conf: &Config{DryRun: true}, corrections: kills(batch)},
		{name: "TC5-no forbidden namespace", conf: &Config{}, corrections: kills(agent, batch),
			want: []string{"kube-system/agent", "offline/batch"}},
		{name: "TC6-no corrections"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient()
			e := NewEnforcer(tt.conf, viewer, client)
			require.NoError(t, e.Enforce(context.Background(), tt.corrections))
			assert.Equal(t, tt.want, evicted(client))
		})
	}
}

// TestEnforceFailure tests that eviction failures are reported
func TestEnforceFailure(t *testing.T) {
	client := newClient()
	client.PrependReactor("create", "pods", func(action k8stesting.Action) (bool, runtime.Object, error) {
		if action.GetSubresource() == "eviction" {
			return true, nil, assert.AnError
		}
		return false, nil, nil
	})
	e := NewEnforcer(nil, viewer, client)
	err := e.Enforce(context.Background(), kills(batch))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "offline/batch")
}
