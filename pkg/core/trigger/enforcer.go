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
// Description: This file implements the enforcement of corrections

// Package trigger carries out corrections through a chain of triggers
package trigger

import (
	"context"

	"k8s.io/client-go/kubernetes"

	"isula.org/qosguard/pkg/api"
	"isula.org/qosguard/pkg/core/trigger/common"
	"isula.org/qosguard/pkg/core/trigger/executor"
	"isula.org/qosguard/pkg/core/trigger/template"
	"isula.org/qosguard/pkg/core/typedef"
)

// names of the enforcement triggers
const (
	ResolveAnno = "resolve"
	ProtectAnno = "protect"
	EvictAnno   = "evict"
)

// Config is the configuration of the enforcement
type Config struct {
	DryRun              bool     `json:"dryRun,omitempty"`
	ForbiddenNamespaces []string `json:"forbiddenNamespaces,omitempty"`
}

// NewConfig returns the default configuration
func NewConfig() *Config {
	return &Config{ForbiddenNamespaces: append([]string{}, executor.DefaultForbiddenNamespaces...)}
}

// Enforcer evicts the pods named by corrections: resolve -> protect -> evict
type Enforcer struct {
	root common.Trigger
}

var _ api.Enforcer = (*Enforcer)(nil)

// NewEnforcer builds the trigger chain
func NewEnforcer(conf *Config, viewer api.Viewer, client kubernetes.Interface) *Enforcer {
	if conf == nil {
		conf = NewConfig()
	}
	root := template.FromBaseTemplate(
		template.WithName(ResolveAnno),
		template.WithTransformation(executor.ResolveTargets(viewer)),
	)
	root.SetNext(template.FromBaseTemplate(
		template.WithName(ProtectAnno),
		template.WithTransformation(executor.ProtectPods(conf.ForbiddenNamespaces)),
	).SetNext(template.FromBaseTemplate(
		template.WithName(EvictAnno),
		template.WithAction(executor.EvictPods(client, conf.DryRun)),
	)))
	return &Enforcer{root: root}
}

// Enforce carries out the corrections
func (e *Enforcer) Enforce(ctx context.Context, corrections typedef.QoSCorrections) error {
	if len(corrections) == 0 {
		return nil
	}
	return e.root.Activate(context.WithValue(ctx, common.TARGETS, corrections))
}
