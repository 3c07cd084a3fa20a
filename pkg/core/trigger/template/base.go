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
// Description: This file implements the trigger template

// Package template builds triggers from a transformation or an action
package template

import (
	"context"

	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/core/trigger/common"
)

// Transformation derives the context passed to the next triggers
type Transformation func(context.Context) (context.Context, error)

// Action acts on the pods of the context
type Action func(context.Context) error

// BaseTemplate is a trigger running either a transformation or an action
type BaseTemplate struct {
	common.TreeTrigger
	transformer Transformation
	actor       Action
}

// Execute runs the transformation, or the action which leaves the context unchanged
func (t *BaseTemplate) Execute(ctx context.Context) (context.Context, error) {
	if t.transformer != nil {
		res, err := t.transformer(ctx)
		if err != nil {
			return ctx, errors.Wrap(err, "failed to transform")
		}
		return res, nil
	}
	if t.actor != nil {
		return ctx, t.actor(ctx)
	}
	return ctx, nil
}

// Opt configures a BaseTemplate
type Opt func(t *BaseTemplate)

// WithName names the trigger
func WithName(name string) Opt {
	return func(t *BaseTemplate) {
		t.SetName(name)
	}
}

// WithTransformation sets the transformation of the trigger
func WithTransformation(f Transformation) Opt {
	return func(t *BaseTemplate) {
		t.transformer = f
	}
}

// WithAction sets the action of the trigger
func WithAction(f Action) Opt {
	return func(t *BaseTemplate) {
		t.actor = f
	}
}

// FromBaseTemplate returns a trigger built from opts
func FromBaseTemplate(opts ...Opt) common.Trigger {
	t := &BaseTemplate{
		TreeTrigger: *common.NewTreeTrigger("base template"),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.SetExecutor(t)
	return t
}
