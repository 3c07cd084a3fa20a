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
// Description: This file implements the tree trigger
// Description: This file implements the tree trigger

// Package common defines the enforcement stages and how they are chained
package common

import (
	"context"

	"github.com/pkg/errors"

	"isula.org/qosguard/pkg/common/log"
	"isula.org/qosguard/pkg/common/util"
)

// TreeTrigger is one enforcement stage. Its executor turns the incoming context into
// the context handed to every following stage.
type TreeTrigger struct {
	name string
	exec Executor
	next []Trigger
}

// NewTreeTrigger returns a stage without executor
func NewTreeTrigger(name string) *TreeTrigger {
	return &TreeTrigger{name: name}
}

// Name returns the name of the stage
func (t *TreeTrigger) Name() string {
	return t.name
}

// Activate executes the stage then the following stages with its result.
// A failed stage stops its branch, failures of sibling branches are aggregated.
func (t *TreeTrigger) Activate(ctx context.Context) error {
	if t.exec == nil {
		return errors.Errorf("stage %s has no executor", t.name)
	}
	res, err := t.exec.Execute(ctx)
	if err != nil {
		return errors.Wrapf(err, "stage %s", t.name)
	}
	log.Debugf("enforcement stage %s done, %d following", t.name, len(t.next))
	var errs error
	for _, next := range t.next {
		errs = util.AppendErr(errs, util.AddErrorPrefix(next.Activate(res), t.name))
	}
	return errs
}

// SetName renames the stage
func (t *TreeTrigger) SetName(name string) {
	t.name = name
}

// SetExecutor sets the executor of the stage
func (t *TreeTrigger) SetExecutor(exec Executor) {
	t.exec = exec
}

// SetNext appends the stages run after this one and returns this stage
func (t *TreeTrigger) SetNext(triggers ...Trigger) Trigger {
	t.next = append(t.next, triggers...)
	return t
}
