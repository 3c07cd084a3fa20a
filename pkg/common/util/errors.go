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
// Create: 2026-03-03
// Description: This file contains error helpers

package util

import (
	"github.com/pkg/errors"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// AppendErr appends err to the errors already carried by origin.
// The result is nil when both are nil.
func AppendErr(origin, err error) error {
	if err == nil {
		return origin
	}
	if origin == nil {
		return err
	}
	var errs []error
	if agg, ok := origin.(utilerrors.Aggregate); ok {
		errs = append(errs, agg.Errors()...)
	} else {
		errs = append(errs, origin)
	}
	return utilerrors.NewAggregate(append(errs, err))
}

// AddErrorPrefix adds a prefix to err, keeping the cause reachable
func AddErrorPrefix(err error, prefix string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, prefix)
}
