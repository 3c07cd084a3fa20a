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
// Create: 2026-03-18
// Description: This file is used to parse json configuration

package config

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// defaultJsonParser is globally unique json parser
var defaultJsonParser = &jsonParser{}

// jsonParser is used to parse json
type jsonParser struct{}

// ParseConfig parses json data as map[string]interface{}
func (p *jsonParser) ParseConfig(data []byte) (map[string]interface{}, error) {
	m := make(map[string]interface{})
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalSubConfig deserializes interface to structure
func (p *jsonParser) UnmarshalSubConfig(data interface{}, v interface{}) error {
	// 1. convert map[string]interface to json string
	val, ok := data.(map[string]interface{})
	if !ok {
		return errors.Errorf("invalid type %T", data)
	}
	jsonString, err := json.Marshal(val)
	if err != nil {
		return err
	}
	// 2. convert json string to struct
	return json.Unmarshal(jsonString, v)
}
