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
// Description: This file selects the configuration parser

package config

import "isula.org/qosguard/pkg/api"

type (
	// parserType represents the parser type
	parserType int8
	// parserFactory is the factory class of the parser
	parserFactory struct{}
)

const (
	// JSON represents the json type parser
	JSON parserType = iota
)

// defaultParserFactory is globally unique parser factory
var defaultParserFactory = &parserFactory{}

// getParser gets parser instance according to the parser type passed in
func (factory *parserFactory) getParser(pType parserType) api.ConfigParser {
	switch pType {
	case JSON:
		return defaultJsonParser
	default:
		return defaultJsonParser
	}
}
