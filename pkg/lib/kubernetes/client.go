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
// Description: This file is used for kubernetes client

// Package kubernetes holds the kubernetes clients and the node pod population
package kubernetes

import (
	"sync"

	"github.com/pkg/errors"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"
)

// Client bundles the clients qosguard talks to the api server with
type Client struct {
	Kube    kubernetes.Interface
	Metrics metricsclient.Interface
}

var (
	defaultClient *Client
	clientSync    sync.Mutex
)

// initClient builds the clients from the in-cluster configuration
func initClient() (*Client, error) {
	conf, err := rest.InClusterConfig()
	if err != nil {
		return nil, err
	}
	kubeClient, err := kubernetes.NewForConfig(conf)
	if err != nil {
		return nil, err
	}
	metrics, err := metricsclient.NewForConfig(conf)
	if err != nil {
		return nil, err
	}
	return &Client{Kube: kubeClient, Metrics: metrics}, nil
}

// GetClient gets the globally unique default kubernetes client
func GetClient() (*Client, error) {
	// prevent multiple initializations
	clientSync.Lock()
	defer clientSync.Unlock()

	if defaultClient != nil {
		return defaultClient, nil
	}
	c, err := initClient()
	if err != nil {
		return nil, errors.Wrap(err, "failed to init client")
	}
	defaultClient = c
	return defaultClient, nil
}
