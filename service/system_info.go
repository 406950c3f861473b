// Copyright 2025 Originality Tools
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const (
	LISTEN_ADDRESS      = "LISTEN_ADDRESS"
	ORIGIN_ALLOWED      = "ORIGIN_ALLOWED"
	LOG_LEVEL           = "LOG_LEVEL"
	ORIGINALITY_API_KEY = "ORIGINALITY_API_KEY"
	ORIGINALITY_API_URL = "ORIGINALITY_API_URL"
	RESULTS_DIR         = "RESULTS_DIR"
	DASHBOARD_API_KEY   = "DASHBOARD_API_KEY"
	RESULTS_TTL_DAYS    = "RESULTS_TTL_DAYS"
)

const defaultApiUrl = "https://api.originality.ai/api/v2"
const defaultResultsDir = "originality_results"

type SystemInfoService interface {
	Init() error
	GetListenAddress() string
	GetOriginAllowed() string
	GetLogLevel() string
	GetApiKey() string
	GetApiUrl() string
	GetResultsDir() string
	GetDashboardApiKey() string
	GetResultsTtlDays() int
}

func NewSystemInfoService() (SystemInfoService, error) {
	s := &systemInfoServiceImpl{
		systemInfoMap: make(map[string]interface{})}
	if err := s.Init(); err != nil {
		log.Error("Failed to read system info: " + err.Error())
		return nil, err
	}
	return s, nil
}

type systemInfoServiceImpl struct {
	systemInfoMap map[string]interface{}
}

func (g systemInfoServiceImpl) Init() error {
	g.setListenAddress()
	g.setOriginAllowed()
	g.setLogLevel()
	g.setApiKey()
	g.setApiUrl()
	g.setResultsDir()
	g.setDashboardApiKey()
	g.setResultsTtlDays()

	return nil
}

func (g systemInfoServiceImpl) setListenAddress() {
	listenAddr := os.Getenv(LISTEN_ADDRESS)
	if listenAddr == "" {
		listenAddr = ":8080"
	}
	g.systemInfoMap[LISTEN_ADDRESS] = listenAddr
}

func (g systemInfoServiceImpl) GetListenAddress() string {
	return g.systemInfoMap[LISTEN_ADDRESS].(string)
}

func (g systemInfoServiceImpl) setOriginAllowed() {
	g.systemInfoMap[ORIGIN_ALLOWED] = os.Getenv(ORIGIN_ALLOWED)
}

func (g systemInfoServiceImpl) GetOriginAllowed() string {
	return g.systemInfoMap[ORIGIN_ALLOWED].(string)
}

func (g systemInfoServiceImpl) setLogLevel() {
	g.systemInfoMap[LOG_LEVEL] = os.Getenv(LOG_LEVEL)
}

func (g systemInfoServiceImpl) GetLogLevel() string {
	return g.systemInfoMap[LOG_LEVEL].(string)
}

func (g systemInfoServiceImpl) setApiKey() {
	g.systemInfoMap[ORIGINALITY_API_KEY] = os.Getenv(ORIGINALITY_API_KEY)
}

func (g systemInfoServiceImpl) GetApiKey() string {
	return g.systemInfoMap[ORIGINALITY_API_KEY].(string)
}

func (g systemInfoServiceImpl) setApiUrl() {
	apiUrl := os.Getenv(ORIGINALITY_API_URL)
	if apiUrl == "" {
		apiUrl = defaultApiUrl
	}
	g.systemInfoMap[ORIGINALITY_API_URL] = apiUrl
}

func (g systemInfoServiceImpl) GetApiUrl() string {
	return g.systemInfoMap[ORIGINALITY_API_URL].(string)
}

func (g systemInfoServiceImpl) setResultsDir() {
	resultsDir := os.Getenv(RESULTS_DIR)
	if resultsDir == "" {
		resultsDir = defaultResultsDir
	}
	g.systemInfoMap[RESULTS_DIR] = resultsDir
}

func (g systemInfoServiceImpl) GetResultsDir() string {
	return g.systemInfoMap[RESULTS_DIR].(string)
}

func (g systemInfoServiceImpl) setDashboardApiKey() {
	g.systemInfoMap[DASHBOARD_API_KEY] = os.Getenv(DASHBOARD_API_KEY)
}

func (g systemInfoServiceImpl) GetDashboardApiKey() string {
	return g.systemInfoMap[DASHBOARD_API_KEY].(string)
}

func (g systemInfoServiceImpl) setResultsTtlDays() {
	ttlStr := os.Getenv(RESULTS_TTL_DAYS)
	ttl := 0
	if ttlStr != "" {
		value, err := strconv.Atoi(ttlStr)
		if err != nil || value < 0 {
			log.Warnf("Incorrect value '%s' for %s, results retention is disabled", ttlStr, RESULTS_TTL_DAYS)
		} else {
			ttl = value
		}
	}
	g.systemInfoMap[RESULTS_TTL_DAYS] = ttl
}

func (g systemInfoServiceImpl) GetResultsTtlDays() int {
	return g.systemInfoMap[RESULTS_TTL_DAYS].(int)
}
