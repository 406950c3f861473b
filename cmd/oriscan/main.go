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

package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/originality-tools/oriscan/cmd/oriscan/commands"
)

func main() {
	// .env is optional, environment variables win either way
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded configuration from .env")
	}

	if err := commands.Execute(); err != nil {
		log.Errorf("%s", err.Error())
		os.Exit(1)
	}
}
