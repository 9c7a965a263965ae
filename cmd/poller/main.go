/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/carverauto/cloudpulse/pkg/config"
	"github.com/carverauto/cloudpulse/pkg/lifecycle"
	"github.com/carverauto/cloudpulse/pkg/poller"
	"github.com/carverauto/cloudpulse/pkg/version"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/cloudpulse/poller.json", "Path to poller config file")
	flag.Parse()

	ctx := context.Background()

	cfgLoader := config.NewConfig(nil)

	var cfg poller.Config

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	pollerLogger, err := lifecycle.CreateComponentLogger(ctx, "poller", cfg.Logging)
	if err != nil {
		return err
	}

	pollerLogger.Info().Str("version", version.GetFullVersion()).Msg("CloudPulse poller starting")

	// nil clock defaults to real time inside poller.New.
	p, err := poller.New(ctx, &cfg, nil, pollerLogger)
	if err != nil {
		return err
	}

	return lifecycle.Run(ctx, pollerLogger, p)
}
