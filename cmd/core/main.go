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
	"github.com/carverauto/cloudpulse/pkg/core"
	"github.com/carverauto/cloudpulse/pkg/core/api"
	cphttp "github.com/carverauto/cloudpulse/pkg/http"
	"github.com/carverauto/cloudpulse/pkg/lifecycle"
	"github.com/carverauto/cloudpulse/pkg/version"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/cloudpulse/core.json", "Path to core config file")
	flag.Parse()

	ctx := context.Background()

	cfgLoader := config.NewConfig(nil)

	var cfg core.Config

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	coreLogger, err := lifecycle.CreateComponentLogger(ctx, "core", cfg.Logging)
	if err != nil {
		return err
	}

	coreLogger.Info().Str("version", version.GetFullVersion()).Msg("CloudPulse core starting")

	server, err := core.NewServer(ctx, &cfg, coreLogger)
	if err != nil {
		return err
	}

	apiOptions := make([]func(*api.APIServer), 0, 1)

	if cfg.RateLimit.Enabled {
		limiter, limErr := cphttp.NewRateLimiter(cfg.RateLimit, coreLogger)
		if limErr != nil {
			return limErr
		}

		apiOptions = append(apiOptions, api.WithRateLimiter(limiter, cfg.RateLimit))
	}

	apiServer := api.NewAPIServer(server, cfg.CORS, coreLogger, apiOptions...)

	return lifecycle.Run(ctx, coreLogger,
		server,
		lifecycle.HTTPService(apiServer, cfg.ListenAddr),
	)
}
