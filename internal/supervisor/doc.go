// Reelmatch - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor runs the long-lived parts of the service under a suture v4
supervisor tree.

# Overview

	RootSupervisor ("reelmatch")
	├── DataSupervisor ("data-layer")
	│   └── StoreGCService (when enrichment.store is "badger")
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Services that return an error are restarted with suture's backoff. Events
(restarts, backoff, timeouts) are logged through sutureslog, bridged to the
zerolog global logger by logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout, logger))
	errCh := tree.ServeBackground(ctx)

Canceling ctx stops every service; UnstoppedServiceReport lists services that
outlived ShutdownTimeout.
*/
package supervisor
