// Affinity - Similarity-Based Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

/*
Package supervisor runs Affinity's long-lived services under suture v4.

	RootSupervisor ("affinity")
	├── ComputeSupervisor ("compute-layer")
	│   └── IndexWarmService (if recommend.warm_index)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. Services that finish their
work return suture.ErrDoNotRestart. Supervisor events go to slog, which
internal/logging bridges to zerolog:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.DefaultTreeConfig())
	tree.AddComputeService(services.NewIndexWarmService(engine, 0, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Addr(), cfg.Server.ShutdownTimeout, logger))
	err = tree.Serve(ctx)
*/
package supervisor
