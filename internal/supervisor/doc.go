// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

// Package supervisor runs the long-lived services of the server under a
// suture supervisor tree.
//
// The tree has three layers:
//
//	nftgenie
//	├── data-layer       model training, restore and persistence
//	├── messaging-layer  online embedding updates
//	└── api-layer        HTTP server
//
// A failing service is restarted with backoff by its layer supervisor;
// siblings in other layers keep running. Supervisor events are logged through
// sutureslog backed by the zerolog adapter in internal/logging.
package supervisor
