// NFTGenie - Hybrid NFT Recommendation Engine
// Copyright 2026 Soumyadip-03
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Soumyadip-03/NFTGenie

package recommend

import "errors"

var (
	// ErrInvalidStrategy is returned by Recommend for an unregistered strategy name.
	ErrInvalidStrategy = errors.New("invalid strategy")

	// ErrTrainingInProgress is returned when Train or Fit is called while another run holds the lock.
	ErrTrainingInProgress = errors.New("training already in progress")

	// ErrNoDataProvider is returned by Train when no DataProvider was set.
	ErrNoDataProvider = errors.New("data provider not set")

	// ErrNoModelStore is returned by Restore and Persist when no ModelStore was set.
	ErrNoModelStore = errors.New("model store not set")

	// ErrInvalidModel is returned by LoadModel for malformed model records.
	ErrInvalidModel = errors.New("invalid model record")

	// ErrInsufficientData is returned by Train when fewer interactions than
	// Training.MinInteractions were loaded.
	ErrInsufficientData = errors.New("insufficient interactions")
)
