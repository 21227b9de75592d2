// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package tracker

import "errors"

// Sentinel errors for tracker operations.
//
// Validation rejections are user-visible and leave state untouched.
// Storage failures are recovered locally (the engine substitutes
// defaults on load and logs write failures) and are never fatal.
var (
	// ErrAlreadyValidated is returned by ValidateDay when today has
	// already been validated. Validation happens at most once per day.
	ErrAlreadyValidated = errors.New("day already validated")

	// ErrNoExercisesDone is returned by ValidateDay when no exercise
	// has been completed today. An empty day cannot be validated.
	ErrNoExercisesDone = errors.New("no exercises done today")

	// ErrUnknownLevel is returned by SetLevel for a level that names
	// no exercise template set.
	ErrUnknownLevel = errors.New("unknown level")

	// ErrInvalidSettings is returned by UpdateSettings when the new
	// settings fail validation (e.g. a malformed reminder time).
	ErrInvalidSettings = errors.New("invalid settings")
)
