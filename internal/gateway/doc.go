// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway is the HTTP client for the aistudio backend service.
//
// The backend exposes two endpoints: POST /ai/generate produces a text,
// code, or image response for a prompt or conversation, and POST
// /ai/list-models returns the model names available for a provider. Both
// calls are single request/response with no retry; any transport or non-2xx
// failure propagates to the caller carrying the most specific message the
// backend provided.
//
// The credential in every payload is sealed (see package seal) before it
// leaves the process.
package gateway
