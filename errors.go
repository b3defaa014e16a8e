// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

package sparse

import "errors"

// Sentinel errors for sparse operations.
var (
	// ErrInvalidPattern indicates malformed or unsupported rule pattern.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrNilRepository indicates a nil Repository receiver.
	ErrNilRepository = errors.New("repository is nil")
	// ErrNotRepository indicates a path without a git directory layout.
	ErrNotRepository = errors.New("not a git repository")
	// ErrNotEnabled indicates an operation that requires core.sparseCheckout=true.
	ErrNotEnabled = errors.New("sparse-checkout is not enabled")
	// ErrRulesFileMissing indicates absent info/sparse-checkout file.
	ErrRulesFileMissing = errors.New("sparse-checkout file does not exist")
	// ErrConfig indicates repository configuration read or write failure.
	ErrConfig = errors.New("repository config")
	// ErrNoWorkTree indicates an operation that needs a work tree on a bare repository.
	ErrNoWorkTree = errors.New("repository has no work tree")
)
