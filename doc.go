// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sparse

/*
Package sparse decides which paths of a git working tree are materialized
under a sparse-checkout policy.

The policy is an ordered list of gitignore-like patterns kept in
<gitdir>/info/sparse-checkout and gated by the core.sparseCheckout
configuration flag.

Basic flow:
  - open repository (`Open` / `NewRepository`)
  - manage rules (`Init` / `List` / `Set` / `Add` / `Disable`)
  - ask for decision (`CheckPath` / `CheckPaths` / `ExplainPath`)

Lower-level rule evaluation without a repository:
  - parse rules into a store (`ParseRuleStore` / `LoadRuleStore`)
  - evaluate a path (`RuleStore.Lookup` / `RuleStore.Explain`)

Decision policy:
  - the path is tested first, then every parent directory up to the root
  - at each level rules are scanned from the last line of the file to the first
  - the first matching rule decides: plain rule means checkout, "!" rule means no-checkout
  - no match anywhere means no-checkout

Writes through `Set` and `Add` truncate the rules file before writing the
new content and take no file lock; a concurrent reader may observe a
partially written file.
*/
package sparse
