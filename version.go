// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package layerednlp is the root of the layered-nlp core: a token-indexed
// attribute store, a selection/matcher algebra, a resolver runtime, and a
// document model built on top of them. See the tokens, attrs, sel, scored,
// assoc, resolve, and document packages.
package layerednlp

import "github.com/maloquacious/semver"

// Version identifies this build of the core.
var Version = semver.Version{
	Major: 0,
	Minor: 1,
	Patch: 0,
	Build: semver.Commit(),
}
