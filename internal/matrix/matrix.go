// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"fmt"

	"crateforge/pkg/platform"
)

// ForAll invokes build once per platform in set and returns the results
// keyed by platform ID. The mapping is total over set: one entry per
// member, no extra keys, and build is never invoked for a platform outside
// set.
//
// Evaluation is fail-fast: the first builder error aborts the whole matrix
// and no partial mapping is returned. The error identifies the platform
// whose build failed.
func ForAll[R any](set []platform.Platform, build func(platform.Platform) (R, error)) (map[platform.ID]R, error) {
	out := make(map[platform.ID]R, len(set))

	for _, p := range set {
		r, err := build(p)
		if err != nil {
			return nil, fmt.Errorf("platform %s: %w", p, err)
		}
		out[p.ID()] = r
	}

	return out, nil
}
