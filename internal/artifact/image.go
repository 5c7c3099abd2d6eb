// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"fmt"
	"time"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"

	"crateforge/pkg/manifest"
)

// ImageSpec is the container image descriptor for one platform. The
// image is named after the manifest, tagged with its version, and its
// root filesystem contains exactly the package's executable output.
type ImageSpec struct {
	// Name is the image name (the manifest name).
	Name string
	// Tag is the image tag (the manifest version).
	Tag string
	// Contents is the complete root-filesystem content set: the
	// package's executables and nothing else.
	Contents []string
	// Image is the OCI image configuration handed to the external
	// layer assembler.
	Image ocispec.Image
}

// Clock supplies the image creation timestamp. Production uses
// time.Now; tests substitute a fixed clock.
type Clock func() time.Time

// BuildImage composes the image descriptor from a built package spec.
// The entrypoint is derived from the package's installed binary path, so
// it cannot drift from what the package actually installs.
//
// The created timestamp comes from the wall clock: it is the one
// deliberately non-reproducible field in the evaluation's outputs.
func BuildImage(pkg *PackageSpec, m *manifest.Manifest, clock Clock) (*ImageSpec, error) {
	if pkg.Name != m.Name || pkg.Version != m.Version {
		// Both derive from the same manifest within one evaluation, so
		// a mismatch means the caller mixed inputs from two evaluations.
		return nil, fmt.Errorf("package spec %s %s does not match manifest %s %s",
			pkg.Name, pkg.Version, m.Name, m.Version)
	}
	if clock == nil {
		clock = time.Now
	}

	created := clock()
	oci := pkg.Platform.OCI()

	return &ImageSpec{
		Name:     m.Name,
		Tag:      m.Version,
		Contents: []string{pkg.BinPath()},
		Image: ocispec.Image{
			Created:  &created,
			Platform: oci,
			Config: ocispec.ImageConfig{
				Entrypoint: []string{pkg.BinPath()},
			},
		},
	}, nil
}

// Reference returns the image reference, "<name>:<tag>".
func (s *ImageSpec) Reference() string {
	return s.Name + ":" + s.Tag
}
