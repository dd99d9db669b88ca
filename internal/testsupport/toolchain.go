package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// ListingSoftwareOnly mimics an ffmpeg -encoders dump from a build without
// any hardware encode support.
const ListingSoftwareOnly = `Encoders:
 V....D libx264              libx264 H.264 / AVC / MPEG-4 AVC (codec h264)
 V....D libx265              libx265 H.265 / HEVC (codec hevc)
 V....D libsvtav1            SVT-AV1 encoder (codec av1)
`

// ListingWithNVENC adds the NVIDIA baseline encoders on top of the software
// set.
const ListingWithNVENC = ListingSoftwareOnly +
	` V....D h264_nvenc           NVIDIA NVENC H.264 encoder (codec h264)
 V....D hevc_nvenc           NVIDIA NVENC hevc encoder (codec hevc)
`

// WriteToolchain writes an executable ffmpeg stand-in into dir that answers
// -encoders with the given listing and everything else with a version
// banner, then returns its path.
func WriteToolchain(t testing.TB, dir, listing string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir toolchain dir: %v", err)
	}
	path := filepath.Join(dir, "ffmpeg")
	script := "#!/bin/sh\n" +
		"for arg in \"$@\"; do\n" +
		"  case \"$arg\" in\n" +
		"    -encoders)\n" +
		"      cat <<'LISTING'\n" +
		listing +
		"LISTING\n" +
		"      exit 0\n" +
		"      ;;\n" +
		"  esac\n" +
		"done\n" +
		"printf 'ffmpeg version 7.1-test\\n'\n" +
		"exit 0\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write toolchain script: %v", err)
	}
	return path
}
