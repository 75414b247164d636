// Package tagname implements the fork's patch-tag naming scheme: an upstream
// release tag <version> gains local snapshot tags named <version>-p<N>, with
// N counting up from 1 per version.
package tagname

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PatchGlob matches every patch tag regardless of base version, in git
// tag-list glob syntax.
const PatchGlob = "*-p*"

var patchSuffix = regexp.MustCompile(`^(.+)-p(\d+)$`)

// Patch builds the patch tag name for base with suffix n.
func Patch(base string, n int) string {
	return fmt.Sprintf("%s-p%d", base, n)
}

// PatchPattern returns the git tag-list glob matching every patch tag of base.
func PatchPattern(base string) string {
	return base + "-p*"
}

// IsPatchOf reports whether tag carries a patch suffix for base.
func IsPatchOf(tag, base string) bool {
	return strings.HasPrefix(tag, base+"-p")
}

// Split decomposes a patch tag into its base version and numeric suffix.
// ok is false when tag does not end in a -p<N> suffix.
func Split(tag string) (base string, n int, ok bool) {
	m := patchSuffix.FindStringSubmatch(tag)
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		// \d+ matched but overflows int; treat as not a patch tag.
		return "", 0, false
	}
	return m[1], n, true
}

// HighestSuffix returns the maximum -p<N> suffix across tags, or 0 when no
// tag carries one. Gaps in the series are fine; callers use max+1.
func HighestSuffix(tags []string) int {
	highest := 0
	for _, tag := range tags {
		if _, n, ok := Split(tag); ok && n > highest {
			highest = n
		}
	}
	return highest
}
