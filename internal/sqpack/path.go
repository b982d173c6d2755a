// SPDX-License-Identifier: EPL-2.0

package sqpack

import (
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"
)

// TemplatePath is a parsed "A::B" template reference.
type TemplatePath struct {
	// Root is the installation's game directory or a region such as ":global".
	Root string
	// Internal is the file path inside the archives.
	Internal string
}

// IsRegion reports whether Root names a region to autodetect.
func (p TemplatePath) IsRegion() bool { return strings.HasPrefix(p.Root, ":") }

// ParseTemplatePath splits s on the first "::". ok is false when s is a
// plain file system path.
func ParseTemplatePath(s string) (p TemplatePath, ok bool) {
	root, internal, found := strings.Cut(s, "::")
	if !found {
		return TemplatePath{}, false
	}
	return TemplatePath{Root: root, Internal: internal}, true
}

var categories = map[string]uint8{
	"common":      0x00,
	"bgcommon":    0x01,
	"bg":          0x02,
	"cut":         0x03,
	"chara":       0x04,
	"shader":      0x05,
	"ui":          0x06,
	"sound":       0x07,
	"vfx":         0x08,
	"ui_script":   0x09,
	"exd":         0x0a,
	"game_script": 0x0b,
	"music":       0x0c,
	"sqpack_test": 0x12,
	"debug":       0x13,
}

// location is where an internal path is stored.
type location struct {
	category  uint8
	expansion uint8
	folder    string // "ffxiv" or "exN"
	hash      uint64 // folder hash << 32 | file hash
}

// base is the archive file name without extension, e.g. "0c0100".
func (l location) base() string {
	return fmt.Sprintf("%02x%02x%02x", l.category, l.expansion, 0)
}

func locate(internal string) (location, error) {
	path := strings.ToLower(strings.Trim(strings.ReplaceAll(internal, "\\", "/"), "/"))

	dir, file, found := cutLast(path, "/")
	if !found || file == "" {
		return location{}, fmt.Errorf("%w: %q has no folder", ErrFileNotFound, internal)
	}

	first, rest, _ := strings.Cut(path, "/")
	cat, ok := categories[first]
	if !ok {
		return location{}, fmt.Errorf("%w: %q", ErrUnknownCategory, first)
	}

	loc := location{category: cat, folder: "ffxiv"}

	// expansion content lives in its own folder for these categories
	if first == "bg" || first == "cut" || first == "music" {
		second, _, _ := strings.Cut(rest, "/")
		if n, ok := expansionNumber(second); ok {
			loc.expansion = n
			loc.folder = second
		}
	}

	loc.hash = uint64(jamcrc(dir))<<32 | uint64(jamcrc(file))

	return loc, nil
}

func expansionNumber(s string) (uint8, bool) {
	digits, ok := strings.CutPrefix(s, "ex")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 8)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint8(n), true
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

// jamcrc is CRC-32 (IEEE) without the final inversion.
func jamcrc(s string) uint32 {
	return ^crc32.ChecksumIEEE([]byte(s))
}
