// SPDX-License-Identifier: EPL-2.0

package sqpack

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Regions accepted after the leading colon of a template root.
const (
	RegionGlobal = "global"
	RegionChina  = "china"
	RegionKorea  = "korea"
)

// Candidates lists the default game directories probed per region, in order.
var Candidates = map[string][]string{
	RegionGlobal: {
		`C:\Program Files (x86)\SquareEnix\FINAL FANTASY XIV - A Realm Reborn\game`,
		`C:\Program Files (x86)\Steam\steamapps\common\FINAL FANTASY XIV Online\game`,
		`C:\Program Files (x86)\Steam\steamapps\common\FINAL FANTASY XIV - A Realm Reborn\game`,
		"~/.xlcore/ffxiv/game",
		"~/.local/share/Steam/steamapps/common/FINAL FANTASY XIV Online/game",
	},
	RegionChina: {
		`C:\Program Files (x86)\上海数龙科技有限公司\最终幻想XIV\game`,
		`C:\Program Files (x86)\SNDA\FFXIV\game`,
	},
	RegionKorea: {
		`C:\Program Files (x86)\FINAL FANTASY XIV - KOREA\game`,
	},
}

// IsInstallation reports whether root looks like a game directory.
func IsInstallation(root string) bool {
	fi, err := os.Stat(filepath.Join(root, "sqpack", "ffxiv"))
	return err == nil && fi.IsDir()
}

// FindInstallation returns the game directory for region ("global", "china"
// or "korea", with or without a leading colon). An entry in overrides is
// used as is; otherwise Candidates are probed.
func FindInstallation(region string, overrides map[string]string) (string, error) {
	region = strings.ToLower(strings.TrimPrefix(region, ":"))

	candidates, ok := Candidates[region]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	if root, ok := overrides[region]; ok && root != "" {
		return root, nil
	}

	for _, c := range candidates {
		c = expandHome(c)
		if IsInstallation(c) {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: %s client", ErrInstallationNotFound, region)
}

func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~/")
	if !ok {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, rest)
}

// LoadTemplate reads a template given either as a file system path or as an
// "A::B" reference into an installation.
func LoadTemplate(ref string, overrides map[string]string) ([]byte, error) {
	p, ok := ParseTemplatePath(ref)
	if !ok {
		return os.ReadFile(ref)
	}

	root := p.Root
	if p.IsRegion() {
		var err error
		if root, err = FindInstallation(root, overrides); err != nil {
			return nil, err
		}
	}

	return Open(root, p.Internal)
}
