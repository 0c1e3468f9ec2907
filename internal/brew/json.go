package brew

import (
	"encoding/json"

	"brewdeck/internal/model"
)

// nameList tolerates Homebrew's name fields being either a single string
// or an array of strings, normalizing to an ordered list.
type nameList []string

func (n *nameList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*n = nameList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*n = nameList(many)
	return nil
}

// infoEnvelope is the v2 JSON envelope shared by `brew info --json=v2`
// and `brew outdated --json=v2`. Optional fields (desc, homepage) use
// pointers so absence never fails the decode.
type infoEnvelope struct {
	Formulae []formulaRecord `json:"formulae"`
	Casks    []caskRecord    `json:"casks"`
}

type formulaRecord struct {
	Name     string  `json:"name"`
	Desc     *string `json:"desc"`
	Homepage *string `json:"homepage"`
	Pinned   bool    `json:"pinned"`
	Outdated bool    `json:"outdated"`
	Versions struct {
		Stable string `json:"stable"`
	} `json:"versions"`
	Installed []struct {
		Version string `json:"version"`
	} `json:"installed"`
}

type caskRecord struct {
	Token     string   `json:"token"`
	Name      nameList `json:"name"`
	Desc      *string  `json:"desc"`
	Homepage  *string  `json:"homepage"`
	Version   string   `json:"version"`
	Installed *string  `json:"installed"`
	Outdated  bool     `json:"outdated"`
}

// ParseInstalled decodes `brew info --installed --json=v2` output into
// formula and cask package lists. Malformed JSON is a hard error.
func ParseInstalled(data []byte) (formulae, casks []model.PackageInfo, err error) {
	var env infoEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, &ParseError{Format: "info json", Err: err}
	}

	for _, f := range env.Formulae {
		pkg := model.PackageInfo{
			Name:     f.Name,
			Names:    []string{f.Name},
			Version:  f.Versions.Stable,
			Desc:     deref(f.Desc),
			Homepage: deref(f.Homepage),
			Pinned:   f.Pinned,
			Outdated: f.Outdated,
		}
		if len(f.Installed) > 0 {
			pkg.Version = f.Installed[len(f.Installed)-1].Version
		}
		formulae = append(formulae, pkg)
	}

	for _, c := range env.Casks {
		pkg := model.PackageInfo{
			Name:     c.Token,
			Names:    append([]string(nil), c.Name...),
			Version:  c.Version,
			Desc:     deref(c.Desc),
			Homepage: deref(c.Homepage),
			Outdated: c.Outdated,
			IsCask:   true,
		}
		if c.Installed != nil {
			pkg.Version = *c.Installed
		}
		casks = append(casks, pkg)
	}
	return formulae, casks, nil
}

// outdatedEnvelope is the v2 envelope for `brew outdated --json=v2`.
type outdatedEnvelope struct {
	Formulae []outdatedRecord `json:"formulae"`
	Casks    []outdatedRecord `json:"casks"`
}

type outdatedRecord struct {
	Name              string   `json:"name"`
	InstalledVersions nameList `json:"installed_versions"`
	CurrentVersion    string   `json:"current_version"`
	Pinned            bool     `json:"pinned"`
}

// ParseOutdated decodes `brew outdated --json=v2` output.
func ParseOutdated(data []byte) ([]model.OutdatedPackage, error) {
	var env outdatedEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ParseError{Format: "outdated json", Err: err}
	}

	var out []model.OutdatedPackage
	for _, f := range env.Formulae {
		out = append(out, model.OutdatedPackage{
			Name:              f.Name,
			InstalledVersions: append([]string(nil), f.InstalledVersions...),
			CurrentVersion:    f.CurrentVersion,
			Pinned:            f.Pinned,
		})
	}
	for _, c := range env.Casks {
		out = append(out, model.OutdatedPackage{
			Name:              c.Name,
			InstalledVersions: append([]string(nil), c.InstalledVersions...),
			CurrentVersion:    c.CurrentVersion,
			IsCask:            true,
		})
	}
	return out, nil
}

// ParseServices decodes the flat array from `brew services list --json`.
func ParseServices(data []byte) ([]model.ServiceStatus, error) {
	var services []model.ServiceStatus
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, &ParseError{Format: "services json", Err: err}
	}
	return services, nil
}

// ParseTaps decodes the flat array from `brew tap-info --json --installed`.
func ParseTaps(data []byte) ([]model.TapInfo, error) {
	var taps []model.TapInfo
	if err := json.Unmarshal(data, &taps); err != nil {
		return nil, &ParseError{Format: "tap-info json", Err: err}
	}
	return taps, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
