package gizmo

import "fmt"

// Asset is a downloadable file attached to a Release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// Release is a GitHub release. Latest is not part of the API response, it
// is computed once when the release list is fetched.
type Release struct {
	Name       string  `json:"name"`
	TagName    string  `json:"tag_name"`
	Assets     []Asset `json:"assets"`
	Prerelease bool    `json:"prerelease"`
	Draft      bool    `json:"draft"`
	Latest     bool    `json:"-"`
}

// Equal compares releases by display name.
func (r Release) Equal(other Release) bool {
	return r.Name == other.Name
}

func (r Release) DisplayName() string {
	suffix := ""
	switch {
	case r.Draft:
		suffix = " (draft)"
	case r.Prerelease:
		suffix = " (prerelease)"
	case r.Latest:
		suffix = " (latest)"
	}
	return r.Name + suffix
}

// FindAsset returns the asset called name.
func (r Release) FindAsset(name string) (Asset, error) {
	for _, a := range r.Assets {
		if a.Name == name {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("could not find %s in release %s assets", name, r.Name)
}

// LatestRelease returns the release flagged as latest.
func LatestRelease(releases []Release) (Release, bool) {
	for _, r := range releases {
		if r.Latest {
			return r, true
		}
	}
	return Release{}, false
}
