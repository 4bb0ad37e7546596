package github

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	userAgent       = "gizmo-setup/1.0"
	releaseTimeout  = 30 * time.Second
	releasesPerPage = "100"
)

var ErrNoStableRelease = errors.New("no stable releases found")

// Client talks to the GitHub REST API. Downloads have no deadline; a
// release listing gives up after releaseTimeout.
type Client struct {
	http *resty.Client
	log  *logrus.Entry
}

func NewClient(config gizmo.Config, log *logrus.Entry) *Client {
	client := resty.New()
	client.SetBaseURL(config.GitHubAPI)
	client.SetHeader("User-Agent", userAgent)
	if config.GitHubToken != "" {
		client.SetAuthToken(config.GitHubToken)
	}

	return &Client{http: client, log: log}
}

// FetchReleases lists the releases of owner/repo in API order and marks
// the latest one.
func (c *Client) FetchReleases(owner, repo string) ([]gizmo.Release, error) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	var releases []gizmo.Release
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		SetPathParams(map[string]string{"owner": owner, "repo": repo}).
		SetQueryParam("per_page", releasesPerPage).
		SetResult(&releases).
		Get("/repos/{owner}/{repo}/releases")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch releases for %s/%s: %w", owner, repo, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode(), resp.String())
	}

	if err := MarkLatest(releases); err != nil {
		return nil, fmt.Errorf("%s/%s: %w", owner, repo, err)
	}

	c.log.WithFields(logrus.Fields{"repo": owner + "/" + repo, "count": len(releases)}).Info("fetched releases")
	return releases, nil
}

// MarkLatest flags the first release that is neither a draft nor a
// prerelease. Earlier flags are cleared.
func MarkLatest(releases []gizmo.Release) error {
	found := false
	for i := range releases {
		releases[i].Latest = false
		if !found && !releases[i].Draft && !releases[i].Prerelease {
			releases[i].Latest = true
			found = true
		}
	}
	if !found {
		return ErrNoStableRelease
	}
	return nil
}

// AssetPath is where DownloadAsset stores asset. The same inputs always
// map to the same file.
func AssetPath(cacheRoot, owner, repo string, release gizmo.Release, asset gizmo.Asset) string {
	return filepath.Join(cacheRoot, owner, repo, release.Name, asset.Name)
}

// DownloadAsset fetches asset into the cache and returns its local path.
// An asset that is already cached is not fetched again.
func (c *Client) DownloadAsset(asset gizmo.Asset, owner, repo string, release gizmo.Release, cacheRoot string) (string, error) {
	dest := AssetPath(cacheRoot, owner, repo, release, asset)
	log := c.log.WithFields(logrus.Fields{"asset": asset.Name, "dest": dest})

	if info, err := os.Stat(dest); err == nil && info.Mode().IsRegular() {
		log.Info("asset already cached")
		return dest, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("could not create download directory: %w", err)
	}

	part := dest + ".part"
	resp, err := c.http.R().
		SetHeader("Accept", "application/octet-stream").
		SetOutput(part).
		Get(asset.DownloadURL)
	if err != nil {
		os.Remove(part)
		return "", fmt.Errorf("failed to download %s: %w", asset.Name, err)
	}

	if resp.IsError() {
		os.Remove(part)
		return "", fmt.Errorf("failed to download %s: status %d", asset.Name, resp.StatusCode())
	}

	if err := os.Rename(part, dest); err != nil {
		os.Remove(part)
		return "", fmt.Errorf("failed to move %s into the cache: %w", asset.Name, err)
	}

	log.Info("downloaded asset")
	return dest, nil
}
