package wizard

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	gizmo "github.com/gizmo-platform/gizmo-setup/pkg"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type fakeReleases struct {
	mu        sync.Mutex
	releases  []gizmo.Release
	fetchErr  error
	fetches   int
	downloads []string
	// gate, when set, holds every fetch until it is closed.
	gate chan struct{}
}

func (f *fakeReleases) FetchReleases(owner, repo string) ([]gizmo.Release, error) {
	f.mu.Lock()
	f.fetches++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]gizmo.Release, len(f.releases))
	copy(out, f.releases)
	// Latest marking belongs to the GitHub client; mimic it.
	for i := range out {
		if !out[i].Draft && !out[i].Prerelease {
			out[i].Latest = true
			break
		}
	}
	return out, nil
}

func (f *fakeReleases) DownloadAsset(asset gizmo.Asset, owner, repo string, release gizmo.Release, cacheRoot string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads = append(f.downloads, asset.Name)
	return filepath.Join(cacheRoot, owner, repo, release.Name, asset.Name), nil
}

func (f *fakeReleases) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

// fakeDrives keeps a list of volumes and relabels one when it is
// formatted, the way a real card remounts under its new name.
type fakeDrives struct {
	mu        sync.Mutex
	devices   []gizmo.Device
	calls     []string
	formatErr error
	writeErr  error
	listPanic bool
}

func (f *fakeDrives) List() ([]gizmo.Device, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listPanic {
		panic("usb controller reset")
	}
	f.calls = append(f.calls, "list")
	out := make([]gizmo.Device, len(f.devices))
	copy(out, f.devices)
	return out, nil
}

func (f *fakeDrives) Format(dev gizmo.Device, labelSuffix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("format %s %s", dev.Path, labelSuffix))
	if f.formatErr != nil {
		return f.formatErr
	}
	for i := range f.devices {
		if f.devices[i].Equal(dev) {
			label := gizmo.VolumeLabel(labelSuffix)
			f.devices[i].Label = label
			f.devices[i].Path = "/media/op/" + label
		}
	}
	return nil
}

func (f *fakeDrives) Write(source string, dev gizmo.Device, overwrite bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("write %s %s", filepath.Base(source), dev.Path))
	return f.writeErr
}

func (f *fakeDrives) Flush(dev gizmo.Device) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "flush "+dev.Path)
	return nil
}

func (f *fakeDrives) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeDrives) count(prefix string) int {
	n := 0
	for _, c := range f.recorded() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// plugIn replaces the attached volumes, as if cards were swapped.
func (f *fakeDrives) plugIn(devices ...gizmo.Device) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.devices = devices
}

func newTestWizard(t *testing.T, kind FlowKind, rel *fakeReleases, drives *fakeDrives) *Wizard {
	t.Helper()
	flow, err := FlowByKind(kind)
	if err != nil {
		t.Fatal(err)
	}
	log, _ := test.NewNullLogger()
	return New(flow, Deps{
		Releases:  rel,
		Drives:    drives,
		CacheRoot: "/scratch/github_downloads",
		Log:       logrus.NewEntry(log),
	})
}

// tickUntil runs frames until cond holds for the returned screen.
func tickUntil(t *testing.T, w *Wizard, cond func(Screen) bool) Screen {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		scr := w.Tick()
		if cond(scr) {
			return scr
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition never held, wizard at %s (err: %v)", w.Current(), w.Err())
	return Screen{}
}

func atStep(step StepID) func(Screen) bool {
	return func(s Screen) bool { return s.Err == nil && s.Step == step && s.Loading == "" }
}

func failed(s Screen) bool {
	return s.Err != nil
}

func driverStationReleases() *fakeReleases {
	return &fakeReleases{releases: []gizmo.Release{
		{Name: "v3-draft", TagName: "v3", Draft: true},
		{Name: "v2", TagName: "v2", Assets: []gizmo.Asset{{Name: "ds-ramdisk.zip"}}},
		{Name: "v1", TagName: "v1", Assets: []gizmo.Asset{{Name: "ds-ramdisk.zip"}}},
	}}
}

func blankCard(name string) gizmo.Device {
	return gizmo.Device{Path: "/media/op/" + name, Label: name, Node: "/dev/" + strings.ToLower(name)}
}
