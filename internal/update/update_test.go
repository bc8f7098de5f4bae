package update

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func stubDetect(t *testing.T, v string, err error) *int {
	t.Helper()
	calls := 0
	old := detectLatest
	detectLatest = func() (string, error) {
		calls++
		return v, err
	}
	t.Cleanup(func() { detectLatest = old })
	return &calls
}

func TestCheck_NoNetworkOrCI(t *testing.T) {
	calls := stubDetect(t, "9.9.9", nil)
	t.Setenv("CI", "1")
	if latest, newer, err := Check("1.0.0", false); err != nil || latest != "" || newer {
		t.Fatalf("expected no-op in CI; got latest=%q newer=%v err=%v", latest, newer, err)
	}
	t.Setenv("CI", "")
	if latest, _, _ := Check("1.0.0", true); latest != "" {
		t.Fatalf("expected no-op without network; got %q", latest)
	}
	if *calls != 0 {
		t.Fatalf("expected no release lookups, got %d", *calls)
	}
}

func TestNormalizeAndCompare(t *testing.T) {
	if normalize(" v1.2.3 ") != "1.2.3" {
		t.Fatalf("normalize failed")
	}
	if compare("1.2.3", "1.2.3") != 0 {
		t.Fatalf("compare equal failed")
	}
	if compare("1.3.0", "1.2.9") <= 0 {
		t.Fatalf("compare greater failed")
	}
	if compare("1.2.0", "1.2.1") >= 0 {
		t.Fatalf("compare lesser failed")
	}
	if compare("1.2.0", "1.2.0-rc.1") <= 0 {
		t.Fatalf("release should sort after prerelease")
	}
	if compare("garbage", "0.0.1") >= 0 {
		t.Fatalf("unparseable version should sort first")
	}
}

func TestCheck_UsesCacheWhenFresh(t *testing.T) {
	calls := stubDetect(t, "9.9.9", nil)
	t.Setenv("CI", "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	c := cache{LastChecked: time.Now(), Latest: "1.2.3"}
	path := filepath.Join(dir, "litscan", cacheFileName)
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	b, _ := json.Marshal(c)
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatal(err)
	}
	latest, newer, err := Check("1.2.2", false)
	if err != nil {
		t.Fatal(err)
	}
	if latest != "1.2.3" || !newer {
		t.Fatalf("expected cached latest=1.2.3 and newer=true; got latest=%q newer=%v", latest, newer)
	}
	if *calls != 0 {
		t.Fatalf("fresh cache should not hit the network")
	}
}

func TestCheck_RefreshesStaleCache(t *testing.T) {
	calls := stubDetect(t, "v2.0.0", nil)
	t.Setenv("CI", "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	latest, newer, err := Check("v1.9.0", false)
	if err != nil {
		t.Fatal(err)
	}
	if latest != "2.0.0" || !newer || *calls != 1 {
		t.Fatalf("got latest=%q newer=%v calls=%d", latest, newer, *calls)
	}
	saved, err := loadCache()
	if err != nil || saved.Latest != "2.0.0" {
		t.Fatalf("expected cache written; got %+v err=%v", saved, err)
	}
}

func TestCheck_LookupFailure(t *testing.T) {
	stubDetect(t, "", errors.New("offline"))
	t.Setenv("CI", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	latest, newer, err := Check("1.0.0", false)
	if err != nil || latest != "" || newer {
		t.Fatalf("lookup failures are silent; got latest=%q newer=%v err=%v", latest, newer, err)
	}
}
