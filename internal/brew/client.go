package brew

import (
	"context"
	"strings"
	"sync"
	"time"

	"brewdeck/internal/model"
)

// Client is the call-site layer: one method per brew/mas surface. It
// owns the resolved executable paths and applies each operation's exit
// code policy. Methods are safe for concurrent use; the engine imposes
// no serialization of its own beyond the bulk sequencer.
type Client struct {
	brewPath string
	masPath  string // empty when mas is not installed

	// Indirection over the runner for tests.
	run    func(context.Context, CommandSpec) (ExecutionResult, error)
	stream func(context.Context, CommandSpec) (<-chan OutputChunk, error)
}

// NewClient resolves the brew executable and, opportunistically, mas.
// A missing brew is fatal; a missing mas only disables the App Store
// listing methods.
func NewClient() (*Client, error) {
	brewPath, err := ResolveExecutable("brew")
	if err != nil {
		return nil, err
	}
	c := &Client{
		brewPath: brewPath,
		run:      Run,
		stream:   Stream,
	}
	if masPath, err := ResolveExecutable("mas"); err == nil {
		c.masPath = masPath
	}
	return c, nil
}

// brewCmd builds a brew invocation with the standard environment.
func (c *Client) brewCmd(args ...string) CommandSpec {
	return Command(c.brewPath, args, nil)
}

// runChecked executes a brew command and applies the named operation's
// exit-code policy: non-zero exit is an ExitError unless the policy
// table says the result shape means an empty collection.
func (c *Client) runChecked(ctx context.Context, op string, args ...string) (ExecutionResult, error) {
	res, err := c.run(ctx, c.brewCmd(args...))
	if err != nil {
		return res, err
	}
	if res.ExitCode != 0 && !emptyResultOK(op, res) {
		return res, &ExitError{Code: res.ExitCode, Stderr: res.Stderr}
	}
	return res, nil
}

// InstalledPackages fetches all installed formulae and casks.
func (c *Client) InstalledPackages(ctx context.Context) (formulae, casks []model.PackageInfo, err error) {
	res, err := c.runChecked(ctx, "info", "info", "--installed", "--json=v2")
	if err != nil {
		return nil, nil, err
	}
	return ParseInstalled([]byte(res.Stdout))
}

// Outdated fetches formulae and casks with a newer version available.
func (c *Client) Outdated(ctx context.Context) ([]model.OutdatedPackage, error) {
	res, err := c.runChecked(ctx, "outdated", "outdated", "--json=v2")
	if err != nil {
		return nil, err
	}
	return ParseOutdated([]byte(res.Stdout))
}

// Pinned lists pinned formula names. An empty pin list surfaces as a
// non-zero exit with empty stdout; the policy table maps that to an
// empty slice.
func (c *Client) Pinned(ctx context.Context) ([]string, error) {
	res, err := c.run(ctx, c.brewCmd("list", "--pinned"))
	if err != nil {
		return nil, err
	}
	return ParseNameList("pin-list", res)
}

// Dependents lists installed packages that depend on name.
func (c *Client) Dependents(ctx context.Context, name string) ([]string, error) {
	res, err := c.run(ctx, c.brewCmd("uses", "--installed", name))
	if err != nil {
		return nil, err
	}
	return ParseNameList("uses", res)
}

// Search queries formulae and casks matching query.
func (c *Client) Search(ctx context.Context, query string) (model.SearchResults, error) {
	res, err := c.runChecked(ctx, "search", "search", "--formulae", "--casks", query)
	if err != nil {
		return model.SearchResults{}, err
	}
	return ParseSearch(res.Stdout), nil
}

// DepTree fetches and reconstructs the dependency tree of name.
func (c *Client) DepTree(ctx context.Context, name string) (*model.DependencyNode, error) {
	res, err := c.runChecked(ctx, "deps", "deps", "--tree", name)
	if err != nil {
		return nil, err
	}
	return ParseDependencyTree(res.Stdout), nil
}

// Doctor runs diagnostics. Doctor exits non-zero whenever it has
// warnings to report, so the exit code is ignored and the combined
// output is parsed instead. Warnings go to stderr.
func (c *Client) Doctor(ctx context.Context) ([]model.DoctorEntry, error) {
	res, err := c.run(ctx, c.brewCmd("doctor"))
	if err != nil {
		return nil, err
	}
	return ParseDoctor(res.Stdout + "\n" + res.Stderr), nil
}

// Cleanup removes stale downloads and old versions. With dryRun it only
// reports what would be removed.
func (c *Client) Cleanup(ctx context.Context, dryRun bool) (model.CleanupSummary, error) {
	args := []string{"cleanup", "--prune=all", "-s"}
	if dryRun {
		args = []string{"cleanup", "--dry-run"}
	}
	res, err := c.runChecked(ctx, "cleanup", args...)
	if err != nil {
		return model.CleanupSummary{}, err
	}
	return ParseCleanup(res.Stdout + "\n" + res.Stderr), nil
}

// Services lists managed background services.
func (c *Client) Services(ctx context.Context) ([]model.ServiceStatus, error) {
	res, err := c.runChecked(ctx, "services", "services", "list", "--json")
	if err != nil {
		return nil, err
	}
	return ParseServices([]byte(res.Stdout))
}

// Taps lists installed taps.
func (c *Client) Taps(ctx context.Context) ([]model.TapInfo, error) {
	res, err := c.runChecked(ctx, "tap-info", "tap-info", "--json", "--installed")
	if err != nil {
		return nil, err
	}
	return ParseTaps([]byte(res.Stdout))
}

// Pin pins a formula to its installed version.
func (c *Client) Pin(ctx context.Context, name string) error {
	_, err := c.runChecked(ctx, "pin", "pin", name)
	return err
}

// Unpin releases a pinned formula.
func (c *Client) Unpin(ctx context.Context, name string) error {
	_, err := c.runChecked(ctx, "unpin", "unpin", name)
	return err
}

// Uninstall removes a single package.
func (c *Client) Uninstall(ctx context.Context, name string) error {
	_, err := c.runChecked(ctx, "uninstall", "uninstall", name)
	return err
}

// BundleDump writes the current install set as a Brewfile to stdout and
// returns it.
func (c *Client) BundleDump(ctx context.Context) (string, error) {
	res, err := c.runChecked(ctx, "bundle", "bundle", "dump", "--describe", "--file=-")
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// BundleInstall streams a `brew bundle install` run against the given
// Brewfile.
func (c *Client) BundleInstall(ctx context.Context, file string) (<-chan OutputChunk, error) {
	return c.stream(ctx, c.brewCmd("bundle", "install", "--file="+file))
}

// InstallStream streams a single-package install.
func (c *Client) InstallStream(ctx context.Context, name string) (<-chan OutputChunk, error) {
	return c.stream(ctx, c.brewCmd("install", name))
}

// UpgradeStream streams a single-package upgrade. An empty name
// upgrades everything in one invocation.
func (c *Client) UpgradeStream(ctx context.Context, name string) (<-chan OutputChunk, error) {
	args := []string{"upgrade"}
	if name != "" {
		args = append(args, name)
	}
	return c.stream(ctx, c.brewCmd(args...))
}

// InstallAll installs the named packages sequentially, one combined
// progress feed.
func (c *Client) InstallAll(ctx context.Context, names []string) <-chan OutputChunk {
	return SequenceStream(ctx, "Installing", names, c.InstallStream)
}

// UpgradeAll upgrades the named packages sequentially.
func (c *Client) UpgradeAll(ctx context.Context, names []string) <-chan OutputChunk {
	return SequenceStream(ctx, "Upgrading", names, c.UpgradeStream)
}

// UninstallAll removes the named packages sequentially. Uninstall is
// quick and non-streaming; failures become report lines, not aborts.
func (c *Client) UninstallAll(ctx context.Context, names []string) <-chan OutputChunk {
	return SequencePlain(ctx, "Uninstalling", names, c.Uninstall)
}

// AppStoreListing lists installed Mac App Store apps via mas.
func (c *Client) AppStoreListing(ctx context.Context) ([]model.AppStoreEntry, error) {
	return c.masListing(ctx, "list")
}

// AppStoreOutdated lists Mac App Store apps with pending updates.
func (c *Client) AppStoreOutdated(ctx context.Context) ([]model.AppStoreEntry, error) {
	return c.masListing(ctx, "outdated")
}

func (c *Client) masListing(ctx context.Context, sub string) ([]model.AppStoreEntry, error) {
	if c.masPath == "" {
		return nil, nil
	}
	res, err := c.run(ctx, Command(c.masPath, []string{sub}, nil))
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return nil, &ExitError{Code: res.ExitCode, Stderr: res.Stderr}
	}
	return ParseAppStoreListing(res.Stdout), nil
}

// QuarantineTime reports when an installed application was downloaded,
// decoded from its quarantine extended attribute.
func (c *Client) QuarantineTime(ctx context.Context, appPath string) (time.Time, error) {
	spec := Command("/usr/bin/xattr", []string{"-p", "com.apple.quarantine", appPath}, nil)
	res, err := c.run(ctx, spec)
	if err != nil {
		return time.Time{}, err
	}
	if res.ExitCode != 0 {
		return time.Time{}, &ExitError{Code: res.ExitCode, Stderr: res.Stderr}
	}
	return DecodeQuarantineTimestamp(strings.TrimSpace(res.Stdout))
}

// Snapshot issues the independent read-only queries concurrently and
// aggregates them. The commands share no mutable state and brew's own
// lock does not cover read-only queries, so there is nothing to
// serialize. The first error wins; partial data is discarded.
func (c *Client) Snapshot(ctx context.Context) (model.Snapshot, error) {
	var snap model.Snapshot
	var firstErr error
	var mu sync.Mutex
	var wg sync.WaitGroup

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		formulae, casks, err := c.InstalledPackages(ctx)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		snap.Formulae, snap.Casks = formulae, casks
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		outdated, err := c.Outdated(ctx)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		snap.Outdated = outdated
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		pinned, err := c.Pinned(ctx)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		snap.Pinned = pinned
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		taps, err := c.Taps(ctx)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		snap.Taps = taps
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		services, err := c.Services(ctx)
		if err != nil {
			fail(err)
			return
		}
		mu.Lock()
		snap.Services = services
		mu.Unlock()
	}()
	wg.Wait()

	if firstErr != nil {
		return model.Snapshot{}, firstErr
	}
	return snap, nil
}

// BrewPath reports the resolved brew executable, for display.
func (c *Client) BrewPath() string { return c.brewPath }

// HasAppStore reports whether mas was found.
func (c *Client) HasAppStore() bool { return c.masPath != "" }
