package model

// Version is the release version, overridden at build time via -ldflags.
var Version = "dev"

// PackageInfo represents one installed Homebrew package (formula or cask).
type PackageInfo struct {
	Name     string   // Canonical name (formula name or cask token)
	Names    []string // Display names; casks sometimes report several
	Version  string   // Installed version
	Desc     string   // Optional one-line description
	Homepage string   // Optional homepage URL
	Pinned   bool     // True if the formula is pinned to its version
	Outdated bool     // True if a newer version is available
	IsCask   bool     // True for casks, false for formulae
}

// OutdatedPackage represents one entry from an outdated-packages query.
type OutdatedPackage struct {
	Name              string
	InstalledVersions []string // All currently installed versions
	CurrentVersion    string   // The version an upgrade would install
	Pinned            bool
	IsCask            bool
}

// SearchResults holds the two sections of a search listing.
type SearchResults struct {
	Formulae []string
	Casks    []string
}

// DependencyNode is one node in a reconstructed dependency tree.
// Children preserve the order of the source listing.
type DependencyNode struct {
	Name     string
	Children []*DependencyNode
}

// DoctorSeverity classifies a diagnostic entry.
type DoctorSeverity string

const (
	SeverityWarning DoctorSeverity = "warning"
	SeverityError   DoctorSeverity = "error"
)

// DoctorEntry is one parsed diagnostic from a doctor run.
type DoctorEntry struct {
	Severity DoctorSeverity
	Message  string   // The line that opened the entry, marker stripped
	Details  []string // Indented follow-up lines belonging to this entry
}

// CleanupSummary aggregates the three independent signals of a cleanup run.
// Absent signals yield zero values, never an error.
type CleanupSummary struct {
	RemovedFormulae []string
	RemovedCasks    []string
	FreedBytes      int64
}

// AppStoreEntry is one line of a Mac App Store listing.
type AppStoreEntry struct {
	ID         uint64
	Name       string
	Version    string // Installed version
	NewVersion string // Set only for the outdated listing variant
}

// ServiceStatus describes one managed background service.
type ServiceStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	User   string `json:"user"`
	File   string `json:"file"`
}

// TapInfo describes one installed tap.
type TapInfo struct {
	Name         string   `json:"name"`
	Official     bool     `json:"official"`
	FormulaNames []string `json:"formula_names"`
	CaskTokens   []string `json:"cask_tokens"`
}

// Snapshot aggregates the independent read-only queries into one view,
// for JSON output and the web API.
type Snapshot struct {
	Formulae []PackageInfo     `json:"formulae"`
	Casks    []PackageInfo     `json:"casks"`
	Outdated []OutdatedPackage `json:"outdated"`
	Pinned   []string          `json:"pinned"`
	Taps     []TapInfo         `json:"taps"`
	Services []ServiceStatus   `json:"services"`
}
