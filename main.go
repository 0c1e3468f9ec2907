package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"brewdeck/internal/brew"
	"brewdeck/internal/model"
	"brewdeck/internal/tui"
	"brewdeck/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "brewdeck",
		Repository: "brewdeck",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/brewdeck/brewdeck/releases")
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: brewdeck [options]\n\n")
		fmt.Fprintf(os.Stderr, "brewdeck is a terminal front-end for Homebrew.\n")
		fmt.Fprintf(os.Stderr, "It browses installed packages, streams upgrades, and parses\n")
		fmt.Fprintf(os.Stderr, "brew's output into something you can actually read.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  brewdeck              # Start TUI mode\n")
		fmt.Fprintf(os.Stderr, "  brewdeck --json       # Dump a snapshot as JSON\n")
		fmt.Fprintf(os.Stderr, "  brewdeck --deps wget  # Print wget's dependency tree\n")
		fmt.Fprintf(os.Stderr, "  brewdeck --doctor     # Run and parse brew doctor\n")
	}

	jsonFlag := pflag.BoolP("json", "j", false, "Output a full snapshot as JSON")
	doctorFlag := pflag.BoolP("doctor", "d", false, "Run brew doctor and print parsed diagnostics")
	depsFlag := pflag.StringP("deps", "D", "", "Print the dependency tree of the given package")
	cleanupFlag := pflag.BoolP("cleanup", "c", false, "Run brew cleanup and summarize what was removed")
	dryRunFlag := pflag.BoolP("dry-run", "n", false, "With --cleanup, only report what would be removed")
	dumpFlag := pflag.BoolP("dump", "b", false, "Dump the installed set as a Brewfile on stdout")
	webFlag := pflag.BoolP("web", "w", false, "Start the JSON API server on http://localhost:8080")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("brewdeck version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	client, err := brew.NewClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Is Homebrew installed? See https://brew.sh\n")
		os.Exit(1)
	}

	if *webFlag {
		web.StartServer(client, "")
		return
	}

	if *jsonFlag {
		runJSONMode(client)
		return
	}

	if *doctorFlag {
		runDoctorMode(client)
		return
	}

	if *depsFlag != "" {
		runDepsMode(client, *depsFlag)
		return
	}

	if *cleanupFlag {
		runCleanupMode(client, *dryRunFlag)
		return
	}

	if *dumpFlag {
		brewfile, err := client.BundleDump(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(brewfile)
		return
	}

	// Default: TUI
	runTuiMode(client)
}

func runJSONMode(client *brew.Client) {
	snap, err := client.Snapshot(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(snap)
}

func runDoctorMode(client *brew.Client) {
	entries, err := client.Doctor(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("Your system is ready to brew.")
		return
	}
	for _, entry := range entries {
		fmt.Printf("[%s] %s\n", entry.Severity, entry.Message)
		for _, d := range entry.Details {
			fmt.Printf("    %s\n", d)
		}
	}
}

func runDepsMode(client *brew.Client, name string) {
	tree, err := client.DepTree(context.Background(), name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printTree(tree, 0)
}

func printTree(node *model.DependencyNode, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Print("  ")
	}
	fmt.Println(node.Name)
	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func runCleanupMode(client *brew.Client, dryRun bool) {
	summary, err := client.Cleanup(context.Background(), dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	verb := "Removed"
	if dryRun {
		verb = "Would remove"
	}
	fmt.Printf("%s %d formulae and %d casks, freeing %d bytes\n",
		verb, len(summary.RemovedFormulae), len(summary.RemovedCasks), summary.FreedBytes)
	for _, name := range summary.RemovedFormulae {
		fmt.Printf("  formula: %s\n", name)
	}
	for _, name := range summary.RemovedCasks {
		fmt.Printf("  cask:    %s\n", name)
	}
}

func runTuiMode(client *brew.Client) {
	m := tui.InitialModel(client)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
