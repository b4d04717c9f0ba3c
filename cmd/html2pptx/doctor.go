package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2pptx/internal/config"
	"github.com/alnah/go-html2pptx/internal/fileutil"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable    bool   `json:"temp_writable"`
	WorkDirWritable bool   `json:"workdir_writable"`
	DefaultDocument string `json:"default_document"`
	DocumentFound   bool   `json:"default_document_found"`
}

// doctorProbes are the side-effecting lookups doctor performs.
type doctorProbes struct {
	getenv     func(string) string
	lookPath   func() (string, bool)
	version    func(bin string) (string, error)
	fileExists func(string) bool
	tempDir    func() string
	workDir    func() (string, error)
}

func defaultProbes() doctorProbes {
	return doctorProbes{
		getenv:     os.Getenv,
		lookPath:   launcher.LookPath,
		version:    browserVersion,
		fileExists: fileutil.FileExists,
		tempDir:    os.TempDir,
		workDir:    os.Getwd,
	}
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	jsonOutput := fs.Bool("json", false, "output JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "Error: %v: %v\n", ErrInvalidFlag, err)
		return ExitUsage
	}

	result := runDoctor(defaultProbes())

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(p doctorProbes) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  p.getenv("ROD_NO_SANDBOX"),
			BrowserBin: p.getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result, p)
	checkEnvironment(result, p)
	checkSystem(result, p)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium installation. A missing browser is a
// warning only: the rod renderer downloads Chromium on first use.
func checkChrome(result *doctorResult, p doctorProbes) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = p.lookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found: --renderer rod will download Chromium, --renderer chrome will fail")
			return
		}
	}

	if !p.fileExists(chromePath) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	if v, err := p.version(chromePath); err == nil {
		result.Chrome.Version = v
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// browserVersion runs bin --version.
func browserVersion(bin string) (string, error) {
	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- binary is user-configured
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, p doctorProbes) {
	result.Env.Container, result.Env.ContainerHint = isContainer(p)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if p.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(p doctorProbes) (bool, string) {
	if p.getenv("HTML2PPTX_CONTAINER") == "1" {
		return true, "HTML2PPTX_CONTAINER=1"
	}
	if p.fileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := p.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if p.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp and working directories accept files, and
// looks for the default document.
func checkSystem(result *doctorResult, p doctorProbes) {
	tmpDir := p.tempDir()
	if dirWritable(tmpDir) {
		result.System.TempWritable = true
	} else {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	}

	// Slide images are written to the working directory by default.
	wd, err := p.workDir()
	if err == nil && dirWritable(wd) {
		result.System.WorkDirWritable = true
	} else {
		result.Warnings = append(result.Warnings,
			"Working directory not writable: pass --workdir for slide images")
	}

	result.System.DefaultDocument = config.DefaultDocument
	result.System.DocumentFound = p.fileExists(config.DefaultDocument)
}

// dirWritable creates and removes a probe file in dir.
func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".html2pptx-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "html2pptx doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.System.WorkDirWritable {
		fmt.Fprintln(w, "  [OK] Working directory: writable")
	} else {
		fmt.Fprintln(w, "  [WARN] Working directory: not writable")
	}
	if r.System.DocumentFound {
		fmt.Fprintf(w, "  [OK] %s: present\n", r.System.DefaultDocument)
	} else {
		fmt.Fprintf(w, "  [--] %s: absent (pass --document)\n", r.System.DefaultDocument)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to export")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
