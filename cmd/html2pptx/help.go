package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Capture HTML slides into a .pptx deck (default)")
	fmt.Fprintln(w, "  inspect    Show page size and pictures of a .pptx deck")
	fmt.Fprintln(w, "  doctor     Check browser and system readiness")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2pptx help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx [convert] [document] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capture each slide of an HTML deck with a headless browser and assemble")
	fmt.Fprintln(w, "the images into a PowerPoint file, one full-bleed picture per page.")
	fmt.Fprintln(w, "Slide i is loaded as <document>?slide=i for i = 0..slides-1.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  document    HTML file or URL (default pitchdeck.html)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --document <s>        HTML file or URL")
	fmt.Fprintln(w, "  -n, --slides <n>          Number of slides (default 12)")
	fmt.Fprintln(w, "      --slide-param <s>     Query parameter selecting a slide (default slide)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Deck path (default PitchDeck.pptx)")
	fmt.Fprintln(w, "      --workdir <dir>       Directory for slide_temp_<i>.png (default .)")
	fmt.Fprintln(w, "      --page-width <emu>    Page width in EMU (default 12192000)")
	fmt.Fprintln(w, "      --page-height <emu>   Page height in EMU (default 6858000)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Capture:")
	fmt.Fprintln(w, "      --width <px>          Capture width (default 1920)")
	fmt.Fprintln(w, "      --height <px>         Capture height (default 1080)")
	fmt.Fprintln(w, "      --renderer <s>        rod (DevTools) or chrome (--screenshot)")
	fmt.Fprintln(w, "      --browser <path>      Browser binary (default auto-detect)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-slide timeout (default 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --print-config        Print the effective config and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-slide timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Browser binary")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1          Disable the Chrome sandbox (Docker/CI)")
	fmt.Fprintln(w, "  A .env file in the current directory is loaded first.")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx inspect <file.pptx> [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the page size and, for each slide, picture placement and image size.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pptx doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check browser availability, sandbox settings and writable directories.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2pptx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2pptx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
