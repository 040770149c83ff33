// Package cli provides the command-line interface for Swatch.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/icon"
	"github.com/jmylchreest/swatch/internal/version"
)

var (
	// Render flags, bound in addRenderFlags.
	renderWidth  int
	renderHeight int
	renderColour colour.RGB
	renderOutput string
	renderSizes  []int
	renderICO    bool
	renderText   map[string]string
	renderBundle string
	renderDryRun bool
)

// NewRootCmd builds the root command. Invoked without flags it renders the
// default icon: a 512x512 #0096ff app-icon.png in the current directory.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "A solid-colour icon generator",
		Long: `Swatch renders solid-colour PNG icons by assembling the container
directly: signature, IHDR, zlib-compressed scanlines and a CRC32 over every
chunk.

Without flags it writes a 512x512 #0096ff app-icon.png to the current
directory. The dimensions, colour, metadata and output path are all
adjustable, extra square sizes render as NxN.png variants, and the whole
set can be assembled into a Windows ICO or bundled into a single archive.

Examples:
  # The default placeholder icon
  swatch

  # A 256x256 dark red icon with metadata
  swatch --width 256 --height 256 -c '#8b0000' --text Software=swatch

  # A Tauri-style icon source set with ICO
  swatch --sizes 32,128,256 --ico -o build/app-icon.png

  # Everything in one archive
  swatch --sizes 16,32,48 --ico --bundle icons.tar.xz

  # Structural check of existing files
  swatch verify build/*.png`,
		Args:         cobra.NoArgs,
		Version:      version.Short(),
		SilenceUsage: true,
		RunE:         runRender,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	addRenderFlags(rootCmd.Flags())

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newVerifyCmd())

	return rootCmd
}

// addRenderFlags binds the render flags, resetting each value to its
// default so repeated root command constructions start clean.
func addRenderFlags(fs *pflag.FlagSet) {
	defaults := icon.DefaultSpec()
	renderColour = defaults.Colour

	fs.IntVar(&renderWidth, "width", defaults.Width, "image width in pixels")
	fs.IntVar(&renderHeight, "height", defaults.Height, "image height in pixels")
	fs.VarP(&renderColour, "colour", "c", "fill colour (#RRGGBB, #RGB or r,g,b)")
	fs.StringVarP(&renderOutput, "output", "o", defaults.Output, "output path for the primary PNG")
	fs.IntSliceVar(&renderSizes, "sizes", nil, "extra square sizes to render as NxN.png variants")
	fs.BoolVar(&renderICO, "ico", false, "assemble icon.ico alongside the PNG set")
	fs.StringToStringVar(&renderText, "text", nil, "tEXt metadata stamped into each PNG (key=value, repeatable)")
	fs.StringVar(&renderBundle, "bundle", "", "write the set into one archive (.zip, .tar.gz or .tar.xz) instead of loose files")
	fs.BoolVar(&renderDryRun, "dry-run", false, "preview without writing files")
}

// newVersionCmd builds the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
