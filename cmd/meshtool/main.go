package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/internal/config"
	"github.com/D-BookeR/Synthese-d-images-avec-OpenGL-sub001/version"
)

const defaultConfigFile = "meshtool.toml"

var (
	configPath string
	flags      config.Flags
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "meshtool",
	Short: "Build, edit, check and skin triangle meshes",
	Long: `meshtool loads OBJ and STL meshes into an indexed triangle mesh and runs the
topology generators, the processing operators, the physics integrals and the
skinning weights on it. Results are written back as OBJ or STL, packed into GPU
ready buffers, or rendered into a PNG or WebP snapshot.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "TOML configuration file (default ./"+defaultConfigFile+" when present)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.Float64Var(&flags.Scale, "scale", 0, "Scale applied to loaded coordinates")
	pf.StringVar(&flags.Material, "material", "", "Keep only the OBJ faces of this material")
}

// setup reads the configuration and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = defaultConfigFile
	}
	loaded, err := config.Load(path)
	switch {
	case err == nil:
		cfg = loaded
	case configPath == "" && errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
	default:
		return err
	}
	cfg.Resolve(flags)

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("configuration", "file", path, "scale", cfg.Load.Scale, "density", cfg.Physics.Density)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
