package main

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/knot-runner/level"
	"github.com/lixenwraith/knot-runner/levels"
)

func newValidateCmd(flags *globalFlags) *cobra.Command {
	var bundled bool
	cmd := &cobra.Command{
		Use:   "validate [level files...]",
		Short: "Check level files and print a summary of each",
		Long: `validate parses each level file, builds its knot graph and reports
paths, knots and junctions. With no arguments it checks the --level file
or the bundled default; --bundled checks every bundled level.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if bundled {
				names, err := fs.Glob(levels.FS, "*.yaml")
				if err != nil {
					return err
				}
				paths = append(paths, names...)
			}
			if len(paths) == 0 {
				paths = []string{flags.levelPath}
			}

			failed := 0
			for _, path := range paths {
				lvl, err := loadLevel(path)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s: %v\n", displayName(path), err)
					continue
				}
				writeLevelSummary(cmd.OutOrStdout(), displayName(path), lvl)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d levels invalid", failed, len(paths))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&bundled, "bundled", false, "validate every bundled level")
	return cmd
}

func displayName(path string) string {
	if path == "" {
		return levels.Default
	}
	return path
}

func writeLevelSummary(w io.Writer, path string, lvl *level.Level) {
	g := lvl.Graph
	fmt.Fprintf(w, "OK   %s: %q paths=%d knots=%d start=%s\n", path, lvl.Name, g.PathCount(), lvl.KnotTotal(), lvl.Start)
	for p := 0; p < g.PathCount(); p++ {
		shape := "open"
		if g.IsClosed(p) {
			shape = "closed"
		}
		fmt.Fprintf(w, "     path %d: %d knots %s length=%.2f\n", p, g.KnotCount(p), shape, g.Length(p))
	}
	for _, j := range lvl.Junctions() {
		links := g.Links(j)
		names := make([]string, len(links))
		for i, l := range links {
			names[i] = l.String()
		}
		fmt.Fprintf(w, "     junction %s: %s\n", j, strings.Join(names, " "))
	}
}
