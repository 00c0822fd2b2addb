package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kiln-build/reportexec/internal/model"
	"github.com/kiln-build/reportexec/internal/realm"
	"github.com/kiln-build/reportexec/internal/report"
	"github.com/kiln-build/reportexec/pkg/reporting"
)

var goalsCmd = &cobra.Command{
	Use:   "goals <groupId:artifactId[:version]>",
	Short: "List the goals of an installed plugin",
	Long: `goals loads the descriptor of an installed plugin and lists its
goals, marking the ones whose implementation is report-capable. When no
version is given, the highest installed version is used.`,
	Args: cobra.ExactArgs(1),
	RunE: runGoals,
}

func runGoals(cmd *cobra.Command, args []string) error {
	parts := strings.Split(args[0], ":")
	if len(parts) != 2 && len(parts) != 3 {
		return fmt.Errorf("expected groupId:artifactId[:version], got %q", args[0])
	}

	p := &model.Plugin{GroupID: parts[0], ArtifactID: parts[1]}
	if len(parts) == 3 {
		p.Version = parts[2]
	}

	session := &model.Session{HostRealm: realm.New(hostRealmName)}
	manager := newManager()

	if p.Version == "" {
		version, err := newVersionResolver().Resolve(cmd.Context(), p, session)
		if err != nil {
			return err
		}
		p.Version = version
	}

	descriptor, err := manager.GetDescriptor(cmd.Context(), p, session)
	if err != nil {
		return err
	}
	if err := manager.SetupRealm(cmd.Context(), descriptor, session, session.HostRealm, report.Imports, report.ExcludedArtifacts); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(descriptor.ID()))
	if descriptor.Description != "" {
		fmt.Fprintln(out, mutedStyle.Render("  "+descriptor.Description))
	}

	for _, gd := range descriptor.Goals() {
		marker := mutedStyle.Render("      ")
		if factory, err := descriptor.Realm().Lookup(gd.Implementation); err == nil {
			if _, ok := factory().(reporting.Report); ok {
				marker = goalStyle.Render("report")
			}
		}
		fmt.Fprintf(out, "  %s %s %s\n", marker, gd.Goal, mutedStyle.Render(gd.Description))
	}

	return nil
}
