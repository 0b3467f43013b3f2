package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Zachkp/showcase/internal/config"
	"github.com/Zachkp/showcase/internal/models"
	"github.com/Zachkp/showcase/internal/services"
)

var jsonOutput bool

// projectsCmd prints the project collection as the gallery would see it.
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Fetch and print the project collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withShowcase(cmd, func(s *services.Showcase) error {
			res, err := s.Projects(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res.Items)
			}
			printProjects(cmd.OutOrStdout(), res)
			return nil
		})
	},
}

// skillsCmd prints the skill collection grouped into gallery buckets.
var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Fetch and print the skill buckets",
	Long: `Fetch the skill collection and print it grouped into the seven gallery
buckets, with a count of skills placed by proficiency alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withShowcase(cmd, func(s *services.Showcase) error {
			res, err := s.Skills(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res.Buckets)
			}
			printSkills(cmd.OutOrStdout(), res)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{projectsCmd, skillsCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")
	}
}

func withShowcase(cmd *cobra.Command, fn func(*services.Showcase) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a.showcase)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printProjects(w io.Writer, res services.Result[models.Project]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tBANNER")
	for _, p := range res.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Title, p.BannerURL())
	}
	tw.Flush()
	printOrigin(w, len(res.Items), res.Origin, res.Stale)
}

func printSkills(w io.Writer, res services.SkillsResult) {
	for _, b := range res.Buckets.Buckets {
		fmt.Fprintf(w, "%s (%d)\n", b.Title, len(b.Skills))
		for _, sk := range b.Skills {
			fmt.Fprintf(w, "  %-24s %5.1f\n", sk.Title, sk.Proficiency)
		}
	}
	fmt.Fprintf(w, "%d of %d skills placed by proficiency\n", res.Buckets.Inferred, len(res.Items))
	printOrigin(w, len(res.Items), res.Origin, res.Stale)
}

func printOrigin(w io.Writer, n int, origin services.Origin, stale bool) {
	suffix := ""
	if stale {
		suffix = " (stale: backend unreachable)"
	}
	fmt.Fprintf(w, "%d items from %s%s\n", n, origin, suffix)
}
