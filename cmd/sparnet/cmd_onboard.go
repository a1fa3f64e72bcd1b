package main

import (
	"fmt"
	"path/filepath"

	"backend-sparnet/internal/kv"
	"backend-sparnet/internal/onboarding"
	"backend-sparnet/internal/profilesync"

	"github.com/spf13/cobra"
)

var (
	onboardUser     string
	onboardUsername string
	onboardLocation string
	onboardArts     []string
	onboardSkill    string
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Complete the four-step profile setup",
	Long: `onboard walks the signup wizard in one shot: username, location,
preferred martial arts, skill level. On completion the profile is pushed
to the server in the background and the local onboarded flag is set
whether or not the push succeeds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if onboardUser == "" {
			return fmt.Errorf("--user required")
		}

		slot, err := kv.OpenSQLite(filepath.Join(dataDir, "sparnet.db"))
		if err != nil {
			return fmt.Errorf("open slot: %w", err)
		}
		defer slot.Close()

		flags := profilesync.NewFlags(slot)
		flags.EnsureVersion(cmd.Context())
		if flags.Completed(cmd.Context(), onboardUser) {
			fmt.Fprintln(cmd.OutOrStdout(), "already onboarded")
			return nil
		}

		client := profilesync.NewClient(serverURL+"/profiles/upsert", flags)
		wizard := onboarding.NewWizard(func(data onboarding.Data) {
			client.Submit(cmd.Context(), onboardUser, data)
		})

		wizard.SetUsername(onboardUsername)
		wizard.Next()
		wizard.SetLocation(onboardLocation)
		wizard.Next()
		for _, art := range onboardArts {
			wizard.ToggleArt(art)
		}
		wizard.Next()
		wizard.SetSkillLevel(onboardSkill)
		wizard.Next()

		if !wizard.Completed() {
			return fmt.Errorf("stuck on step %d: check username length, location, arts and skill level", wizard.Step())
		}

		client.Wait()
		fmt.Fprintln(cmd.OutOrStdout(), "onboarding complete")
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the supported martial arts and skill levels",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Martial arts:")
		for _, art := range onboarding.MartialArts {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", art)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Skill levels:")
		for _, level := range onboarding.SkillLevels {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %s - %s\n", level.Value, level.Label, level.Description)
		}
	},
}

func init() {
	onboardCmd.Flags().StringVar(&onboardUser, "user", "", "authenticated user id")
	onboardCmd.Flags().StringVar(&onboardUsername, "username", "", "public username (min 3 characters)")
	onboardCmd.Flags().StringVar(&onboardLocation, "location", "", "home city or region")
	onboardCmd.Flags().StringSliceVar(&onboardArts, "art", nil, "preferred martial art, repeatable")
	onboardCmd.Flags().StringVar(&onboardSkill, "skill", "", "skill level (see catalog)")
}
