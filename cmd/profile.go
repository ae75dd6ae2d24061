package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/founderpath/founderpath/internal/mentor"
	"github.com/founderpath/founderpath/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the local founder profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile and lesson history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		p := env.profile.Current()
		picture := "not set"
		if p.ProfilePicture != "" {
			mime, _, _ := strings.Cut(strings.TrimPrefix(p.ProfilePicture, "data:"), ";")
			picture = mime
		}
		fmt.Printf("Name:     %s\n", p.Name)
		fmt.Printf("XP:       %d\n", p.XP)
		fmt.Printf("Lessons:  %d\n", len(p.CompletedLessons))
		fmt.Printf("Picture:  %s\n", picture)

		completions, err := env.store.EventRepo().QueryLessonCompletions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query completions: %w", err)
		}
		if len(completions) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Printf("%-16s  %-40s  %-12s  %-5s  %s\n", "Completed", "Lesson", "Difficulty", "Score", "XP")
		fmt.Println(strings.Repeat("─", 88))
		for _, c := range completions {
			fmt.Printf("%-16s  %-40s  %-12s  %2d/%-2d  %d\n",
				c.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(c.Title, 40),
				c.Difficulty,
				c.CorrectAnswers, c.TotalQuestions,
				c.XPAwarded,
			)
		}
		return nil
	},
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the profile to a fresh start",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return errors.New("this erases your name, picture and completed lessons (XP is kept); rerun with --yes")
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.profile.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Profile reset.")
		return nil
	},
}

var profilePictureCmd = &cobra.Command{
	Use:   "picture <file>",
	Short: "Upload a profile picture (image, max 2MB)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := mentor.ReadPicture(args[0])
		if err != nil {
			return err
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctrl := mentor.NewController(nil, env.profile, env.log)
		if _, err := ctrl.UploadProfilePicture(cmd.Context(), data); err != nil {
			return err
		}
		fmt.Println("Profile picture updated.")
		return nil
	},
}

func init() {
	profileShowCmd.Flags().IntP("limit", "n", 20, "Number of completions to show")
	profileResetCmd.Flags().Bool("yes", false, "Confirm the reset")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileResetCmd)
	profileCmd.AddCommand(profilePictureCmd)
}
