package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/founderpath/founderpath/internal/content"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson <topic>",
	Short: "Generate and print a micro-lesson",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")
		topic := strings.Join(args, " ")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		client, err := env.contentClient(cmd)
		if err != nil {
			return err
		}
		lesson, err := client.GenerateLesson(cmd.Context(), topic)
		if err != nil {
			return err
		}
		printLesson(lesson, answers)
		return nil
	},
}

func printLesson(l *content.Lesson, answers bool) {
	sep := strings.Repeat("─", 60)

	fmt.Println(l.Title)
	fmt.Printf("%s · %s\n", l.Difficulty, l.Duration)
	for i, s := range l.Sections {
		fmt.Println(sep)
		fmt.Printf("%d. %s\n\n%s\n", i+1, s.Title, s.Content)
	}

	fmt.Println(sep)
	fmt.Println("QUIZ")
	fmt.Println(sep)
	for i, q := range l.Quiz {
		fmt.Printf("%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			mark := " "
			if answers && j == q.CorrectIndex {
				mark = "✓"
			}
			fmt.Printf("   %s %c) %s\n", mark, 'A'+j, opt)
		}
		fmt.Println()
	}
}

func init() {
	lessonCmd.Flags().Bool("answers", false, "Mark the correct quiz answers")
}
