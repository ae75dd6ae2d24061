package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/founderpath/founderpath/internal/books"
	"github.com/founderpath/founderpath/internal/catalog"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Browse the founder's library",
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books",
	Run: func(cmd *cobra.Command, args []string) {
		for i, b := range catalog.Default().Books {
			fmt.Printf("%2d. %-32s  %s\n", i+1, b.Title, b.Author)
		}
	},
}

var bookReadCmd = &cobra.Command{
	Use:   "read <n>",
	Short: "Print a key-takeaways summary of book n",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := lookupBook(catalog.Default(), args[0])
		if err != nil {
			return err
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		client, err := env.contentClient(cmd)
		if err != nil {
			return err
		}
		summary, _ := books.NewReader(client, env.log).Open(cmd.Context(), book)
		fmt.Printf("%s by %s\n\n%s\n", book.Title, book.Author, summary)
		return nil
	},
}

// lookupBook accepts the 1-based list position or a book id.
func lookupBook(c *catalog.Catalog, arg string) (catalog.Book, error) {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(c.Books) {
		return c.Books[n-1], nil
	}
	if b, ok := c.Book(arg); ok {
		return b, nil
	}
	return catalog.Book{}, fmt.Errorf("unknown book %q (see: founderpath book list)", arg)
}

func init() {
	bookCmd.AddCommand(bookListCmd)
	bookCmd.AddCommand(bookReadCmd)
}
