package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/founderpath/founderpath/internal/app"
	"github.com/founderpath/founderpath/internal/books"
	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/learn"
	"github.com/founderpath/founderpath/internal/mentor"
	"github.com/founderpath/founderpath/internal/nav"
	"github.com/founderpath/founderpath/internal/screens/home"
)

// runApp opens the store, builds the controllers, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	opts := app.Options{
		Nav:     nav.NewController(env.profile, env.log),
		Profile: env.profile,
		History: env.store.EventRepo(),
		Catalog: catalog.Default(),
		Log:     env.log,
	}

	client, err := env.contentClient(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		env.log.Warn("llm provider unavailable", "err", err)
		opts.Unavailable = err.Error()
	} else {
		recorder := &learn.ProfileRecorder{Profile: env.profile, Events: env.store.EventRepo()}
		opts.Learn = learn.NewController(client, recorder, env.log)
		opts.Mentor = mentor.NewController(func() mentor.Chat { return client.CreateConversation() }, env.profile, env.log)
		opts.Reader = books.NewReader(client, env.log)
		opts.Tools = client
		opts.Tip = home.NewTip(client)
	}

	return app.Run(cmd.Context(), opts)
}
