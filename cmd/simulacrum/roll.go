package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/simulacrum/internal/orchestrators/dice"
)

func (c *cli) rollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roll [actor-id] [action-id]",
		Short: "Roll an action owned by an actor",
		Long: `Roll an action: its success dice plus one die for every other equipped
skill or tool sharing it, all d6. The result is posted to the actor's chat log.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.dice.RollAction(ctx, &dice.RollActionInput{ActorID: args[0], ItemID: args[1]})
			if err != nil {
				return err
			}
			if !out.Rolled() {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Nothing rolled: %s\n", out.Reason)
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Message)
		},
	}
}

func (c *cli) chatCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "chat [actor-id]",
		Short: "Show the rolls posted by an actor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.dice.ListMessages(ctx, &dice.ListMessagesInput{ActorID: args[0], Limit: limit})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Messages)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Newest messages to show, 0 for all")

	return cmd
}
