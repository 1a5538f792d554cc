package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/orchestrators/documents"
)

type actorFlags struct {
	id         string
	name       string
	actorType  string
	nodeType   string
	resilience int
	insight    int
	control    int
}

func (f *actorFlags) register(cmd *cobra.Command, withType bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Actor name")
	fs.StringVar(&f.nodeType, "node-type", "", "Node type (nodes only)")
	fs.IntVar(&f.resilience, "resilience", 0, "Resilience")
	fs.IntVar(&f.insight, "insight", 0, "Insight")
	fs.IntVar(&f.control, "control", 0, "Control, clamped to 0-10")
	if withType {
		fs.StringVar(&f.id, "id", "", "Actor id (generated when empty)")
		fs.StringVar(&f.actorType, "type", string(simulacrum.ActorTypePlayer), "Actor type: player or node")
	}
}

func (c *cli) actorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actor",
		Short: "Manage actors",
	}

	create := &actorFlags{}
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an actor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.documents.CreateActor(ctx, &documents.CreateActorInput{Actor: &simulacrum.Actor{
				ID:   create.id,
				Name: create.name,
				Type: simulacrum.ActorType(create.actorType),
				System: simulacrum.ActorSystem{
					Attributes: simulacrum.Attributes{
						Resilience: create.resilience,
						Insight:    create.insight,
						Control:    create.control,
					},
					NodeType: simulacrum.NodeType(create.nodeType),
				},
			}})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Actor)
		},
	}
	create.register(createCmd, true)

	getCmd := &cobra.Command{
		Use:   "get [actor-id]",
		Short: "Show an actor with derived attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.documents.GetActor(ctx, &documents.GetActorInput{ActorID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Actor)
		},
	}

	var listType string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List actors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.documents.ListActors(ctx, &documents.ListActorsInput{Type: simulacrum.ActorType(listType)})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Actors)
		},
	}
	listCmd.Flags().StringVar(&listType, "type", "", "Only list actors of this type")

	update := &actorFlags{}
	updateCmd := &cobra.Command{
		Use:   "update [actor-id]",
		Short: "Change fields of an actor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			fs := cmd.Flags()
			changes := &simulacrum.ActorChanges{}
			if fs.Changed("name") {
				changes.Name = &update.name
			}
			if fs.Changed("resilience") {
				changes.Resilience = &update.resilience
			}
			if fs.Changed("insight") {
				changes.Insight = &update.insight
			}
			if fs.Changed("control") {
				changes.Control = &update.control
			}
			if fs.Changed("node-type") {
				nodeType := simulacrum.NodeType(update.nodeType)
				changes.NodeType = &nodeType
			}

			out, err := c.app.documents.UpdateActor(ctx, &documents.UpdateActorInput{
				ActorID: args[0],
				Changes: changes,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Actor)
		},
	}
	update.register(updateCmd, false)

	deleteCmd := &cobra.Command{
		Use:   "delete [actor-id]",
		Short: "Delete an actor and every item it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.documents.DeleteActor(ctx, &documents.DeleteActorInput{ActorID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	sheetCmd := &cobra.Command{
		Use:   "sheet [actor-id]",
		Short: "Show an actor with its items grouped the way a sheet shows them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.documents.GetActorSheet(ctx, &documents.GetActorSheetInput{ActorID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Sheet)
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd, updateCmd, deleteCmd, sheetCmd)
	return cmd
}
