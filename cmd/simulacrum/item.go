package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"
	"github.com/KirkDiggler/simulacrum/internal/orchestrators/documents"
	"github.com/KirkDiggler/simulacrum/internal/orchestrators/equipment"
)

type itemFlags struct {
	name        string
	description string
	baseValue   float64
	bonuses     float64
	baseDice    string
	targetStat  string
	successDie  int
}

func (f *itemFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Item name")
	fs.StringVar(&f.description, "description", "", "Description")
	fs.Float64Var(&f.baseValue, "base-value", 0, "Base value (skills and tools)")
	fs.Float64Var(&f.bonuses, "bonuses", 0, "Bonuses (skills and tools)")
	fs.StringVar(&f.baseDice, "base-dice", "", "Base dice (skills and tools)")
	fs.StringVar(&f.targetStat, "target-stat", "", "Target stat: resilience, insight or sensitivity")
	fs.IntVar(&f.successDie, "success-die", 0, "Success dice (actions)")
}

func (c *cli) itemCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage skills, tools and actions",
	}
	cmd.PersistentFlags().StringVar(&owner, "owner", "", "Owning actor id, empty for world items")

	var (
		createID      string
		createType    string
		createActions []string
	)
	create := &itemFlags{}
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.documents.CreateItem(ctx, &documents.CreateItemInput{Item: &simulacrum.Item{
				ID:      createID,
				OwnerID: owner,
				Name:    create.name,
				Type:    simulacrum.ItemType(createType),
				System: simulacrum.ItemSystem{
					Description: create.description,
					BaseValue:   create.baseValue,
					Bonuses:     create.bonuses,
					BaseDice:    c.app.engine.ParseDice(create.baseDice),
					TargetStat:  create.targetStat,
					SuccessDie:  create.successDie,
					Actions:     createActions,
				},
			}})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Item)
		},
	}
	create.register(createCmd)
	createCmd.Flags().StringVar(&createID, "id", "", "Item id (generated when empty)")
	createCmd.Flags().StringVar(&createType, "type", string(simulacrum.ItemTypeSkill), "Item type: skill, tool or action")
	createCmd.Flags().StringSliceVar(&createActions, "action", nil, "Action uuid to attach (repeatable)")

	getCmd := &cobra.Command{
		Use:   "get [item-id]",
		Short: "Show an item with derived values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.documents.GetItem(ctx, &documents.GetItemInput{OwnerID: owner, ItemID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Item)
		},
	}

	update := &itemFlags{}
	updateCmd := &cobra.Command{
		Use:   "update [item-id]",
		Short: "Change fields of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.updateItem(cmd, owner, args[0], update.changes(cmd))
		},
	}
	update.register(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete [item-id]",
		Short: "Delete an item, releasing the actions it holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.documents.DeleteItem(ctx, &documents.DeleteItemInput{OwnerID: owner, ItemID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	attachCmd := &cobra.Command{
		Use:   "attach [item-id] [action-uuid]",
		Short: "Attach an action to a skill or tool",
		Long: `Attach an action by identifier. Accepted forms:

  Compendium.<scope>.<pack>.Item.<id>
  Item.<id>
  Actor.<actor>.Item.<id>`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.documents.AttachAction(ctx, &documents.AttachActionInput{
				OwnerID: owner,
				ItemID:  args[0],
				UUID:    args[1],
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	equipCmd := &cobra.Command{
		Use:   "equip [item-id]",
		Short: "Equip a skill or tool, adding its actions to the owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			equipped := true
			return c.updateItem(cmd, owner, args[0], &simulacrum.ItemChanges{Equipped: &equipped})
		},
	}

	unequipCmd := &cobra.Command{
		Use:   "unequip [item-id]",
		Short: "Unequip a skill or tool, releasing its actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			equipped := false
			return c.updateItem(cmd, owner, args[0], &simulacrum.ItemChanges{Equipped: &equipped})
		},
	}

	parentsCmd := &cobra.Command{
		Use:   "parents [action-id]",
		Short: "List the skills and tools holding an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.context(cmd)
			defer cancel()

			out, err := c.app.equipment.ParentItems(ctx, &equipment.ParentItemsInput{
				ActorID:  owner,
				ActionID: args[0],
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Parents)
		},
	}

	cmd.AddCommand(createCmd, getCmd, updateCmd, deleteCmd, attachCmd, equipCmd, unequipCmd, parentsCmd)
	return cmd
}

func (c *cli) updateItem(cmd *cobra.Command, owner, itemID string, changes *simulacrum.ItemChanges) error {
	ctx, cancel := c.context(cmd)
	defer cancel()

	out, err := c.app.documents.UpdateItem(ctx, &documents.UpdateItemInput{
		OwnerID: owner,
		ItemID:  itemID,
		Changes: changes,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out.Item)
}

// changes collects the flags set on the command line
func (f *itemFlags) changes(cmd *cobra.Command) *simulacrum.ItemChanges {
	fs := cmd.Flags()
	changes := &simulacrum.ItemChanges{}
	if fs.Changed("name") {
		changes.Name = &f.name
	}
	if fs.Changed("description") {
		changes.Description = &f.description
	}
	if fs.Changed("base-value") {
		changes.BaseValue = &f.baseValue
	}
	if fs.Changed("bonuses") {
		changes.Bonuses = &f.bonuses
	}
	if fs.Changed("base-dice") {
		changes.BaseDice = &f.baseDice
	}
	if fs.Changed("target-stat") {
		changes.TargetStat = &f.targetStat
	}
	if fs.Changed("success-die") {
		changes.SuccessDie = &f.successDie
	}
	return changes
}
