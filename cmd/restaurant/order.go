package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/temporalio/temporal-restaurant/api"
	"github.com/temporalio/temporal-restaurant/order"
)

var orderItemIDs []int

// orderCmd represents the order command
var orderCmd = &cobra.Command{
	Use:   "order --item id ...",
	Short: "Place an order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(newLogger(os.Stderr))
		if err != nil {
			return err
		}

		ctx := context.Background()

		categories, err := s.Client.FetchCategories(ctx)
		if err != nil {
			return err
		}

		menu := map[int]api.MenuItem{}
		for _, c := range categories {
			items, err := s.Client.FetchMenuItems(ctx, c)
			if err != nil {
				return err
			}
			for _, item := range items {
				menu[item.ID] = item
			}
		}

		for _, id := range orderItemIDs {
			item, ok := menu[id]
			if !ok {
				return fmt.Errorf("unknown menu item: %d", id)
			}
			s.Order.Add(item)
		}

		for i, item := range s.Order.Items() {
			fmt.Printf("%d:\t%s\t%s\n", i+1, order.FormatPrice(decimal.NewFromFloat(item.Price)), item.Name)
		}
		fmt.Printf("Total:\t%s\n", order.FormatPrice(s.Order.Total()))

		p, err := s.Submit(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Order placed. Ready in %d minutes.\n", p.Minutes)

		return nil
	},
}

func init() {
	orderCmd.Flags().IntSliceVarP(&orderItemIDs, "item", "i", []int{}, "Menu item ID (repeat for quantity)")
	orderCmd.MarkFlagRequired("item")

	rootCmd.AddCommand(orderCmd)
}
