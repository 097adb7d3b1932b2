package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/temporalio/temporal-restaurant/order"
)

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List menu categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(slog.New(slog.NewJSONHandler(io.Discard, nil)))
		if err != nil {
			return err
		}

		categories, err := s.Client.FetchCategories(context.Background())
		if err != nil {
			return err
		}

		for _, c := range categories {
			fmt.Println(c)
		}

		return nil
	},
}

// menuCmd represents the menu command
var menuCmd = &cobra.Command{
	Use:   "menu category",
	Short: "List the items in a menu category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(slog.New(slog.NewJSONHandler(io.Discard, nil)))
		if err != nil {
			return err
		}

		items, err := s.Client.FetchMenuItems(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Menu: %s\n", args[0])
		for _, item := range items {
			fmt.Printf("%d:\t%s\t%s\n", item.ID, order.FormatPrice(decimal.NewFromFloat(item.Price)), item.Name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(menuCmd)
}
