package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"detailing/models"

	"github.com/spf13/cobra"
)

func (e *env) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), e.timeout+time.Second)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newLoginCmd(e *env) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and print the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := e.context(cmd)
			defer cancel()
			if password == "" {
				password = os.Getenv("CARTCTL_PASSWORD")
			}
			session, err := e.api.Login(ctx, args[0], password)
			if err != nil {
				return err
			}
			if err := e.cart.OnLogin(ctx, true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "export CARTCTL_SESSION=%s\n", session.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password (defaults to $CARTCTL_PASSWORD)")
	return cmd
}

func newCartCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or change the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := e.context(cmd)
			defer cancel()
			if err := e.cart.GetCart(ctx); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e.cart.Cart())
		},
	}

	add := &cobra.Command{
		Use:   "add <service-id>",
		Short: "Add a service to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := e.context(cmd)
			defer cancel()
			if err := e.cart.AddItem(ctx, models.Service{ID: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d item(s) in cart\n", e.cart.CartLength())
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <service-id>",
		Short: "Remove a service from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := e.context(cmd)
			defer cancel()
			if err := e.cart.RemoveItem(ctx, models.Service{ID: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d item(s) in cart\n", e.cart.CartLength())
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := e.context(cmd)
			defer cancel()
			return e.cart.ClearCart(ctx)
		},
	}

	datetime := &cobra.Command{
		Use:   "datetime <RFC3339 time>",
		Short: "Choose the appointment start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := time.Parse(time.RFC3339, args[0])
			if err != nil {
				return &exitErr{code: 3, msg: fmt.Sprintf("invalid time %q: %v", args[0], err)}
			}
			ctx, cancel := e.context(cmd)
			defer cancel()
			return e.cart.SelectDateTime(ctx, at)
		},
	}

	cmd.AddCommand(add, remove, clearCmd, datetime)
	return cmd
}

func newBusyCmd(e *env) *cobra.Command {
	var (
		location string
		minutes  int
		names    string
	)
	cmd := &cobra.Command{
		Use:   "busy",
		Short: "List times a new appointment cannot start",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var serviceNames []string
			for _, n := range strings.Split(names, ",") {
				if n = strings.TrimSpace(n); n != "" {
					serviceNames = append(serviceNames, n)
				}
			}
			if serviceNames == nil && minutes <= 0 {
				for _, svc := range e.cart.Cart().Services {
					serviceNames = append(serviceNames, svc.Name)
				}
			}
			ctx, cancel := e.context(cmd)
			defer cancel()
			if err := e.cart.FetchBusyTimes(ctx, location, minutes, serviceNames); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e.cart.Cart().BusyTimes)
		},
	}
	f := cmd.Flags()
	f.StringVar(&location, "location", "", "Customer location")
	f.IntVar(&minutes, "minutes", 0, "Expected time to complete, in minutes")
	f.StringVar(&names, "services", "", "Comma-separated service names (defaults to the cart's)")
	return cmd
}

func newServicesCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the services catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := e.context(cmd)
			defer cancel()
			if err := e.services.Load(ctx); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, svc := range e.services.Services() {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%dmin\n", svc.ID, svc.Name, svc.Price, svc.Duration)
			}
			return nil
		},
	}
}

func newBookCmd(e *env) *cobra.Command {
	var location string
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book the cart at its selected date and time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := e.context(cmd)
			defer cancel()
			b, err := e.cart.Checkout(ctx, location)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().StringVar(&location, "location", "", "Customer location")
	_ = cmd.MarkFlagRequired("location")
	return cmd
}
