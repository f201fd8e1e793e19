package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	response "pesapal_gateway/internal/adapter/http/dto/response"
	"pesapal_gateway/internal/app"
	"pesapal_gateway/internal/infrastructure/config"
	"pesapal_gateway/internal/infrastructure/payments"
	"pesapal_gateway/internal/usecase"

	"github.com/spf13/cobra"
)

func newRootCmd(out io.Writer) *cobra.Command {
	var orderStore string

	rootCmd := &cobra.Command{
		Use:           "pesapalctl",
		Short:         "Pesapal API 3.0 command line client",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&orderStore, "order-store", config.StoreMemory, "Where submitted orders are kept (memory, dynamodb)")

	withApp := func(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) (any, error)) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.OrderStore = strings.ToLower(strings.TrimSpace(orderStore))
		if cfg.OrderStore != config.StoreMemory && cfg.OrderStore != config.StoreDynamoDB {
			return fmt.Errorf("%w: --order-store=%q", config.ErrInvalidConfig, orderStore)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()
		if a.Gateway == nil {
			return fmt.Errorf("%w: set PESAPAL_CONSUMER_KEY and PESAPAL_CONSUMER_SECRET", payments.ErrMissingPesapalCredentials)
		}

		result, err := fn(ctx, a)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	}

	rootCmd.AddCommand(registerIPNCmd(withApp))
	rootCmd.AddCommand(payCmd(withApp))
	rootCmd.AddCommand(statusCmd(withApp))

	return rootCmd
}

type appRunner func(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) (any, error)) error

func registerIPNCmd(run appRunner) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "register-ipn [url]",
		Short: "Register the IPN URL and print the notification id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app.App) (any, error) {
				id, err := a.Notifications.RegisterIPN(ctx, args[0], force)
				if err != nil {
					return nil, err
				}
				return response.RegisterIPNResponse{URL: strings.TrimSpace(args[0]), NotificationID: id}, nil
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Re-register even when a notification id is cached")
	return cmd
}

func payCmd(run appRunner) *cobra.Command {
	var in usecase.SubmitOrderInput
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Submit an order and print the checkout redirect URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app.App) (any, error) {
				o, err := a.Orders.SubmitOrder(ctx, in)
				if err != nil {
					return nil, err
				}
				return response.FromOrder(o), nil
			})
		},
	}
	f := cmd.Flags()
	f.Float64VarP(&in.Amount, "amount", "a", 0, "Amount to charge")
	f.StringVarP(&in.Currency, "currency", "c", "KES", "ISO 4217 currency code")
	f.StringVarP(&in.BillingAddress.EmailAddress, "email", "e", "", "Payer email address")
	f.StringVarP(&in.BillingAddress.PhoneNumber, "phone", "p", "", "Payer phone number")
	f.StringVar(&in.BillingAddress.FirstName, "first-name", "", "Payer first name")
	f.StringVar(&in.BillingAddress.LastName, "last-name", "", "Payer last name")
	f.StringVarP(&in.PaymentMethod, "method", "m", "", "Preferred payment method")
	f.StringVar(&in.CallbackURL, "callback-url", "", "URL Pesapal redirects the payer to (default PESAPAL_IPN_URL)")
	f.StringVar(&in.MerchantReference, "reference", "", "Merchant reference (generated when empty)")
	f.StringVarP(&in.Description, "description", "d", "", "Order description")
	f.StringVar(&in.NotificationID, "notification-id", "", "IPN notification id (default PESAPAL_IPN_ID or the cached one)")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func statusCmd(run appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "status [order-tracking-id]",
		Short: "Query the status of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app.App) (any, error) {
				s, err := a.Orders.GetTransactionStatus(ctx, args[0])
				if err != nil {
					return nil, err
				}
				return response.FromTransactionStatus(s), nil
			})
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
