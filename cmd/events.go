package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prohmpiriya/charity-events/internal/client"
	"github.com/prohmpiriya/charity-events/internal/view"
	"github.com/prohmpiriya/charity-events/pkg/logger"
)

// ErrReported marks a failure whose message was already shown to the user
var ErrReported = errors.New("request failed")

var (
	apiURL     string
	apiTimeout time.Duration
	search     client.SearchFilter
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Browse charity events through the API",
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming and ongoing events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := newEventsClient().ListEvents(cmd.Context())
		if err != nil {
			return report(cmd, view.ActionList, err)
		}
		return view.RenderEvents(cmd.OutOrStdout(), events)
	},
}

var eventsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search events by date, city and category",
	Example: `  charity-events events search --city spring
  charity-events events search --date 2025-06-01 --category 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newEventsClient().SearchEvents(cmd.Context(), search)
		if err != nil {
			return report(cmd, view.ActionSearch, err)
		}
		return view.RenderSearch(cmd.OutOrStdout(), result)
	},
}

var eventsShowCmd = &cobra.Command{
	Use:   "show <event-id>",
	Short: "Show the details of one event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		event, err := newEventsClient().GetEvent(cmd.Context(), args[0])
		if err != nil {
			return report(cmd, view.ActionDetail, err)
		}
		return view.RenderDetail(cmd.OutOrStdout(), event)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List event categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := newEventsClient().ListCategories(cmd.Context())
		if err != nil {
			return report(cmd, view.ActionCatalog, err)
		}
		return view.RenderCategories(cmd.OutOrStdout(), categories)
	},
}

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "List cities that have events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cities, err := newEventsClient().ListCities(cmd.Context())
		if err != nil {
			return report(cmd, view.ActionCatalog, err)
		}
		return view.RenderCities(cmd.OutOrStdout(), cities)
	},
}

func init() {
	for _, c := range []*cobra.Command{eventsCmd, categoriesCmd, citiesCmd} {
		c.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides CLIENT_BASE_URL)")
		c.PersistentFlags().DurationVar(&apiTimeout, "timeout", 0, "request timeout (overrides CLIENT_TIMEOUT)")
	}

	eventsSearchCmd.Flags().StringVar(&search.Date, "date", "", "event date, YYYY-MM-DD")
	eventsSearchCmd.Flags().StringVar(&search.City, "city", "", "city name or part of it")
	eventsSearchCmd.Flags().StringVar(&search.Category, "category", "", "category id")

	eventsCmd.AddCommand(eventsListCmd, eventsSearchCmd, eventsShowCmd)
	rootCmd.AddCommand(eventsCmd, categoriesCmd, citiesCmd)
}

func newEventsClient() client.EventsClient {
	baseURL := cfg.Client.BaseURL
	if apiURL != "" {
		baseURL = apiURL
	}
	timeout := cfg.Client.Timeout
	if apiTimeout > 0 {
		timeout = apiTimeout
	}
	return client.NewHTTPEventsClient(baseURL, timeout)
}

// report prints the user-facing message for err, logs the cause and returns ErrReported
func report(cmd *cobra.Command, action view.Action, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), view.ErrorMessage(action, err))

	fields := []zap.Field{zap.String("command", cmd.CommandPath()), zap.Error(err)}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.Int("status", apiErr.StatusCode))
	}
	if errors.Is(err, client.ErrNotFound) || errors.Is(err, context.Canceled) {
		logger.Get().Warn("API request failed", fields...)
	} else {
		logger.Get().Error("API request failed", fields...)
	}
	return ErrReported
}
