package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/vendor-insights/internal/faq"
	"github.com/jonathan/vendor-insights/internal/types"
	"github.com/spf13/cobra"
)

var faqCmd = &cobra.Command{
	Use:   "faq",
	Short: "List or add FAQ items in the configured store",
}

var faqListCmd = &cobra.Command{
	Use:   "list",
	Short: "List FAQ items",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withFAQStore(cmd.Context(), func(store faq.Store) error {
			return listFAQ(cmd.Context(), cmd.OutOrStdout(), store)
		})
	},
}

var faqAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a FAQ item",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := types.CreateFAQRequest{
			Question: faqQuestion,
			Answer:   faqAnswer,
			Category: faqCategory,
			Tags:     faqTags,
		}
		return withFAQStore(cmd.Context(), func(store faq.Store) error {
			return addFAQ(cmd.Context(), cmd.OutOrStdout(), store, req)
		})
	},
}

var (
	faqQuestion string
	faqAnswer   string
	faqCategory string
	faqTags     []string
)

func init() {
	faqAddCmd.Flags().StringVar(&faqQuestion, "question", "", "Question text")
	faqAddCmd.Flags().StringVar(&faqAnswer, "answer", "", "Answer text")
	faqAddCmd.Flags().StringVar(&faqCategory, "category", "", "One of Technical, Pricing, Integration, Features")
	faqAddCmd.Flags().StringSliceVar(&faqTags, "tag", nil, "Tag (repeatable)")

	faqCmd.AddCommand(faqListCmd, faqAddCmd)
	rootCmd.AddCommand(faqCmd)
}

// withFAQStore opens the configured store for the duration of fn.
func withFAQStore(ctx context.Context, fn func(faq.Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync errors are not actionable

	store, closeStore, err := faq.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open FAQ store: %w", err)
	}
	defer closeStore()
	return fn(store)
}

func listFAQ(ctx context.Context, out io.Writer, store faq.Store) error {
	items, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		_, _ = fmt.Fprintln(out, "No FAQ items")
		return nil
	}
	for _, it := range items {
		_, _ = fmt.Fprintf(out, "[%s] %s (%s)\n", it.ID, it.Question, it.Category)
		_, _ = fmt.Fprintf(out, "    %s\n", it.Answer)
		if len(it.Tags) > 0 {
			_, _ = fmt.Fprintf(out, "    tags: %s\n", strings.Join(it.Tags, ", "))
		}
	}
	return nil
}

func addFAQ(ctx context.Context, out io.Writer, store faq.Store, req types.CreateFAQRequest) error {
	item, err := store.Create(ctx, req)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Created %s\n", item.ID)
	return nil
}
