package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coinpulse/newsharvest/internal/config"
	"github.com/coinpulse/newsharvest/internal/domain"
	"github.com/coinpulse/newsharvest/pkg/export"
	"github.com/coinpulse/newsharvest/pkg/httpclient"
	"github.com/coinpulse/newsharvest/pkg/sources"
)

var fetchCryptoPanicCmd = &cobra.Command{
	Use:   "cryptopanic",
	Short: "Fetch date-bounded posts from the CryptoPanic API",
	RunE:  runFetchCryptoPanic,
}

func init() {
	fetchCmd.AddCommand(fetchCryptoPanicCmd)
}

func runFetchCryptoPanic(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Fail on missing credentials before any network call.
	if err := cfg.CryptoPanic.Validate(); err != nil {
		return err
	}

	start, end := fetchWindow(cfg.CryptoPanic.StartDate, cfg.CryptoPanic.EndDate)
	window, err := config.Window(start, end)
	if err != nil {
		return err
	}

	client := httpclient.NewRestyClient(cfg.CryptoPanic.Timeout)
	fetcher := sources.NewCryptoPanic(client, log)

	posts, err := fetcher.Fetch(ctx, sources.CryptoPanicConfig{
		BaseURL:      cfg.CryptoPanic.BaseURL,
		APIKey:       cfg.CryptoPanic.APIKey,
		Currencies:   cfg.CryptoPanic.Currencies,
		Window:       window,
		MaxPages:     cfg.CryptoPanic.MaxPages,
		ProbePages:   cfg.CryptoPanic.ProbePages,
		RequestDelay: cfg.CryptoPanic.RequestDelay,
	})
	if err != nil {
		return err
	}

	store, err := openSeenStore(fetchSkipSeen)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	posts, freshKeys, err := filterSeen(store, posts, func(p domain.Post) string {
		return strconv.FormatInt(p.ID, 10)
	})
	if err != nil {
		return err
	}

	jsonPath, csvPath := outputPath(cryptoPanicJSONName), outputPath(cryptoPanicCSVName)
	unique, err := exportRun(jsonPath, csvPath, posts, export.PostTable(posts))
	if err != nil {
		return err
	}
	if err := markSeen(store, freshKeys); err != nil {
		return err
	}

	fields := export.PostStats(posts).Fields()
	fields["unique"] = unique
	fields["json"] = jsonPath
	fields["csv"] = csvPath
	log.InfoObj("cryptopanic export written", "cryptopanic_export_done", fields)

	publishHarvest(ctx, sources.SourceCryptoPanic, window, unique, jsonPath, csvPath)
	return nil
}
