package cli

import (
	"github.com/spf13/cobra"

	"github.com/coinpulse/newsharvest/internal/config"
	"github.com/coinpulse/newsharvest/internal/domain"
	"github.com/coinpulse/newsharvest/internal/enrich"
	"github.com/coinpulse/newsharvest/pkg/export"
	"github.com/coinpulse/newsharvest/pkg/httpclient"
	"github.com/coinpulse/newsharvest/pkg/sources"
)

var gdeltEnrich bool

var fetchGDELTCmd = &cobra.Command{
	Use:   "gdelt",
	Short: "Fetch keyword-filtered articles from the GDELT DOC API",
	RunE:  runFetchGDELT,
}

func init() {
	fetchGDELTCmd.Flags().BoolVar(&gdeltEnrich, "enrich", false, "scrape article pages to backfill missing snippets")
	fetchCmd.AddCommand(fetchGDELTCmd)
}

func runFetchGDELT(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	start, end := fetchWindow(cfg.GDELT.StartDate, cfg.GDELT.EndDate)
	window, err := config.Window(start, end)
	if err != nil {
		return err
	}

	client := httpclient.NewRestyClient(cfg.GDELT.Timeout)
	fetcher := sources.NewGDELT(client, log)

	articles, err := fetcher.Fetch(ctx, sources.GDELTConfig{
		BaseURL:         cfg.GDELT.BaseURL,
		Keywords:        cfg.GDELT.Keywords,
		ExcludePatterns: cfg.GDELT.ExcludePatterns,
		Window:          window,
		MaxRecords:      cfg.GDELT.MaxRecords,
		RequestDelay:    cfg.GDELT.RequestDelay,
	})
	if err != nil {
		return err
	}

	if gdeltEnrich || cfg.GDELT.Enrich {
		articles = enrich.New(client, log).Run(ctx, enrich.Config{
			RequestDelay: cfg.GDELT.EnrichDelay,
			UserAgent:    cfg.GDELT.UserAgent,
		}, articles)
	}

	store, err := openSeenStore(fetchSkipSeen)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	articles, freshKeys, err := filterSeen(store, articles, domain.Article.Key)
	if err != nil {
		return err
	}

	jsonPath, csvPath := outputPath(gdeltJSONName), outputPath(gdeltCSVName)
	unique, err := exportRun(jsonPath, csvPath, articles, export.ArticleTable(articles))
	if err != nil {
		return err
	}
	if err := markSeen(store, freshKeys); err != nil {
		return err
	}

	fields := export.ArticleStats(articles).Fields()
	fields["unique"] = unique
	fields["json"] = jsonPath
	fields["csv"] = csvPath
	log.InfoObj("gdelt export written", "gdelt_export_done", fields)

	publishHarvest(ctx, sources.SourceGDELT, window, unique, jsonPath, csvPath)
	return nil
}
