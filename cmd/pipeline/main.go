package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/politimux/politimux/archive"
	"github.com/politimux/politimux/collector"
	"github.com/politimux/politimux/collector/clients"
	"github.com/politimux/politimux/normalizer"
	"github.com/politimux/politimux/roster"
	. "github.com/politimux/politimux/utils"
	"github.com/politimux/politimux/utils/dotenv"
	Logger "github.com/politimux/politimux/utils/log"
	"github.com/politimux/politimux/warehouse"
)

var (
	bootstrap  = flag.Bool("bootstrap", false, "destructive full reload: recreate tables and fetch an initial window instead of resolving the watermark")
	windowDays = flag.Int("window_days", 30, "initial fetch window in days, only used with -bootstrap")
	includeRts = flag.Bool("include_rts", false, "include retweets in fetched timelines")
	cronSpec   = flag.String("cron", "", "when set, run as a daemon on this cron schedule instead of once, e.g. '30 4 * * *'")
)

func main() {
	flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := GetDBConnection()
	if err != nil {
		Logger.Log.Fatal("fail to connect database: ", err)
	}
	if err := warehouse.Migrate(db); err != nil {
		Logger.Log.Fatal("fail to migrate warehouse: ", err)
	}

	api := clients.NewTwitterClient(clients.Credentials{
		ConsumerKey:       os.Getenv("TWITTER_CONSUMER_KEY"),
		ConsumerSecret:    os.Getenv("TWITTER_CONSUMER_SECRET"),
		AccessToken:       os.Getenv("TWITTER_ACCESS_TOKEN"),
		AccessTokenSecret: os.Getenv("TWITTER_ACCESS_TOKEN_SECRET"),
	})

	store, err := newBatchStore()
	if err != nil {
		Logger.Log.Fatal("fail to create raw batch store: ", err)
	}

	if *cronSpec != "" {
		runner := cron.New()
		if _, err := runner.AddFunc(*cronSpec, func() {
			if err := runOnce(db, api, store); err != nil {
				Logger.Log.Error("scheduled run failed: ", err)
			}
		}); err != nil {
			Logger.Log.Fatal("bad cron spec: ", err)
		}
		Logger.Log.Info("pipeline daemon starts up, schedule: ", *cronSpec)
		runner.Run()
		return
	}

	if err := runOnce(db, api, store); err != nil {
		Logger.Log.Fatal("pipeline run failed: ", err)
	}
}

func newBatchStore() (archive.RawBatchStore, error) {
	dir := os.Getenv("ARCHIVE_DIR")
	if dir == "" {
		return &archive.FakeBatchStore{}, nil
	}
	return archive.NewLocalBatchStore(dir)
}

// runOnce executes one full batch: resolve cutoff, fetch all accounts,
// archive the raw batch, normalize, load. Write mode follows -bootstrap.
func runOnce(db *gorm.DB, api *clients.TwitterClient, store archive.RawBatchStore) error {
	runID := uuid.New().String()
	Logger.Log.Info("starting pipeline run ", runID)

	accounts, err := roster.LoadAccounts(os.Getenv("ROSTER_SOCIAL"))
	if err != nil {
		return err
	}

	mode := warehouse.Append
	var cutoff time.Time
	if *bootstrap {
		mode = warehouse.Replace
		cutoff = time.Now().AddDate(0, 0, -*windowDays)
		if err := loadRoster(db); err != nil {
			return err
		}
	} else {
		cutoff, err = warehouse.ResolveWatermark(db)
		if err != nil {
			// Includes ErrNoSnapshots: an empty warehouse needs an explicit
			// initial window, so point the operator at -bootstrap.
			return err
		}
	}

	orchestrator := collector.NewBatchOrchestrator(collector.NewTimelineFetcher(api))
	raw, err := orchestrator.FetchAll(context.Background(), accounts, cutoff, *includeRts)
	if err != nil {
		return err
	}
	Logger.Log.Info("fetched ", len(raw), " raw tweets across ", len(accounts), " accounts")

	if key, err := store.Store(runID, raw); err != nil {
		return err
	} else if key != runID {
		Logger.Log.Info("archived raw batch to ", key)
	}

	batch, err := normalizer.Normalize(raw, time.Now())
	if err != nil {
		return err
	}

	loader := warehouse.NewLoader(db)
	if err := loader.LoadProfiles(batch.Profiles, mode); err != nil {
		return err
	}
	if err := loader.LoadTweets(batch.Tweets, mode); err != nil {
		return err
	}

	Logger.Log.Infof("run %s loaded %d tweets and %d profile snapshots", runID, len(batch.Tweets), len(batch.Profiles))
	return nil
}

// loadRoster bootstraps the static legislator and social tables.
func loadRoster(db *gorm.DB) error {
	legislators, err := roster.LoadLegislators(os.Getenv("ROSTER_LEGISLATORS"))
	if err != nil {
		return err
	}
	social, err := roster.LoadSocialAccounts(os.Getenv("ROSTER_SOCIAL"))
	if err != nil {
		return err
	}

	loader := warehouse.NewLoader(db)
	if err := loader.LoadLegislators(legislators, warehouse.Replace); err != nil {
		return err
	}
	return loader.LoadSocialAccounts(social, warehouse.Replace)
}
