package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-co-op/gocron"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/twriad969/sss/access"
	"github.com/twriad969/sss/api"
	"github.com/twriad969/sss/stats"
)

func main() {
	botToken := getStringFromEnv("TELEGRAM_BOT_TOKEN")

	channelUsername = getStringFromEnvOrDefault("CHANNEL_USERNAME", "@botzwala")
	channelLink = "https://t.me/" + strings.TrimPrefix(channelUsername, "@")

	var err error
	bot, err = tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Panic(err)
	}
	bot.Debug = os.Getenv("BOT_DEBUG") == "1"
	botUsername = bot.Self.UserName

	log.Printf("Authorized on account %s", botUsername)
	log.Printf("Required channel: %s", channelUsername)

	shortener = api.NewShortener(
		getStringFromEnv("SHORTLINK_API_PRIMARY"),
		getStringFromEnv("SHORTLINK_API_ALTERNATE"),
	)
	streamer = api.NewStreamer(getStringFromEnvOrDefault("STREAMER_API_URL",
		"https://streamerapi1-2a11b7531678.herokuapp.com"))
	statsSink = api.NewStatsSink(getStringFromEnvOrDefault("STATS_SINK_URL",
		"https://file2earn.top"))

	counters = stats.New(prometheus.DefaultRegisterer)
	engine = access.NewEngine(
		access.NewStore(),
		access.NewCodeRegistry(),
		shortener,
		counters,
		access.EngineConfig{
			BotUsername:    botUsername,
			SingleUseCodes: os.Getenv("SINGLE_USE_CODES") == "1",
		},
	)

	startStatsFlusher()
	go startWebServer()

	handleUpdates()
}

// startStatsFlusher pushes the usage snapshot to the remote sink once a
// day and clears the verified-today set.
func startStatsFlusher() {
	scheduler := gocron.NewScheduler(time.UTC)

	scheduler.Every(24).Hours().Tag("stats flush").Do(func() {
		snap := counters.Snapshot()
		if err := statsSink.SaveStats(snap.Users, snap.LinksProcessed); err != nil {
			log.Printf("Error saving stats: %v", err)
		} else {
			log.Printf("Stats saved: %d users, %d links processed", snap.Users, snap.LinksProcessed)
		}
		counters.ResetDaily()
	})

	scheduler.StartAsync()
}

func getStringFromEnv(name string) string {
	value := os.Getenv(name)
	if value == "" {
		log.Fatalf("%s environment variable not set", name)
	}
	return value
}

func getStringFromEnvOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
