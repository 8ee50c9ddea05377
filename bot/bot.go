package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"sanitizer-bot/cache"
	"sanitizer-bot/config"
	"sanitizer-bot/database"
	"sanitizer-bot/metrics"
	"sanitizer-bot/ops"
	"sanitizer-bot/sanitize"
	"sanitizer-bot/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
)

// MarkerEmojiName is the name half of the custom marker emoji. Reaction
// endpoints take it as "name:id".
const MarkerEmojiName = "Sanitized"

// Bot encapsulates the bot's state.
type Bot struct {
	Session  *discordgo.Session
	Store    *database.Store
	Cache    *cache.ConfigCache
	Replica  *database.ReplicaSync
	Rewriter *sanitize.Rewriter
	Metrics  *metrics.Collector

	// MarkerEmojiID is the snowflake of the marker emoji used in the
	// manual reaction modes.
	MarkerEmojiID string

	ops *ops.Server
	wg  sync.WaitGroup
}

// Go runs a sanitization pipeline in a goroutine tracked for shutdown, so
// Stop can let in-flight work finish before the store closes.
func (b *Bot) Go(fn func()) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn()
	}()
}

// drainPipelines waits for tracked goroutines, giving up after the timeout.
func (b *Bot) drainPipelines(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// MarkerEmojiAPIName returns the emoji in the form reaction endpoints expect.
func (b *Bot) MarkerEmojiAPIName() string {
	return MarkerEmojiName + ":" + b.MarkerEmojiID
}

// NewBot creates and initializes a new Bot instance.
func NewBot() (*Bot, error) {
	config.LoadConfig()
	token := viper.GetString("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent

	store, err := database.Open(viper.GetString("database.path"))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	policyCache, err := cache.New(store, viper.GetInt("cache.capacity"))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("error creating policy cache: %w", err)
	}

	lookup := sanitize.NewAuthorLookup(time.Duration(viper.GetInt("lookup.timeoutMs")) * time.Millisecond)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	policyCache.OnHit = collector.RecordCacheHit
	policyCache.OnMiss = collector.RecordCacheMiss

	return &Bot{
		Session:       dg,
		Store:         store,
		Cache:         policyCache,
		Replica:       database.NewReplicaSync(store, viper.GetString("replica.url"), viper.GetString("replica.token")),
		Rewriter:      sanitize.NewRewriter(lookup),
		Metrics:       collector,
		MarkerEmojiID: viper.GetString("bot.sanitizedEmojiId"),
		ops:           ops.NewServer(viper.GetString("ops.listenAddr"), registry),
	}, nil
}

// Start opens the bot's session, registers handlers and commands, and kicks
// off the background machinery.
func (b *Bot) Start(registerHandlers func(*Bot), commandDefs []*discordgo.ApplicationCommand) error {
	registerHandlers(b)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	utils.InitLogger(b.Session)

	// Register application commands globally.
	for _, def := range commandDefs {
		_, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, "", def)
		if err != nil {
			log.Printf("Cannot create '%v' command: %v", def.Name, err)
		}
	}

	if err := b.Session.UpdateWatchStatus(0, "for embeddable links"); err != nil {
		log.Printf("Could not set presence: %v", err)
	}

	startScheduler(b.Replica)
	b.ops.Start()

	// Push the local table to the replica once we are up.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		b.Replica.SyncWithRetry(ctx, 3)
	}()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully closes the bot's session.
func (b *Bot) Stop() {
	stopScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.ops.Stop(ctx); err != nil {
		log.Printf("Error stopping ops server: %v", err)
	}

	// Closing the gateway stops new events; in-flight pipelines may still
	// be mid-guardian, so give them a bounded window before the store goes.
	if b.Session != nil {
		b.Session.Close()
	}
	if !b.drainPipelines(30 * time.Second) {
		log.Println("Shutdown proceeding with pipelines still in flight")
	}
	if b.Store != nil {
		b.Store.Close()
	}
	fmt.Println("Bot stopped gracefully.")
}

// Run is the main entry point for the bot application.
func Run(registerHandlers func(*Bot), commandDefs []*discordgo.ApplicationCommand) {
	bot, err := NewBot()
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	if err := bot.Start(registerHandlers, commandDefs); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
